package engine

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusPaid      Status = "paid"
	StatusDefaulted Status = "defaulted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusPaid, StatusDefaulted:
		return true
	}
	return false
}

// transitions: pending → active → {paid, defaulted}. Reaching paid is always
// an external decision (typically once the outstanding balance hits zero);
// the engine only validates the move.
var transitions = map[Status]map[Status]bool{
	StatusPending: {StatusActive: true},
	StatusActive:  {StatusPaid: true, StatusDefaulted: true},
}

// CanTransition validates a status change. Requesting the current status is a
// conflict (ErrStatusUnchanged), not a silent no-op. Going back to pending is
// only possible from active while the loan still has zero recorded payments.
func CanTransition(from, to Status, paymentsMade int) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, pickInvalid(from, to))
	}
	if from == to {
		return ErrStatusUnchanged
	}
	if to == StatusPending {
		if from == StatusActive && paymentsMade == 0 {
			return nil
		}
		return fmt.Errorf("%w: cannot return to pending once payments exist", ErrIllegalTransition)
	}
	if !transitions[from][to] {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}

func pickInvalid(from, to Status) Status {
	if !from.Valid() {
		return from
	}
	return to
}

// CanEditTerms guards mutation of contractual terms (amount, rate, term,
// frequency, associate): only while pending.
func CanEditTerms(s Status) error {
	if s != StatusPending {
		return fmt.Errorf("%w: terms editable only while pending, loan is %s", ErrIllegalTransition, s)
	}
	return nil
}

// CanDelete guards loan deletion: pending only, and never once any payment
// has been recorded, regardless of status.
func CanDelete(s Status, paymentsMade int) error {
	if paymentsMade > 0 {
		return fmt.Errorf("%w: loan has %d recorded payments", ErrIllegalTransition, paymentsMade)
	}
	if s != StatusPending {
		return fmt.Errorf("%w: only pending loans can be deleted, loan is %s", ErrIllegalTransition, s)
	}
	return nil
}

// CanRecordPayment guards payment recording: active loans only.
func CanRecordPayment(s Status) error {
	if s != StatusActive {
		return fmt.Errorf("%w: payments recordable only while active, loan is %s", ErrIllegalTransition, s)
	}
	return nil
}
