// Package engine holds the amortization and balance reconciliation core:
// pure, synchronous computations over values already fetched from storage.
// Nothing in here performs I/O or keeps state between calls.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// PeriodsPerYear returns 24 for biweekly, 12 for monthly, 0 otherwise.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case FrequencyBiweekly:
		return 24
	case FrequencyMonthly:
		return 12
	}
	return 0
}

func (f Frequency) Valid() bool { return f.PeriodsPerYear() > 0 }

// Terms are the immutable contractual facts of a loan.
type Terms struct {
	Principal     float64
	AnnualRatePct float64
	TermMonths    float64
	Frequency     Frequency
	// StartDate anchors due dates. A zero StartDate produces a schedule
	// without due dates, which is all the balance math needs.
	StartDate time.Time
}

// Entry is one theoretical period of the schedule. All monetary fields are
// rounded to 2 decimal places at emission (half away from zero, via
// shopspring/decimal), never earlier: the running balance stays unrounded.
type Entry struct {
	Number    int       `json:"payment_number"`
	DueDate   time.Time `json:"due_date,omitzero"`
	Payment   float64   `json:"payment_amount"`
	Principal float64   `json:"principal"`
	Interest  float64   `json:"interest"`
	Balance   float64   `json:"balance"`
}

// round2 is the single rounding rule for money in this package:
// 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// GenerateSchedule expands loan terms into the theoretical per-period payment
// breakdown. It is a pure function: identical terms yield bit-identical
// schedules. Degenerate inputs (zero or negative period count) yield an empty
// schedule, never an error; the only failure is an unknown frequency.
//
// Period count convention: biweekly assumes exactly 2 periods per month
// (term_months × 2), not a calendar-accurate cadence. Rate ≤ 0 degrades to
// equal-principal payments with zero interest.
func GenerateSchedule(t Terms) ([]Entry, error) {
	var periodsPerYear, totalPeriods int
	switch t.Frequency {
	case FrequencyBiweekly:
		periodsPerYear = 24
		totalPeriods = int(t.TermMonths * 2)
	case FrequencyMonthly:
		periodsPerYear = 12
		totalPeriods = int(t.TermMonths)
	default:
		return nil, fmt.Errorf("%w: unknown payment frequency %q", ErrInvalidTerms, t.Frequency)
	}

	if totalPeriods <= 0 {
		return []Entry{}, nil
	}

	var rate, payment float64
	if t.AnnualRatePct <= 0 {
		payment = t.Principal / float64(totalPeriods)
	} else {
		rate = (t.AnnualRatePct / 100) / float64(periodsPerYear)
		denom := 1 - math.Pow(1+rate, -float64(totalPeriods))
		if denom == 0 {
			payment = t.Principal / float64(totalPeriods)
		} else {
			payment = t.Principal * rate / denom
		}
	}

	entries := make([]Entry, 0, totalPeriods)
	balance := t.Principal
	due := t.StartDate
	for i := 1; i <= totalPeriods; i++ {
		interest := balance * rate
		principal := payment - interest
		balance -= principal

		e := Entry{
			Number:    i,
			Payment:   round2(payment),
			Principal: round2(principal),
			Interest:  round2(interest),
		}
		// Balance is clamped to 0 once rounding drift pushes it negative.
		if balance > 0 {
			e.Balance = round2(balance)
		}
		if !t.StartDate.IsZero() {
			due = nextDueDate(due, t.Frequency)
			e.DueDate = due
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// nextDueDate advances one period from d.
//
// The biweekly rule is a simplified payday convention, kept for compatibility
// with historically issued schedules: day < 15 moves to the 15th of the same
// month, day >= 15 moves to the 1st of the next month. It does not model true
// 14-day cycles. Monthly advances by exactly one calendar month.
func nextDueDate(d time.Time, f Frequency) time.Time {
	if f == FrequencyMonthly {
		return d.AddDate(0, 1, 0)
	}
	if d.Day() < 15 {
		return time.Date(d.Year(), d.Month(), 15, 0, 0, 0, 0, d.Location())
	}
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()).AddDate(0, 1, 0)
}
