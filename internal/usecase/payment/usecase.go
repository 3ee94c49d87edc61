package payment

import (
	"context"
	"fmt"
	"time"

	domainLoan "prestadero-backend/internal/domain/loan"
	domainPayment "prestadero-backend/internal/domain/payment"
	"prestadero-backend/internal/domain/uow"
	"prestadero-backend/internal/engine"
	"prestadero-backend/pkg/id"
)

type Usecase struct {
	loans    domainLoan.Repository
	payments domainPayment.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, payments domainPayment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, payments: payments, uow: tx}
}

// Record registers a payment against an active loan. Runs inside a loan-row
// transaction so concurrent payments against the same loan serialize and the
// ledger always sees a consistent snapshot.
func (u *Usecase) Record(ctx context.Context, loanID string, in RecordPaymentInput) (*PaymentDTO, error) {
	if in.AmountPaid != nil && *in.AmountPaid <= 0 {
		return nil, fmt.Errorf("%w: amount_paid must be positive", engine.ErrInvalidTerms)
	}

	var dto *PaymentDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if err := engine.CanRecordPayment(l.Status); err != nil {
			return err
		}

		amount, err := u.resolveAmount(l, in.AmountPaid)
		if err != nil {
			return err
		}
		date := time.Now().UTC()
		if in.PaymentDate != nil {
			date = in.PaymentDate.UTC()
		}

		p := &domainPayment.Payment{
			PaymentID:   id.NewID32(),
			LoanID:      l.ID,
			AmountPaid:  amount,
			PaymentDate: date,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		dto = &PaymentDTO{
			PaymentID:   p.PaymentID,
			LoanID:      l.LoanID,
			AmountPaid:  p.AmountPaid,
			PaymentDate: p.PaymentDate,
			CreatedAt:   p.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// resolveAmount falls back to the scheduled level payment when the caller did
// not name an amount.
func (u *Usecase) resolveAmount(l *domainLoan.Loan, requested *float64) (float64, error) {
	if requested != nil {
		return *requested, nil
	}
	schedule, err := engine.GenerateSchedule(l.Terms())
	if err != nil {
		return 0, err
	}
	if len(schedule) == 0 {
		return 0, fmt.Errorf("%w: loan has no computable schedule to derive a payment from", engine.ErrInvalidTerms)
	}
	return schedule[0].Payment, nil
}

// List returns a loan's payments, newest first.
func (u *Usecase) List(ctx context.Context, loanID string) ([]PaymentDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	recs, err := u.payments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, 0, len(recs))
	for _, p := range recs {
		out = append(out, PaymentDTO{
			PaymentID:   p.PaymentID,
			LoanID:      l.LoanID,
			AmountPaid:  p.AmountPaid,
			PaymentDate: p.PaymentDate,
			CreatedAt:   p.CreatedAt,
		})
	}
	return out, nil
}
