package uow

import (
	"context"

	"prestadero-backend/internal/domain/loan"
	"prestadero-backend/internal/domain/payment"
)

type Repos struct {
	Loans    loan.Repository
	Payments payment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in. Every flow that
	// mutates a loan or records a payment goes through this so concurrent
	// requests against the same loan serialize at the store.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
