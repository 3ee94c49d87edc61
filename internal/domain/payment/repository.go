package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	// ListByLoanID returns the loan's payments, newest payment date first.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Payment, error)
	CountByLoanID(ctx context.Context, loanID uint64) (int64, error)
}

// Amounts strips payments down to the raw amounts the ledger reducer folds.
func Amounts(payments []Payment) []float64 {
	out := make([]float64, len(payments))
	for i, p := range payments {
		out[i] = p.AmountPaid
	}
	return out
}
