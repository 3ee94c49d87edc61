package loan

import "context"

// Filter narrows List to one client's or one associate's portfolio.
// Zero values mean no filtering.
type Filter struct {
	ClientID    string
	AssociateID string
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row inside a transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	List(ctx context.Context, f Filter) ([]Loan, error)
}
