package paymentmock

import (
	"context"

	domain "prestadero-backend/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies payment.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, p *domain.Payment) error
	ListByLoanIDFn  func(ctx context.Context, loanID uint64) ([]domain.Payment, error)
	CountByLoanIDFn func(ctx context.Context, loanID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Payment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	// Most tests just need "no payments yet".
	return nil, nil
}

func (m *Repo) CountByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountByLoanIDFn != nil {
		return m.CountByLoanIDFn(ctx, loanID)
	}
	return 0, nil
}
