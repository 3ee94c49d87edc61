package mysql

import (
	"context"

	"gorm.io/gorm"

	paymentDomain "prestadero-backend/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) CountByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Where("loan_id = ?", loanID).
		Count(&n)
	return n, res.Error
}
