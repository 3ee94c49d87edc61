package payment

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("payment not found")

// Payment is one recorded payment against a loan. Immutable once created;
// the loan owns its payments and cannot be deleted while any exist.
type Payment struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PaymentID string `gorm:"column:payment_id;type:char(32);not null;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	// FK to loans.id (numeric, internal)
	LoanID      uint64    `gorm:"column:loan_id;not null;index" json:"-"`
	AmountPaid  float64   `gorm:"column:amount_paid;type:decimal(18,2);not null" json:"amount_paid"`
	PaymentDate time.Time `gorm:"column:payment_date;type:date;not null" json:"payment_date"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Payment) TableName() string { return "payments" }
