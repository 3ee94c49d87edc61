package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"prestadero-backend/internal/engine"
)

var ErrNotFound = errors.New("loan not found")

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	// Public client identifier; client records themselves live in another service.
	ClientID    string  `gorm:"size:32;index:idx_loans_client_active" json:"client_id"`
	AssociateID *string `gorm:"size:32;index:idx_loans_associate" json:"associate_id,omitempty"`

	Amount       float64 `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate float64 `gorm:"type:decimal(6,3)" json:"interest_rate"`
	// CommissionRate is the associate's percentage of principal; NULL when no
	// commission agreement exists.
	CommissionRate   *float64         `gorm:"type:decimal(6,3)" json:"commission_rate,omitempty"`
	TermMonths       float64          `gorm:"type:decimal(6,2)" json:"term_months"`
	PaymentFrequency engine.Frequency `gorm:"type:enum('biweekly','monthly');default:'biweekly'" json:"payment_frequency"`
	// NULL when disbursement is not scheduled yet; the schedule then carries
	// no due dates. A zero time.Time would not survive a strict-mode DATE
	// column, so this stays a pointer like the other optional fields.
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`

	Status          engine.Status  `gorm:"type:enum('pending','active','paid','defaulted');default:'pending'" json:"status"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy       string         `gorm:"size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Terms projects the stored contractual facts into the engine's value type.
func (l *Loan) Terms() engine.Terms {
	t := engine.Terms{
		Principal:     l.Amount,
		AnnualRatePct: l.InterestRate,
		TermMonths:    l.TermMonths,
		Frequency:     l.PaymentFrequency,
	}
	if l.StartDate != nil {
		t.StartDate = *l.StartDate
	}
	return t
}
