package loan

import (
	"time"
)

type CreateLoanInput struct {
	ClientID         string     `json:"client_id"`
	AssociateID      *string    `json:"associate_id,omitempty"`
	Amount           float64    `json:"amount"`
	InterestRate     float64    `json:"interest_rate"`
	CommissionRate   *float64   `json:"commission_rate,omitempty"`
	TermMonths       float64    `json:"term_months"`
	PaymentFrequency string     `json:"payment_frequency"`
	StartDate        *time.Time `json:"start_date,omitempty"`
}

// UpdateLoanInput replaces the contractual terms of a pending loan.
type UpdateLoanInput struct {
	Amount           float64  `json:"amount"`
	InterestRate     float64  `json:"interest_rate"`
	CommissionRate   *float64 `json:"commission_rate,omitempty"`
	TermMonths       float64  `json:"term_months"`
	PaymentFrequency string   `json:"payment_frequency"`
	AssociateID      *string  `json:"associate_id,omitempty"`
}

// LoanDTO is the enriched view: stored terms plus the computed ledger and
// balance state. Recomputed on every read.
type LoanDTO struct {
	LoanID             string     `json:"loan_id"`
	ClientID           string     `json:"client_id"`
	AssociateID        *string    `json:"associate_id,omitempty"`
	Amount             float64    `json:"amount"`
	InterestRate       float64    `json:"interest_rate"`
	CommissionRate     *float64   `json:"commission_rate,omitempty"`
	TermMonths         float64    `json:"term_months"`
	PaymentFrequency   string     `json:"payment_frequency"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	Status             string     `json:"status"`
	PaymentsMade       int        `json:"payments_made"`
	TotalPaid          float64    `json:"total_paid"`
	OutstandingBalance float64    `json:"outstanding_balance"`
	CreatedAt          time.Time  `json:"created_at"`
}

// PaymentRecordDTO is a single ledger entry as embedded in the detail view.
type PaymentRecordDTO struct {
	PaymentID   string    `json:"payment_id"`
	AmountPaid  float64   `json:"amount_paid"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoanDetailDTO is the enriched loan together with its full payment ledger.
// Both views are derived from the same set of records, so the embedded
// payments always add up to the totals above them.
type LoanDetailDTO struct {
	LoanDTO
	Payments []PaymentRecordDTO `json:"payments"`
}

type SummaryDTO struct {
	TotalLoans              int     `json:"total_loans"`
	ActiveLoans             int     `json:"active_loans"`
	TotalLoanedAmount       float64 `json:"total_loaned_amount"`
	TotalOutstandingBalance float64 `json:"total_outstanding_balance"`
	TotalCommission         float64 `json:"total_commission"`
}
