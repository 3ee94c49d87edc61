package payment

import "time"

type RecordPaymentInput struct {
	// AmountPaid is optional: when omitted the scheduled level payment of the
	// loan is charged.
	AmountPaid  *float64   `json:"amount_paid,omitempty"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

type PaymentDTO struct {
	PaymentID   string    `json:"payment_id"`
	LoanID      string    `json:"loan_id"`
	AmountPaid  float64   `json:"amount_paid"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}
