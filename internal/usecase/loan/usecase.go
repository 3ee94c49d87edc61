package loan

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

func validateTerms(amount, rate, termMonths float64, frequency string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", engine.ErrInvalidTerms)
	}
	if rate < 0 {
		return fmt.Errorf("%w: interest rate cannot be negative", engine.ErrInvalidTerms)
	}
	if termMonths <= 0 {
		return fmt.Errorf("%w: term must be positive", engine.ErrInvalidTerms)
	}
	if !engine.Frequency(frequency).Valid() {
		return fmt.Errorf("%w: unknown payment frequency %q", engine.ErrInvalidTerms, frequency)
	}
	return nil
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.ClientID == "" || len(in.ClientID) != 32 {
		return nil, fmt.Errorf("%w: client_id must be a 32-char id", engine.ErrInvalidTerms)
	}
	if err := validateTerms(in.Amount, in.InterestRate, in.TermMonths, in.PaymentFrequency); err != nil {
		return nil, err
	}

	l := &domainLoan.Loan{
		LoanID:           id.NewID32(),
		ClientID:         in.ClientID,
		AssociateID:      in.AssociateID,
		Amount:           in.Amount,
		InterestRate:     in.InterestRate,
		CommissionRate:   in.CommissionRate,
		TermMonths:       in.TermMonths,
		PaymentFrequency: engine.Frequency(in.PaymentFrequency),
		Status:           engine.StatusPending,
		StatusUpdatedAt:  time.Now().UTC(),
	}
	if in.StartDate != nil {
		d := in.StartDate.UTC()
		l.StartDate = &d
	}

	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	// A fresh loan has no payments; no need to hit the ledger.
	return u.toDTO(l, engine.LedgerSummary{})
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return u.enrich(ctx, u.payments, l)
}

// Details returns the enriched loan with its payment ledger embedded. The
// ledger is read once and feeds both the balance enrichment and the embedded
// list, so the two cannot drift apart within one response.
func (u *Usecase) Details(ctx context.Context, loanID string) (*LoanDetailDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	recs, err := u.payments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	dto, err := u.toDTO(l, engine.ReducePayments(domainPayment.Amounts(recs)))
	if err != nil {
		return nil, err
	}
	detail := &LoanDetailDTO{LoanDTO: *dto, Payments: make([]PaymentRecordDTO, 0, len(recs))}
	for i := range recs {
		detail.Payments = append(detail.Payments, PaymentRecordDTO{
			PaymentID:   recs[i].PaymentID,
			AmountPaid:  recs[i].AmountPaid,
			PaymentDate: recs[i].PaymentDate,
			CreatedAt:   recs[i].CreatedAt,
		})
	}
	return detail, nil
}

func (u *Usecase) List(ctx context.Context, f domainLoan.Filter) ([]LoanDTO, error) {
	loans, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		dto, err := u.enrich(ctx, u.payments, &loans[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

// Update replaces the contractual terms. Permitted only while pending.
func (u *Usecase) Update(ctx context.Context, loanID string, in UpdateLoanInput) (*LoanDTO, error) {
	if err := validateTerms(in.Amount, in.InterestRate, in.TermMonths, in.PaymentFrequency); err != nil {
		return nil, err
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if err := engine.CanEditTerms(l.Status); err != nil {
			return err
		}
		l.Amount = in.Amount
		l.InterestRate = in.InterestRate
		l.CommissionRate = in.CommissionRate
		l.TermMonths = in.TermMonths
		l.PaymentFrequency = engine.Frequency(in.PaymentFrequency)
		l.AssociateID = in.AssociateID
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		var err error
		dto, err = u.enrich(ctx, r.Payments, l)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// UpdateStatus moves the loan through its lifecycle. Requesting the current
// status is a conflict, so duplicate transition requests racing each other
// cannot both succeed; the row lock serializes them.
func (u *Usecase) UpdateStatus(ctx context.Context, loanID string, status string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		n, err := r.Payments.CountByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if err := engine.CanTransition(l.Status, engine.Status(status), int(n)); err != nil {
			return err
		}
		l.Status = engine.Status(status)
		l.StatusUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto, err = u.enrich(ctx, r.Payments, l)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete removes a loan. Only pending loans with zero recorded payments go.
func (u *Usecase) Delete(ctx context.Context, loanID string) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		n, err := r.Payments.CountByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if err := engine.CanDelete(l.Status, int(n)); err != nil {
			return err
		}
		return r.Loans.Delete(ctx, l)
	})
}

// Schedule returns the theoretical amortization schedule for a loan.
func (u *Usecase) Schedule(ctx context.Context, loanID string) ([]engine.Entry, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return engine.GenerateSchedule(l.Terms())
}

// Summary folds every loan matching the filter into portfolio statistics.
func (u *Usecase) Summary(ctx context.Context, f domainLoan.Filter) (*SummaryDTO, error) {
	loans, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	rows := make([]engine.PortfolioRow, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		payments, err := u.payments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		e, err := engine.Enrich(l.Terms(), engine.ReducePayments(domainPayment.Amounts(payments)))
		if err != nil {
			return nil, err
		}
		rows = append(rows, engine.PortfolioRow{
			Principal:          l.Amount,
			OutstandingBalance: e.OutstandingBalance,
			Status:             l.Status,
			CommissionRatePct:  l.CommissionRate,
		})
	}
	s := engine.Aggregate(rows)
	return &SummaryDTO{
		TotalLoans:              s.TotalLoans,
		ActiveLoans:             s.ActiveLoans,
		TotalLoanedAmount:       s.TotalLoanedAmount,
		TotalOutstandingBalance: s.TotalOutstandingBalance,
		TotalCommission:         s.TotalCommission,
	}, nil
}

func (u *Usecase) enrich(ctx context.Context, payments domainPayment.Repository, l *domainLoan.Loan) (*LoanDTO, error) {
	recs, err := payments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return u.toDTO(l, engine.ReducePayments(domainPayment.Amounts(recs)))
}

func (u *Usecase) toDTO(l *domainLoan.Loan, lg engine.LedgerSummary) (*LoanDTO, error) {
	e, err := engine.Enrich(l.Terms(), lg)
	if err != nil {
		return nil, err
	}
	dto := &LoanDTO{
		LoanID:             l.LoanID,
		ClientID:           l.ClientID,
		AssociateID:        l.AssociateID,
		Amount:             l.Amount,
		InterestRate:       l.InterestRate,
		CommissionRate:     l.CommissionRate,
		TermMonths:         l.TermMonths,
		PaymentFrequency:   string(l.PaymentFrequency),
		Status:             string(l.Status),
		PaymentsMade:       e.PaymentsMade,
		TotalPaid:          e.TotalPaid,
		OutstandingBalance: e.OutstandingBalance,
		CreatedAt:          l.CreatedAt,
	}
	if l.StartDate != nil {
		d := *l.StartDate
		dto.StartDate = &d
	}
	return dto, nil
}
