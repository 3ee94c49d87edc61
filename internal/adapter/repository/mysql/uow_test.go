package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "prestadero-backend/internal/domain/loan"
	paymentDomain "prestadero-backend/internal/domain/payment"
	"prestadero-backend/internal/domain/uow"
	"prestadero-backend/internal/engine"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openUowTestDB migrates both tables, so UoW can orchestrate both repos.
func openUowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &paymentSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makePaymentDomain(paymentID string, loanNumericID uint64, amount float64) *paymentDomain.Payment {
	return &paymentDomain.Payment{
		PaymentID:   paymentID,
		LoanID:      loanNumericID,
		AmountPaid:  amount,
		PaymentDate: time.Now().UTC(),
	}
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	payRepo := NewPaymentRepository(db)

	const loanID = "a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1"
	var numericID uint64

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan(loanID, "b1b1b1b1b1b1b1b1b1b1b1b1b1b1b1b1")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if l.ID == 0 {
			t.Fatalf("loan auto ID not set")
		}
		numericID = l.ID
		return r.Payments.Create(ctx, makePaymentDomain("c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1", l.ID, 237.12))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	if _, err := loanRepo.GetByLoanID(ctx, loanID); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	n, err := payRepo.CountByLoanID(ctx, numericID)
	if err != nil || n != 1 {
		t.Fatalf("payment not visible after commit: n=%d err=%v", n, err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	const loanID = "a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2"
	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan(loanID, "b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Payments.Create(ctx, makePaymentDomain("c2c2c2c2c2c2c2c2c2c2c2c2c2c2c2c2", l.ID, 100)); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	if _, err := loanRepo.GetByLoanID(ctx, loanID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("expected loan not found after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	// Seed a pending loan (outside tx)
	seed := &loanSQLite{
		LoanID:           "a3a3a3a3a3a3a3a3a3a3a3a3a3a3a3a3",
		ClientID:         "b3b3b3b3b3b3b3b3b3b3b3b3b3b3b3b3",
		Amount:           5000,
		InterestRate:     25.5,
		TermMonths:       12,
		PaymentFrequency: "biweekly",
		Status:           "pending",
		StatusUpdatedAt:  time.Now().UTC().Add(-1 * time.Hour),
	}
	if err := db.Create(seed).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	if err := guow.WithinLoanTx(ctx, seed.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l == nil || l.LoanID != seed.LoanID || l.Status != engine.StatusPending {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}

		l.Status = engine.StatusActive
		l.StatusUpdatedAt = time.Now().UTC()
		return r.Loans.Save(ctx, l)
	}); err != nil {
		t.Fatalf("WithinLoanTx commit err: %v", err)
	}

	got, err := loanRepo.GetByLoanID(ctx, seed.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID post-commit: %v", err)
	}
	if got.Status != engine.StatusActive {
		t.Fatalf("loan status not updated, got=%s", got.Status)
	}
}

func TestGormUoW_WithinLoanTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	seed := &loanSQLite{
		LoanID:           "a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4a4",
		ClientID:         "b4b4b4b4b4b4b4b4b4b4b4b4b4b4b4b4",
		Amount:           5000,
		InterestRate:     25.5,
		TermMonths:       12,
		PaymentFrequency: "biweekly",
		Status:           "active",
		StatusUpdatedAt:  time.Now().UTC(),
	}
	if err := db.Create(seed).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	sentinel := errors.New("stop")

	_ = guow.WithinLoanTx(ctx, seed.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := r.Payments.Create(ctx, makePaymentDomain("c4c4c4c4c4c4c4c4c4c4c4c4c4c4c4c4", l.ID, 237.12)); err != nil {
			return err
		}
		l.Status = engine.StatusPaid
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// After rollback: status unchanged, payment absent
	got, err := loanRepo.GetByLoanID(ctx, seed.LoanID)
	if err != nil {
		t.Fatalf("post-rollback GetByLoanID: %v", err)
	}
	if got.Status != engine.StatusActive {
		t.Fatalf("expected active after rollback, got %s", got.Status)
	}
	n, err := NewPaymentRepository(db).CountByLoanID(ctx, got.ID)
	if err != nil || n != 0 {
		t.Fatalf("expected no payments after rollback: n=%d err=%v", n, err)
	}
}

func TestGormUoW_WithinLoanTx_LoanNotFound(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)

	err := guow.WithinLoanTx(ctx, "ffffffffffffffffffffffffffffffff", func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("callback should not be called when loan missing")
		return nil
	})
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound when loan missing, got %v", err)
	}
}
