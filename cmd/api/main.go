package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "prestadero-backend/internal/adapter/http"
	appmw "prestadero-backend/internal/adapter/middleware"
	"prestadero-backend/internal/adapter/repository/mysql"
	"prestadero-backend/internal/config"
	"prestadero-backend/internal/infrastructure/cache"
	"prestadero-backend/internal/infrastructure/db"
	ucLoan "prestadero-backend/internal/usecase/loan"
	ucPayment "prestadero-backend/internal/usecase/payment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loans := mysql.NewLoanRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	loanUC := ucLoan.NewUsecase(loans, payments, tx)
	paymentUC := ucPayment.NewUsecase(loans, payments, tx)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(loanUC)
	paymentH := httpadp.NewPaymentHandler(paymentUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	// replay protection for every mutating route; GETs pass through
	e.Use(appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)

	e.POST("/loans", loanH.CreateLoan)
	e.GET("/loans", loanH.ListLoans)
	e.GET("/loans/summary", loanH.GlobalSummary)
	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.GET("/loans/:loan_id/details", loanH.GetLoanDetails)
	e.PUT("/loans/:loan_id", loanH.UpdateLoan)
	e.PATCH("/loans/:loan_id/status", loanH.UpdateLoanStatus)
	e.DELETE("/loans/:loan_id", loanH.DeleteLoan)
	e.GET("/loans/:loan_id/schedule", loanH.GetSchedule)

	e.POST("/loans/:loan_id/payments", paymentH.RecordPayment)
	e.GET("/loans/:loan_id/payments", paymentH.ListPayments)

	e.GET("/clients/:client_id/loans/summary", loanH.ClientSummary)
	e.GET("/associates/:associate_id/loans/summary", loanH.AssociateSummary)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
