package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	ucPayment "prestadero-backend/internal/usecase/payment"
)

type PaymentHandler struct{ uc *ucPayment.Usecase }

func NewPaymentHandler(uc *ucPayment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	// Omitted amount means "charge the scheduled level payment".
	AmountPaid *float64 `json:"amount_paid"  validate:"omitempty,gt=0,dec2"`
	// Canonical date `YYYY-MM-DD`; defaults to today.
	PaymentDate string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := ucPayment.RecordPaymentInput{AmountPaid: req.AmountPaid}
	if req.PaymentDate != "" {
		d, _ := time.Parse("2006-01-02", req.PaymentDate)
		in.PaymentDate = &d
	}

	dto, err := h.uc.Record(c.Request().Context(), c.Param("loan_id"), in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
