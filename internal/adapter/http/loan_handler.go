package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	domainLoan "prestadero-backend/internal/domain/loan"
	ucLoan "prestadero-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *ucLoan.Usecase }

func NewLoanHandler(uc *ucLoan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type loanTermsReq struct {
	Amount         float64  `json:"amount"          validate:"required,gt=0,dec2"`
	InterestRate   float64  `json:"interest_rate"   validate:"gte=0"`
	CommissionRate *float64 `json:"commission_rate" validate:"omitempty,gte=0"`
	TermMonths     float64  `json:"term_months"     validate:"required,gt=0"`
	// 24 periods/year for biweekly, 12 for monthly
	PaymentFrequency string  `json:"payment_frequency" validate:"required,oneof=biweekly monthly"`
	AssociateID      *string `json:"associate_id"      validate:"omitempty,hex32"`
}

type createLoanReq struct {
	loanTermsReq
	ClientID string `json:"client_id"  validate:"required,hex32"`
	// Canonical date `YYYY-MM-DD`; omitted means the schedule carries no due dates.
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := ucLoan.CreateLoanInput{
		ClientID:         req.ClientID,
		AssociateID:      req.AssociateID,
		Amount:           req.Amount,
		InterestRate:     req.InterestRate,
		CommissionRate:   req.CommissionRate,
		TermMonths:       req.TermMonths,
		PaymentFrequency: req.PaymentFrequency,
	}
	if req.StartDate != "" {
		d, _ := time.Parse("2006-01-02", req.StartDate)
		in.StartDate = &d
	}

	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	f := domainLoan.Filter{
		ClientID:    c.QueryParam("client_id"),
		AssociateID: c.QueryParam("associate_id"),
	}
	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// GetLoanDetails is GetLoan plus the payment ledger embedded as a
// `payments` array.
func (h *LoanHandler) GetLoanDetails(c echo.Context) error {
	dto, err := h.uc.Details(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	var req loanTermsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Update(c.Request().Context(), c.Param("loan_id"), ucLoan.UpdateLoanInput{
		Amount:           req.Amount,
		InterestRate:     req.InterestRate,
		CommissionRate:   req.CommissionRate,
		TermMonths:       req.TermMonths,
		PaymentFrequency: req.PaymentFrequency,
		AssociateID:      req.AssociateID,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type loanStatusReq struct {
	Status string `json:"status" validate:"required,oneof=pending active paid defaulted"`
}

func (h *LoanHandler) UpdateLoanStatus(c echo.Context) error {
	var req loanStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("loan_id"), req.Status)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("loan_id")); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) GetSchedule(c echo.Context) error {
	schedule, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"schedule": schedule})
}

func (h *LoanHandler) GlobalSummary(c echo.Context) error {
	return h.summary(c, domainLoan.Filter{})
}

func (h *LoanHandler) ClientSummary(c echo.Context) error {
	return h.summary(c, domainLoan.Filter{ClientID: c.Param("client_id")})
}

func (h *LoanHandler) AssociateSummary(c echo.Context) error {
	return h.summary(c, domainLoan.Filter{AssociateID: c.Param("associate_id")})
}

func (h *LoanHandler) summary(c echo.Context, f domainLoan.Filter) error {
	dto, err := h.uc.Summary(c.Request().Context(), f)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
