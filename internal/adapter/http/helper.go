package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	domainLoan "prestadero-backend/internal/domain/loan"
	domainPayment "prestadero-backend/internal/domain/payment"
	"prestadero-backend/internal/engine"
)

// ---- helpers ----

// jsonError maps domain sentinels to HTTP codes: invalid terms → 400,
// lifecycle guard violations → 403, same-status transitions → 409,
// missing records → 404, everything else → 500.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrStatusUnchanged):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, engine.ErrIllegalTransition):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, engine.ErrInvalidTerms):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainLoan.ErrNotFound),
		errors.Is(err, domainPayment.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
