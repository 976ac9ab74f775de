package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshuahuffman02/Keepr-sub014/internal/deposit"
	"github.com/joshuahuffman02/Keepr-sub014/internal/forecast"
	"github.com/joshuahuffman02/Keepr-sub014/internal/pricing/engine"
	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
	quotedomain "github.com/joshuahuffman02/Keepr-sub014/internal/ratequote/domain"
	"github.com/joshuahuffman02/Keepr-sub014/pkg/db"
	"gorm.io/gorm"
)

type fieldError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorPayload struct {
	Type    string       `json:"type"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error { return ErrInvalidRequest }

func mapError(err error) (int, errorPayload) {
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "pricing rule draft is invalid",
			Errors: []fieldError{{
				Field:   verr.Field,
				Code:    verr.Err.Error(),
				Message: verr.Error(),
			}},
		}
	}

	var conflict *engine.CapConflictError
	if errors.As(err, &conflict) {
		// Matched rules demand a floor above the ceiling; the engine
		// refuses to pick a side and so do we.
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "cap_conflict",
			Message: err.Error(),
		}
	}

	switch {
	case errors.Is(err, ruledomain.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: err.Error()}
	case errors.Is(err, ruledomain.ErrDuplicateCode):
		return http.StatusConflict, errorPayload{Type: "conflict", Message: err.Error()}
	case db.IsDuplicateKeyErr(err):
		return http.StatusConflict, errorPayload{Type: "conflict", Message: "resource already exists"}
	case isBadRequest(err):
		return http.StatusBadRequest, errorPayload{Type: "invalid_request", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal error"}
	}
}

func isBadRequest(err error) bool {
	for _, candidate := range []error{
		ErrInvalidRequest,
		ruledomain.ErrInvalidCampground,
		ruledomain.ErrInvalidID,
		ruledomain.ErrInvalidKind,
		ruledomain.ErrInvalidStackMode,
		ruledomain.ErrInvalidAdjustmentType,
		ruledomain.ErrInvalidDowMask,
		quotedomain.ErrInvalidCampground,
		quotedomain.ErrInvalidBaseRate,
		quotedomain.ErrInvalidDateRange,
		quotedomain.ErrMissingDate,
		deposit.ErrInvalidPolicy,
		deposit.ErrInvalidTotal,
		forecast.ErrNoHistory,
		forecast.ErrInvalidHorizon,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
