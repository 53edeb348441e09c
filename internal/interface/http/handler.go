package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coldtrace/foodtrace/internal/domain/observation"
	apperrors "github.com/coldtrace/foodtrace/pkg/errors"
)

// Handler wires the HTTP transport to the observation domain.
type Handler struct {
	svc    observation.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc observation.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger.With("component", "http.handler"),
	}
}

// Submit records a sensor observation and returns the sealed block summary.
func (h *Handler) Submit(c *gin.Context) {
	var req observation.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "submit_failed"
		switch apperrors.Code(err) {
		case "missing_field":
			status = http.StatusBadRequest
			code = "invalid_request"
		case "seal_failed":
			status = http.StatusServiceUnavailable
			code = "seal_exhausted"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// FetchLedger returns the full ordered chain with its validity.
func (h *Handler) FetchLedger(c *gin.Context) {
	resp, err := h.svc.Ledger(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "ledger_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateLedger returns the boolean integrity verdict.
func (h *Handler) ValidateLedger(c *gin.Context) {
	resp, err := h.svc.Validate(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "validate_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProductHistory lists every ledger record for one product id.
func (h *Handler) ProductHistory(c *gin.Context) {
	resp, err := h.svc.History(c.Request.Context(), c.Param("productId"))
	if err != nil {
		status := http.StatusInternalServerError
		code := "history_failed"
		if apperrors.IsCode(err, "missing_field") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
