package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/certportal/verification/dto"
)

// Verifier runs one verification pass for an application.
type Verifier interface {
	VerifyApplication(ctx context.Context, id, query string) (dto.Verdict, error)
}

type VerifyHandler struct {
	verifier Verifier
	log      *zap.SugaredLogger
}

func NewVerifyHandler(verifier Verifier, log *zap.SugaredLogger) *VerifyHandler {
	return &VerifyHandler{
		verifier: verifier,
		log:      log,
	}
}

// Verify handles POST /applications/:id/verify. A negative verdict is a
// normal 200 response; only configuration errors become error responses.
func (h *VerifyHandler) Verify(c *gin.Context) {
	id := c.Param("id")

	var req dto.VerifyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			sendError(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	verdict, err := h.verifier.VerifyApplication(c.Request.Context(), id, req.Query)
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrApplicationNotFound):
			sendError(c, http.StatusNotFound, "Application not found", err)
		case errors.Is(err, dto.ErrRuleNotFound):
			sendError(c, http.StatusBadRequest, "No rule configured for document type", err)
		default:
			h.log.Errorw("verification failed", "application", id, "error", err)
			sendError(c, http.StatusInternalServerError, "Verification failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, verdict)
}

// sendError sends a structured error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "VERIFICATION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
