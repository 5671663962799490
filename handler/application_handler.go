package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/certportal/verification/dto"
)

// ApplicationStore is the persistence surface for the application CRUD
// endpoints.
type ApplicationStore interface {
	Create(ctx context.Context, app *dto.Application) error
	GetByID(ctx context.Context, id string) (*dto.Application, error)
	UpdateStatus(ctx context.Context, id string, change dto.StatusChange) error
}

type ApplicationHandler struct {
	apps ApplicationStore
	log  *zap.SugaredLogger
}

func NewApplicationHandler(apps ApplicationStore, log *zap.SugaredLogger) *ApplicationHandler {
	return &ApplicationHandler{
		apps: apps,
		log:  log,
	}
}

// Submit handles POST /applications, creating a Pending record.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	now := time.Now()
	app := &dto.Application{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		DOB:          req.DOB,
		DocumentType: req.DocumentType,
		Proofs:       req.Proofs,
		Agreement:    req.Agreement,
		Status:       dto.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.apps.Create(c.Request.Context(), app); err != nil {
		h.log.Errorw("failed to create application", "error", err)
		sendError(c, http.StatusInternalServerError, "Failed to create application", err)
		return
	}

	h.log.Infow("application submitted", "application", app.ID, "document_type", app.DocumentType)
	c.JSON(http.StatusCreated, app)
}

// Get handles GET /applications/:id.
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.apps.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, dto.ErrApplicationNotFound) {
			sendError(c, http.StatusNotFound, "Application not found", err)
			return
		}
		sendError(c, http.StatusInternalServerError, "Failed to load application", err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// UpdateStatus handles PATCH /applications/:id/status. Each transition is
// appended to the audit history.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	app, err := h.apps.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, dto.ErrApplicationNotFound) {
			sendError(c, http.StatusNotFound, "Application not found", err)
			return
		}
		sendError(c, http.StatusInternalServerError, "Failed to load application", err)
		return
	}

	change := dto.StatusChange{
		From: app.Status,
		To:   req.Status,
		By:   req.By,
		Note: req.Note,
		At:   time.Now(),
	}

	if err := h.apps.UpdateStatus(c.Request.Context(), id, change); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to update status", err)
		return
	}

	h.log.Infow("application status updated", "application", id, "from", change.From, "to", change.To)
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}
