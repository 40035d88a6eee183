package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/internal/interfaces/http/response"
)

type ApplicationService interface {
	Apply(ctx context.Context, principal *entities.Principal, input *entities.CreateApplicationInput) (*entities.ApplicationResult, error)
	GetByID(ctx context.Context, principal *entities.Principal, id uuid.UUID) (*entities.Application, error)
	ListReceived(ctx context.Context, studentEmail string) ([]*entities.ApplicationDetail, error)
	ListByTutor(ctx context.Context, tutorEmail string) ([]*entities.ApplicationDetail, error)
	Reject(ctx context.Context, principal *entities.Principal, id uuid.UUID) (*entities.Application, error)
	Delete(ctx context.Context, principal *entities.Principal, id uuid.UUID) error
}

// ApplicationHandler handles tutor application endpoints
type ApplicationHandler struct {
	applicationUsecase ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationUsecase ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationUsecase: applicationUsecase}
}

// Apply records the caller's bid on a tuition. Applying twice answers 200
// with a null insertedId.
// POST /applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input entities.CreateApplicationInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.applicationUsecase.Apply(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Outcome == entities.OutcomeDuplicate {
		response.Success(c, http.StatusOK, gin.H{
			"message":    "You have already applied to this tuition",
			"insertedId": nil,
		})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"insertedId":  result.Application.ID,
		"application": result.Application,
	})
}

// GetApplication returns one application
// GET /applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "application")
	if !ok {
		return
	}

	application, err := h.applicationUsecase.GetByID(c.Request.Context(), p, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, application)
}

// ListReceived lists applications to the caller's postings
// GET /applications/received/:email
func (h *ApplicationHandler) ListReceived(c *gin.Context) {
	items, err := h.applicationUsecase.ListReceived(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ListByTutor lists the caller's own applications
// GET /applications/tutor/:email
func (h *ApplicationHandler) ListByTutor(c *gin.Context) {
	items, err := h.applicationUsecase.ListByTutor(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Reject declines a pending application to the caller's posting
// PATCH /applications/reject/:id
func (h *ApplicationHandler) Reject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "application")
	if !ok {
		return
	}

	application, err := h.applicationUsecase.Reject(c.Request.Context(), p, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, application)
}

// DeleteApplication withdraws an application
// DELETE /applications/:id
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	if err := h.applicationUsecase.Delete(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Application deleted", "deletedCount": 1})
}
