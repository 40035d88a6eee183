package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/internal/interfaces/http/response"
	"tutorhub.backend/pkg/utils"
)

type TuitionService interface {
	Create(ctx context.Context, principal *entities.Principal, input *entities.CreateTuitionInput) (*entities.Tuition, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Tuition, error)
	ListPublic(ctx context.Context, search string, pagination utils.PaginationParams) (*entities.TuitionPage, error)
	ListAll(ctx context.Context, status entities.TuitionStatus, search string, pagination utils.PaginationParams) (*entities.TuitionPage, error)
	ListByOwner(ctx context.Context, email string) ([]*entities.Tuition, error)
	Update(ctx context.Context, principal *entities.Principal, id uuid.UUID, input *entities.UpdateTuitionInput) (*entities.Tuition, error)
	Delete(ctx context.Context, principal *entities.Principal, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TuitionStatus) (*entities.Tuition, error)
}

// TuitionHandler handles tuition posting endpoints
type TuitionHandler struct {
	tuitionUsecase TuitionService
}

// NewTuitionHandler creates a new tuition handler
func NewTuitionHandler(tuitionUsecase TuitionService) *TuitionHandler {
	return &TuitionHandler{tuitionUsecase: tuitionUsecase}
}

// ListPublic lists approved postings
// GET /tuitions?search=&page=&limit=
func (h *TuitionHandler) ListPublic(c *gin.Context) {
	page, err := h.tuitionUsecase.ListPublic(c.Request.Context(), c.Query("search"), pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// ListAll lists postings of any status for admins
// GET /tuitions/admin/all?status=&search=&page=&limit=
func (h *TuitionHandler) ListAll(c *gin.Context) {
	status := entities.TuitionStatus(c.Query("status"))
	page, err := h.tuitionUsecase.ListAll(c.Request.Context(), status, c.Query("search"), pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetTuition returns one posting
// GET /tuitions/:id
func (h *TuitionHandler) GetTuition(c *gin.Context) {
	id, ok := pathID(c, "tuition")
	if !ok {
		return
	}
	tuition, err := h.tuitionUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tuition)
}

// CreateTuition posts a tuition owned by the caller
// POST /tuitions
func (h *TuitionHandler) CreateTuition(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input entities.CreateTuitionInput
	if !bindJSON(c, &input) {
		return
	}

	tuition, err := h.tuitionUsecase.Create(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"insertedId": tuition.ID,
		"tuition":    tuition,
	})
}

// ListMine lists the caller's postings
// GET /my-tuitions/:email
func (h *TuitionHandler) ListMine(c *gin.Context) {
	tuitions, err := h.tuitionUsecase.ListByOwner(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tuitions)
}

// UpdateTuition edits descriptive fields of the caller's posting
// PATCH /tuitions/update/:id
func (h *TuitionHandler) UpdateTuition(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "tuition")
	if !ok {
		return
	}
	var input entities.UpdateTuitionInput
	if !bindJSON(c, &input) {
		return
	}

	tuition, err := h.tuitionUsecase.Update(c.Request.Context(), p, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tuition)
}

// DeleteTuition removes the caller's posting
// DELETE /tuitions/:id
func (h *TuitionHandler) DeleteTuition(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "tuition")
	if !ok {
		return
	}
	if err := h.tuitionUsecase.Delete(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Tuition deleted", "deletedCount": 1})
}

// UpdateStatus records the admin decision on a pending posting
// PATCH /tuitions/status/:id
func (h *TuitionHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "tuition")
	if !ok {
		return
	}
	var input entities.UpdateTuitionStatusInput
	if !bindJSON(c, &input) {
		return
	}

	tuition, err := h.tuitionUsecase.UpdateStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tuition)
}
