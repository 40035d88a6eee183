package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/domain/repositories"
	"tutorhub.backend/pkg/utils"
)

// TuitionUsecase handles tuition posting business logic
type TuitionUsecase struct {
	tuitionRepo repositories.TuitionRepository
}

// NewTuitionUsecase creates a new tuition usecase
func NewTuitionUsecase(tuitionRepo repositories.TuitionRepository) *TuitionUsecase {
	return &TuitionUsecase{tuitionRepo: tuitionRepo}
}

// Create posts a tuition owned by the principal. New postings always start pending.
func (u *TuitionUsecase) Create(ctx context.Context, principal *entities.Principal, input *entities.CreateTuitionInput) (*entities.Tuition, error) {
	if input.Budget <= 0 {
		return nil, domainerrors.BadRequest("budget must be greater than zero")
	}

	now := time.Now().UTC()
	tuition := &entities.Tuition{
		ID:           utils.GenerateUUIDv7(),
		StudentEmail: principal.Email,
		StudentName:  strings.TrimSpace(input.StudentName),
		Subject:      strings.TrimSpace(input.Subject),
		ClassLevel:   strings.TrimSpace(input.ClassLevel),
		Location:     strings.TrimSpace(input.Location),
		Budget:       input.Budget,
		Description:  input.Description,
		Status:       entities.TuitionStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.tuitionRepo.Create(ctx, tuition); err != nil {
		return nil, err
	}
	return tuition, nil
}

// GetByID gets a tuition by ID
func (u *TuitionUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Tuition, error) {
	tuition, err := u.tuitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "tuition not found")
	}
	return tuition, nil
}

// ListPublic lists approved postings only
func (u *TuitionUsecase) ListPublic(ctx context.Context, search string, pagination utils.PaginationParams) (*entities.TuitionPage, error) {
	return u.list(ctx, entities.TuitionFilter{Status: entities.TuitionStatusApproved, Search: search}, pagination)
}

// ListAll lists postings in any status, optionally narrowed to one (admin only)
func (u *TuitionUsecase) ListAll(ctx context.Context, status entities.TuitionStatus, search string, pagination utils.PaginationParams) (*entities.TuitionPage, error) {
	if status != "" && !status.Valid() {
		return nil, domainerrors.BadRequest("invalid status filter")
	}
	return u.list(ctx, entities.TuitionFilter{Status: status, Search: search}, pagination)
}

// ListByOwner lists every posting of one student, newest first
func (u *TuitionUsecase) ListByOwner(ctx context.Context, email string) ([]*entities.Tuition, error) {
	tuitions, _, err := u.tuitionRepo.List(ctx, entities.TuitionFilter{StudentEmail: email}, utils.PaginationParams{})
	return tuitions, err
}

func (u *TuitionUsecase) list(ctx context.Context, filter entities.TuitionFilter, pagination utils.PaginationParams) (*entities.TuitionPage, error) {
	tuitions, total, err := u.tuitionRepo.List(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}
	return &entities.TuitionPage{
		Tuitions:   tuitions,
		Total:      total,
		Pagination: utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	}, nil
}

// Update edits the descriptive fields of a posting. Only its owner may do so.
func (u *TuitionUsecase) Update(ctx context.Context, principal *entities.Principal, id uuid.UUID, input *entities.UpdateTuitionInput) (*entities.Tuition, error) {
	if input.Empty() {
		return nil, domainerrors.BadRequest("nothing to update")
	}

	tuition, err := u.tuitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "tuition not found")
	}
	if !principal.Is(tuition.StudentEmail) {
		return nil, domainerrors.Forbidden("only the owner can update this tuition")
	}

	if err := u.tuitionRepo.Update(ctx, id, input); err != nil {
		return nil, notFoundOr(err, "tuition not found")
	}
	return u.GetByID(ctx, id)
}

// Delete removes a posting. Only its owner may do so.
func (u *TuitionUsecase) Delete(ctx context.Context, principal *entities.Principal, id uuid.UUID) error {
	tuition, err := u.tuitionRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "tuition not found")
	}
	if !principal.Is(tuition.StudentEmail) {
		return domainerrors.Forbidden("only the owner can delete this tuition")
	}
	return notFoundOr(u.tuitionRepo.Delete(ctx, id), "tuition not found")
}

// UpdateStatus records the admin decision on a pending posting
func (u *TuitionUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TuitionStatus) (*entities.Tuition, error) {
	if status != entities.TuitionStatusApproved && status != entities.TuitionStatusRejected {
		return nil, domainerrors.BadRequest("status must be approved or rejected")
	}

	tuition, err := u.tuitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "tuition not found")
	}
	if !tuition.Status.CanTransitionTo(status) {
		return nil, domainerrors.Conflict("tuition is " + string(tuition.Status) + " and cannot become " + string(status))
	}

	if err := u.tuitionRepo.UpdateStatus(ctx, id, tuition.Status, status); err != nil {
		return nil, conflictOr(err, "tuition not found", "tuition status changed concurrently")
	}
	return u.GetByID(ctx, id)
}
