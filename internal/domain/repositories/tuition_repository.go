package repositories

import (
	"context"

	"github.com/google/uuid"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/pkg/utils"
)

// TuitionRepository defines tuition posting data operations
type TuitionRepository interface {
	Create(ctx context.Context, tuition *entities.Tuition) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Tuition, error)
	List(ctx context.Context, filter entities.TuitionFilter, pagination utils.PaginationParams) ([]*entities.Tuition, int64, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateTuitionInput) error
	// UpdateStatus moves a tuition from one status to another and returns
	// ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.TuitionStatus) error
	MarkFilled(ctx context.Context, id uuid.UUID, hire entities.HireRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
