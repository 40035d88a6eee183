package repositories

import (
	"context"

	"github.com/google/uuid"
	"tutorhub.backend/internal/domain/entities"
)

// ApplicationRepository defines tutor application data operations
type ApplicationRepository interface {
	// Create returns ErrAlreadyExists when the (tuition, tutor) pair is taken.
	Create(ctx context.Context, application *entities.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Application, error)
	FindByTuitionAndTutor(ctx context.Context, tuitionID uuid.UUID, tutorEmail string) (*entities.Application, error)
	ListReceived(ctx context.Context, studentEmail string) ([]*entities.ApplicationDetail, error)
	ListByTutor(ctx context.Context, tutorEmail string) ([]*entities.ApplicationDetail, error)
	// UpdateStatus returns ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
