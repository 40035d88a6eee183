package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/domain/repositories"
	"tutorhub.backend/pkg/utils"
)

// ApplicationUsecase handles tutor application business logic
type ApplicationUsecase struct {
	applicationRepo repositories.ApplicationRepository
	tuitionRepo     repositories.TuitionRepository
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	applicationRepo repositories.ApplicationRepository,
	tuitionRepo repositories.TuitionRepository,
) *ApplicationUsecase {
	return &ApplicationUsecase{
		applicationRepo: applicationRepo,
		tuitionRepo:     tuitionRepo,
	}
}

// Apply records a tutor's bid on an approved tuition. A second bid on the same
// tuition by the same tutor is a duplicate outcome, not an error.
func (u *ApplicationUsecase) Apply(ctx context.Context, principal *entities.Principal, input *entities.CreateApplicationInput) (*entities.ApplicationResult, error) {
	tuitionID, ok := utils.ParseID(input.TuitionID)
	if !ok {
		return nil, domainerrors.BadRequest("invalid tuition id")
	}

	tuition, err := u.tuitionRepo.GetByID(ctx, tuitionID)
	if err != nil {
		return nil, notFoundOr(err, "tuition not found")
	}

	// An existing bid stays a duplicate whatever the tuition moved on to.
	existing, err := u.applicationRepo.FindByTuitionAndTutor(ctx, tuitionID, principal.Email)
	if err == nil {
		return &entities.ApplicationResult{Outcome: entities.OutcomeDuplicate, Application: existing}, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if tuition.Status != entities.TuitionStatusApproved {
		return nil, domainerrors.Conflict("tuition is not open for applications")
	}

	now := time.Now().UTC()
	application := &entities.Application{
		ID:             utils.GenerateUUIDv7(),
		TuitionID:      tuitionID,
		TutorEmail:     principal.Email,
		TutorName:      strings.TrimSpace(input.TutorName),
		Qualifications: input.Qualifications,
		Experience:     input.Experience,
		ExpectedSalary: input.ExpectedSalary,
		Status:         entities.ApplicationStatusPending,
		AppliedAt:      now,
		UpdatedAt:      now,
	}

	if err := u.applicationRepo.Create(ctx, application); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			// The unique index caught a concurrent duplicate.
			stored, getErr := u.applicationRepo.FindByTuitionAndTutor(ctx, tuitionID, principal.Email)
			if getErr != nil {
				return nil, getErr
			}
			return &entities.ApplicationResult{Outcome: entities.OutcomeDuplicate, Application: stored}, nil
		}
		return nil, err
	}

	return &entities.ApplicationResult{Outcome: entities.OutcomeCreated, Application: application}, nil
}

// GetByID returns an application to its tutor, the posting owner or an admin
func (u *ApplicationUsecase) GetByID(ctx context.Context, principal *entities.Principal, id uuid.UUID) (*entities.Application, error) {
	application, err := u.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "application not found")
	}
	if principal.IsAdmin() || principal.Is(application.TutorEmail) {
		return application, nil
	}

	tuition, err := u.tuitionRepo.GetByID(ctx, application.TuitionID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if tuition == nil || !principal.Is(tuition.StudentEmail) {
		return nil, domainerrors.Forbidden("you cannot view this application")
	}
	return application, nil
}

// ListReceived lists applications made to the student's postings
func (u *ApplicationUsecase) ListReceived(ctx context.Context, studentEmail string) ([]*entities.ApplicationDetail, error) {
	return u.applicationRepo.ListReceived(ctx, studentEmail)
}

// ListByTutor lists a tutor's own applications
func (u *ApplicationUsecase) ListByTutor(ctx context.Context, tutorEmail string) ([]*entities.ApplicationDetail, error) {
	return u.applicationRepo.ListByTutor(ctx, tutorEmail)
}

// Reject declines a pending application. Only the posting owner may do so.
func (u *ApplicationUsecase) Reject(ctx context.Context, principal *entities.Principal, id uuid.UUID) (*entities.Application, error) {
	application, err := u.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "application not found")
	}

	tuition, err := u.tuitionRepo.GetByID(ctx, application.TuitionID)
	if err != nil {
		return nil, notFoundOr(err, "tuition not found")
	}
	if !principal.Is(tuition.StudentEmail) {
		return nil, domainerrors.Forbidden("only the tuition owner can reject applications")
	}
	if application.Status != entities.ApplicationStatusPending {
		return nil, domainerrors.Conflict("application is already " + string(application.Status))
	}

	err = u.applicationRepo.UpdateStatus(ctx, id, entities.ApplicationStatusPending, entities.ApplicationStatusRejected)
	if err != nil {
		return nil, conflictOr(err, "application not found", "application status changed concurrently")
	}

	application.Status = entities.ApplicationStatusRejected
	return application, nil
}

// Delete withdraws an application. Its tutor or an admin may do so.
func (u *ApplicationUsecase) Delete(ctx context.Context, principal *entities.Principal, id uuid.UUID) error {
	application, err := u.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "application not found")
	}
	if !principal.IsAdmin() && !principal.Is(application.TutorEmail) {
		return domainerrors.Forbidden("you cannot delete this application")
	}
	return notFoundOr(u.applicationRepo.Delete(ctx, id), "application not found")
}
