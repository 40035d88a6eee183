package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/usecases"
	"tutorhub.backend/pkg/utils"
)

func TestTuitionUsecase_CreateForcesPending(t *testing.T) {
	repo := new(MockTuitionRepository)
	uc := usecases.NewTuitionUsecase(repo)
	student := entities.NewPrincipal("s@mail.com", nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(tu *entities.Tuition) bool {
		return tu.Status == entities.TuitionStatusPending && tu.StudentEmail == "s@mail.com"
	})).Return(nil).Once()

	tuition, err := uc.Create(context.Background(), student, &entities.CreateTuitionInput{
		Subject:  " Math ",
		Location: "Uttara",
		Budget:   3000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Math", tuition.Subject)
	repo.AssertExpectations(t)

	_, err = uc.Create(context.Background(), student, &entities.CreateTuitionInput{Subject: "x", Location: "y"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestTuitionUsecase_ListPublicOnlyApproved(t *testing.T) {
	repo := new(MockTuitionRepository)
	uc := usecases.NewTuitionUsecase(repo)
	pagination := utils.GetPaginationParams(2, 5)

	filter := entities.TuitionFilter{Status: entities.TuitionStatusApproved, Search: "math"}
	items := []*entities.Tuition{{ID: uuid.New(), Status: entities.TuitionStatusApproved}}
	repo.On("List", mock.Anything, filter, pagination).Return(items, int64(11), nil).Once()

	page, err := uc.ListPublic(context.Background(), "math", pagination)
	require.NoError(t, err)
	assert.Equal(t, int64(11), page.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Len(t, page.Tuitions, 1)
}

func TestTuitionUsecase_ListAllRejectsUnknownStatus(t *testing.T) {
	uc := usecases.NewTuitionUsecase(new(MockTuitionRepository))

	_, err := uc.ListAll(context.Background(), entities.TuitionStatus("archived"), "", utils.GetPaginationParams(1, 10))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestTuitionUsecase_UpdateAndDeleteOwnerOnly(t *testing.T) {
	repo := new(MockTuitionRepository)
	uc := usecases.NewTuitionUsecase(repo)
	id := uuid.New()
	tuition := &entities.Tuition{ID: id, StudentEmail: "owner@mail.com", Status: entities.TuitionStatusPending}
	repo.On("GetByID", mock.Anything, id).Return(tuition, nil)

	budget := 100.0
	input := &entities.UpdateTuitionInput{Budget: &budget}
	intruder := entities.NewPrincipal("intruder@mail.com", &entities.User{Role: entities.UserRoleAdmin})

	_, err := uc.Update(context.Background(), intruder, id, input)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(context.Background(), intruder, id), domainerrors.ErrForbidden)

	owner := entities.NewPrincipal("OWNER@mail.com", nil)
	_, err = uc.Update(context.Background(), owner, id, &entities.UpdateTuitionInput{})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	repo.On("Update", mock.Anything, id, input).Return(nil).Once()
	_, err = uc.Update(context.Background(), owner, id, input)
	require.NoError(t, err)

	repo.On("Delete", mock.Anything, id).Return(nil).Once()
	require.NoError(t, uc.Delete(context.Background(), owner, id))
	repo.AssertExpectations(t)
}

func TestTuitionUsecase_UpdateStatusTransitions(t *testing.T) {
	repo := new(MockTuitionRepository)
	uc := usecases.NewTuitionUsecase(repo)

	pendingID := uuid.New()
	pending := &entities.Tuition{ID: pendingID, Status: entities.TuitionStatusPending}
	approved := &entities.Tuition{ID: pendingID, Status: entities.TuitionStatusApproved}
	repo.On("GetByID", mock.Anything, pendingID).Return(pending, nil).Once()
	repo.On("UpdateStatus", mock.Anything, pendingID, entities.TuitionStatusPending, entities.TuitionStatusApproved).Return(nil).Once()
	repo.On("GetByID", mock.Anything, pendingID).Return(approved, nil).Once()

	got, err := uc.UpdateStatus(context.Background(), pendingID, entities.TuitionStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entities.TuitionStatusApproved, got.Status)

	filledID := uuid.New()
	repo.On("GetByID", mock.Anything, filledID).Return(&entities.Tuition{ID: filledID, Status: entities.TuitionStatusFilled}, nil).Once()
	_, err = uc.UpdateStatus(context.Background(), filledID, entities.TuitionStatusRejected)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	_, err = uc.UpdateStatus(context.Background(), pendingID, entities.TuitionStatusFilled)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	raceID := uuid.New()
	repo.On("GetByID", mock.Anything, raceID).Return(&entities.Tuition{ID: raceID, Status: entities.TuitionStatusPending}, nil).Once()
	repo.On("UpdateStatus", mock.Anything, raceID, entities.TuitionStatusPending, entities.TuitionStatusRejected).Return(domainerrors.ErrConflict).Once()
	_, err = uc.UpdateStatus(context.Background(), raceID, entities.TuitionStatusRejected)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	missing := uuid.New()
	repo.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.UpdateStatus(context.Background(), missing, entities.TuitionStatusApproved)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
