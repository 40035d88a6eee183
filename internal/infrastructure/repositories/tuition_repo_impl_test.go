package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/pkg/utils"
)

func TestTuitionRepository_ListFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	repo := NewTuitionRepository(db)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 12; i++ {
		seedTuition(t, repo, "owner@example.com", entities.TuitionStatusApproved, base.Add(time.Duration(i)*time.Minute))
	}
	pending := seedTuition(t, repo, "other@example.com", entities.TuitionStatusPending, base.Add(time.Hour))

	page1, total, err := repo.List(ctx, entities.TuitionFilter{Status: entities.TuitionStatusApproved}, utils.GetPaginationParams(1, 10))
	require.NoError(t, err)
	require.Equal(t, int64(12), total)
	require.Len(t, page1, 10)
	require.True(t, page1[0].CreatedAt.After(page1[9].CreatedAt), "newest first")

	page2, total, err := repo.List(ctx, entities.TuitionFilter{Status: entities.TuitionStatusApproved}, utils.GetPaginationParams(2, 10))
	require.NoError(t, err)
	require.Equal(t, int64(12), total)
	require.Len(t, page2, 2)

	mine, total, err := repo.List(ctx, entities.TuitionFilter{StudentEmail: "OTHER@example.com"}, utils.GetPaginationParams(1, 10))
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, pending.ID, mine[0].ID)
}

func TestTuitionRepository_SearchSubjectOrLocation(t *testing.T) {
	db := newTestDB(t)
	repo := NewTuitionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	math := seedTuition(t, repo, "s@example.com", entities.TuitionStatusApproved, now)
	subject := "Higher Math"
	require.NoError(t, repo.Update(ctx, math.ID, &entities.UpdateTuitionInput{Subject: &subject}))
	seedTuition(t, repo, "s@example.com", entities.TuitionStatusApproved, now.Add(time.Second))

	items, total, err := repo.List(ctx, entities.TuitionFilter{Search: "math"}, utils.GetPaginationParams(1, 10))
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, math.ID, items[0].ID)

	_, total, err = repo.List(ctx, entities.TuitionFilter{Search: "dhanMONDI"}, utils.GetPaginationParams(1, 10))
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	_, total, err = repo.List(ctx, entities.TuitionFilter{Search: "%"}, utils.GetPaginationParams(1, 10))
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestTuitionRepository_StatusCompareAndSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewTuitionRepository(db)
	ctx := context.Background()

	tuition := seedTuition(t, repo, "s@example.com", entities.TuitionStatusPending, time.Now().UTC())

	require.NoError(t, repo.UpdateStatus(ctx, tuition.ID, entities.TuitionStatusPending, entities.TuitionStatusApproved))
	err := repo.UpdateStatus(ctx, tuition.ID, entities.TuitionStatusPending, entities.TuitionStatusRejected)
	require.ErrorIs(t, err, domainerrors.ErrConflict)

	err = repo.UpdateStatus(ctx, uuid.New(), entities.TuitionStatusPending, entities.TuitionStatusApproved)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	hiredAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.MarkFilled(ctx, tuition.ID, entities.HireRecord{
		TutorEmail: "tutor@example.com",
		TutorName:  "Tutor",
		HiredAt:    hiredAt,
	}))

	got, err := repo.GetByID(ctx, tuition.ID)
	require.NoError(t, err)
	require.Equal(t, entities.TuitionStatusFilled, got.Status)
	require.Equal(t, "tutor@example.com", got.HiredTutorEmail.String)
	require.True(t, got.HiredAt.Valid)

	err = repo.MarkFilled(ctx, tuition.ID, entities.HireRecord{TutorEmail: "x@example.com", HiredAt: hiredAt})
	require.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestTuitionRepository_UpdateDeleteCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewTuitionRepository(db)
	ctx := context.Background()

	tuition := seedTuition(t, repo, "s@example.com", entities.TuitionStatusPending, time.Now().UTC())

	budget := 7500.0
	require.NoError(t, repo.Update(ctx, tuition.ID, &entities.UpdateTuitionInput{Budget: &budget}))
	got, err := repo.GetByID(ctx, tuition.ID)
	require.NoError(t, err)
	require.Equal(t, 7500.0, got.Budget)
	require.Equal(t, entities.TuitionStatusPending, got.Status)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, repo.Delete(ctx, tuition.ID))
	require.ErrorIs(t, repo.Delete(ctx, tuition.ID), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, tuition.ID, &entities.UpdateTuitionInput{Budget: &budget}), domainerrors.ErrNotFound)

	_, err = repo.GetByID(ctx, tuition.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
