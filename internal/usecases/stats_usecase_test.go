package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"tutorhub.backend/internal/usecases"
)

func TestStatsUsecase_GetStats(t *testing.T) {
	users := new(MockUserRepository)
	tuitions := new(MockTuitionRepository)
	apps := new(MockApplicationRepository)
	payments := new(MockPaymentRepository)
	uc := usecases.NewStatsUsecase(users, tuitions, apps, payments)

	users.On("Count", mock.Anything).Return(int64(4), nil)
	tuitions.On("Count", mock.Anything).Return(int64(3), nil)
	apps.On("Count", mock.Anything).Return(int64(2), nil)
	payments.On("Count", mock.Anything).Return(int64(0), nil)
	payments.On("TotalRevenue", mock.Anything).Return(float64(0), nil)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalTuitions)
	assert.Equal(t, int64(2), stats.TotalApplications)
	assert.Zero(t, stats.TotalPayments)
	assert.Zero(t, stats.TotalRevenue)
}

func TestStatsUsecase_GetStats_Error(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecases.NewStatsUsecase(users, new(MockTuitionRepository), new(MockApplicationRepository), new(MockPaymentRepository))
	users.On("Count", mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := uc.GetStats(context.Background())
	assert.Error(t, err)
}
