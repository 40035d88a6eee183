package usecases

import (
	"context"

	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/internal/domain/repositories"
)

// StatsUsecase aggregates dashboard numbers for admins
type StatsUsecase struct {
	userRepo        repositories.UserRepository
	tuitionRepo     repositories.TuitionRepository
	applicationRepo repositories.ApplicationRepository
	paymentRepo     repositories.PaymentRepository
}

// NewStatsUsecase creates a new stats usecase
func NewStatsUsecase(
	userRepo repositories.UserRepository,
	tuitionRepo repositories.TuitionRepository,
	applicationRepo repositories.ApplicationRepository,
	paymentRepo repositories.PaymentRepository,
) *StatsUsecase {
	return &StatsUsecase{
		userRepo:        userRepo,
		tuitionRepo:     tuitionRepo,
		applicationRepo: applicationRepo,
		paymentRepo:     paymentRepo,
	}
}

// GetStats returns collection counts and total revenue. The reads are not
// taken from one snapshot.
func (u *StatsUsecase) GetStats(ctx context.Context) (*entities.AdminStats, error) {
	var (
		stats entities.AdminStats
		err   error
	)

	if stats.TotalUsers, err = u.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalTuitions, err = u.tuitionRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalApplications, err = u.applicationRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPayments, err = u.paymentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = u.paymentRepo.TotalRevenue(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}
