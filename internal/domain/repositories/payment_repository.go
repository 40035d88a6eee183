package repositories

import (
	"context"

	"tutorhub.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	// Create returns ErrAlreadyExists when the transaction id was recorded before.
	Create(ctx context.Context, payment *entities.Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*entities.Payment, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]*entities.Payment, error)
	ListByTutor(ctx context.Context, tutorEmail string) ([]*entities.Payment, error)
	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}
