package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/infrastructure/models"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := &models.Payment{
		ID:            payment.ID,
		ApplicationID: payment.ApplicationID,
		TuitionID:     payment.TuitionID,
		StudentEmail:  payment.StudentEmail,
		TutorEmail:    payment.TutorEmail,
		TutorName:     payment.TutorName,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		TransactionID: payment.TransactionID,
		PaidAt:        payment.PaidAt,
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByTransactionID gets a payment by its processor transaction id
func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entities.Payment, error) {
	var m models.Payment
	if err := GetDB(ctx, r.db).Where("transaction_id = ?", transactionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByStudent returns payments made by a student, newest first
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentEmail string) ([]*entities.Payment, error) {
	return r.listBy(ctx, "student_email", studentEmail)
}

// ListByTutor returns payments received by a tutor, newest first
func (r *PaymentRepository) ListByTutor(ctx context.Context, tutorEmail string) ([]*entities.Payment, error) {
	return r.listBy(ctx, "tutor_email", tutorEmail)
}

func (r *PaymentRepository) listBy(ctx context.Context, column, email string) ([]*entities.Payment, error) {
	var ms []models.Payment
	err := GetDB(ctx, r.db).
		Where(column+" = ?", entities.NormalizeEmail(email)).
		Order("paid_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	payments := make([]*entities.Payment, 0, len(ms))
	for i := range ms {
		payments = append(payments, r.toEntity(&ms[i]))
	}
	return payments, nil
}

// Count returns the number of payments
func (r *PaymentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Model(&models.Payment{}).Count(&n).Error
	return n, err
}

// TotalRevenue sums every recorded payment amount
func (r *PaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := GetDB(ctx, r.db).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *PaymentRepository) toEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		TuitionID:     m.TuitionID,
		StudentEmail:  m.StudentEmail,
		TutorEmail:    m.TutorEmail,
		TutorName:     m.TutorName,
		Amount:        m.Amount,
		Currency:      m.Currency,
		TransactionID: m.TransactionID,
		PaidAt:        m.PaidAt,
	}
}
