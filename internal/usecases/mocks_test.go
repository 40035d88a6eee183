package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	m.Called(ctx)
	return ctx
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, email string, input *entities.UpdateProfileInput) (*entities.User, error) {
	args := m.Called(ctx, email, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock TuitionRepository
type MockTuitionRepository struct {
	mock.Mock
}

func (m *MockTuitionRepository) Create(ctx context.Context, tuition *entities.Tuition) error {
	args := m.Called(ctx, tuition)
	return args.Error(0)
}

func (m *MockTuitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Tuition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tuition), args.Error(1)
}

func (m *MockTuitionRepository) List(ctx context.Context, filter entities.TuitionFilter, pagination utils.PaginationParams) ([]*entities.Tuition, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Tuition), args.Get(1).(int64), args.Error(2)
}

func (m *MockTuitionRepository) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateTuitionInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockTuitionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.TuitionStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockTuitionRepository) MarkFilled(ctx context.Context, id uuid.UUID, hire entities.HireRecord) error {
	args := m.Called(ctx, id, hire)
	return args.Error(0)
}

func (m *MockTuitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTuitionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, application *entities.Application) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByTuitionAndTutor(ctx context.Context, tuitionID uuid.UUID, tutorEmail string) (*entities.Application, error) {
	args := m.Called(ctx, tuitionID, tutorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListReceived(ctx context.Context, studentEmail string) ([]*entities.ApplicationDetail, error) {
	args := m.Called(ctx, studentEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ApplicationDetail), args.Error(1)
}

func (m *MockApplicationRepository) ListByTutor(ctx context.Context, tutorEmail string) ([]*entities.ApplicationDetail, error) {
	args := m.Called(ctx, tutorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ApplicationDetail), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.ApplicationStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApplicationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entities.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByStudent(ctx context.Context, studentEmail string) ([]*entities.Payment, error) {
	args := m.Called(ctx, studentEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByTutor(ctx context.Context, tutorEmail string) ([]*entities.Payment, error) {
	args := m.Called(ctx, tutorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

// Mock PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (*entities.PaymentIntent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentIntent), args.Error(1)
}

func (m *MockPaymentGateway) GetPaymentIntent(ctx context.Context, id string) (*entities.PaymentIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentIntent), args.Error(1)
}
