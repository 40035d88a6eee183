package usecases

import (
	"context"
	"net/http"
	"strings"

	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/domain/repositories"
	"tutorhub.backend/pkg/utils"
)

// PaymentGateway is the external payment processor
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (*entities.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*entities.PaymentIntent, error)
}

// PaymentSettings configures checkout behaviour
type PaymentSettings struct {
	Currency      string
	VerifyCapture bool
}

// PaymentUsecase handles checkout and hire finalization
type PaymentUsecase struct {
	applicationRepo repositories.ApplicationRepository
	tuitionRepo     repositories.TuitionRepository
	paymentRepo     repositories.PaymentRepository
	uow             repositories.UnitOfWork
	gateway         PaymentGateway
	settings        PaymentSettings
}

// NewPaymentUsecase creates a new payment usecase. gateway may be nil when no
// processor is configured; checkout and capture verification are then unavailable.
func NewPaymentUsecase(
	applicationRepo repositories.ApplicationRepository,
	tuitionRepo repositories.TuitionRepository,
	paymentRepo repositories.PaymentRepository,
	uow repositories.UnitOfWork,
	gateway PaymentGateway,
	settings PaymentSettings,
) *PaymentUsecase {
	if settings.Currency == "" {
		settings.Currency = "usd"
	}
	settings.Currency = strings.ToLower(settings.Currency)
	return &PaymentUsecase{
		applicationRepo: applicationRepo,
		tuitionRepo:     tuitionRepo,
		paymentRepo:     paymentRepo,
		uow:             uow,
		gateway:         gateway,
		settings:        settings,
	}
}

var errGatewayUnavailable = domainerrors.NewAppError(http.StatusServiceUnavailable, "payment processor is not configured", nil)

// CreatePaymentIntent opens a checkout with the processor for hiring the
// tutor behind an application. Only the posting owner may pay.
func (u *PaymentUsecase) CreatePaymentIntent(ctx context.Context, principal *entities.Principal, input *entities.CreatePaymentIntentInput) (*entities.PaymentIntent, error) {
	if input.Price <= 0 {
		return nil, domainerrors.BadRequest("price must be greater than zero")
	}
	if input.Price > entities.MaxAmount {
		return nil, domainerrors.BadRequest("price exceeds the maximum amount")
	}
	amount := entities.ToMinorUnits(input.Price)
	if amount <= 0 {
		return nil, domainerrors.BadRequest("price is below the smallest currency unit")
	}

	applicationID, ok := utils.ParseID(input.ApplicationID)
	if !ok {
		return nil, domainerrors.BadRequest("invalid application id")
	}

	application, err := u.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, notFoundOr(err, "application not found")
	}
	if application.Status != entities.ApplicationStatusPending {
		return nil, domainerrors.Conflict("application is already " + string(application.Status))
	}

	tuition, err := u.tuitionRepo.GetByID(ctx, application.TuitionID)
	if err != nil {
		return nil, notFoundOr(err, "tuition not found")
	}
	if !principal.Is(tuition.StudentEmail) {
		return nil, domainerrors.Forbidden("only the tuition owner can pay for this application")
	}

	if u.gateway == nil {
		return nil, errGatewayUnavailable
	}

	intent, err := u.gateway.CreatePaymentIntent(ctx, entities.PaymentIntentRequest{
		Amount:   amount,
		Currency: u.settings.Currency,
		Metadata: map[string]string{
			"application_id": application.ID.String(),
			"tuition_id":     tuition.ID.String(),
			"student_email":  tuition.StudentEmail,
			"tutor_email":    application.TutorEmail,
		},
	})
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return intent, nil
}

// RecordPayment finalizes a hire after the client confirmed capture
func (u *PaymentUsecase) RecordPayment(ctx context.Context, principal *entities.Principal, input *entities.RecordPaymentInput) (*entities.PaymentResult, error) {
	saga := &HireSaga{
		applications: u.applicationRepo,
		tuitions:     u.tuitionRepo,
		payments:     u.paymentRepo,
		uow:          u.uow,
		gateway:      u.gateway,
		settings:     u.settings,
		principal:    principal,
		input:        input,
	}
	return saga.Run(ctx)
}

// ListByStudent returns the payer's payment history
func (u *PaymentUsecase) ListByStudent(ctx context.Context, email string) ([]*entities.Payment, error) {
	return u.paymentRepo.ListByStudent(ctx, email)
}

// ListByTutor returns the payments a tutor was hired through
func (u *PaymentUsecase) ListByTutor(ctx context.Context, email string) ([]*entities.Payment, error) {
	return u.paymentRepo.ListByTutor(ctx, email)
}
