package usecases

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/domain/repositories"
	"tutorhub.backend/pkg/logger"
	"tutorhub.backend/pkg/utils"
)

// HireSaga turns a captured payment into a hire. The transaction id is the
// idempotency key: replaying a confirmation returns the stored payment and
// writes nothing. The payment insert, application approval and tuition fill
// commit together or not at all.
type HireSaga struct {
	applications repositories.ApplicationRepository
	tuitions     repositories.TuitionRepository
	payments     repositories.PaymentRepository
	uow          repositories.UnitOfWork
	gateway      PaymentGateway
	settings     PaymentSettings

	principal *entities.Principal
	input     *entities.RecordPaymentInput

	applicationID uuid.UUID
	transactionID string
}

// Run executes every step in order and stops at the first failure
func (s *HireSaga) Run(ctx context.Context) (*entities.PaymentResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	replayed, err := s.replay(ctx)
	if err != nil || replayed != nil {
		return replayed, err
	}

	if err := s.verifyCapture(ctx); err != nil {
		return nil, err
	}

	payment, err := s.commit(ctx)
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		// A concurrent confirmation with the same transaction id won.
		if result, replayErr := s.replay(ctx); replayErr != nil || result != nil {
			return result, replayErr
		}
		return nil, domainerrors.Conflict("transaction id was already used for another payment")
	}
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Hire completed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("application_id", payment.ApplicationID.String()),
		zap.String("tuition_id", payment.TuitionID.String()),
		zap.String("transaction_id", payment.TransactionID),
	)
	return &entities.PaymentResult{Outcome: entities.OutcomeCreated, Payment: payment}, nil
}

func (s *HireSaga) validate() error {
	if s.input.Amount <= 0 {
		return domainerrors.BadRequest("amount must be greater than zero")
	}
	if s.input.Amount > entities.MaxAmount {
		return domainerrors.BadRequest("amount exceeds the maximum amount")
	}
	s.transactionID = strings.TrimSpace(s.input.TransactionID)
	if s.transactionID == "" {
		return domainerrors.BadRequest("transactionId is required")
	}
	id, ok := utils.ParseID(s.input.ApplicationID)
	if !ok {
		return domainerrors.BadRequest("invalid application id")
	}
	s.applicationID = id
	return nil
}

// replay returns a duplicate outcome when the transaction id was already recorded.
func (s *HireSaga) replay(ctx context.Context) (*entities.PaymentResult, error) {
	existing, err := s.payments.GetByTransactionID(ctx, s.transactionID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !s.principal.Is(existing.StudentEmail) || existing.ApplicationID != s.applicationID {
		return nil, domainerrors.Conflict("transaction id was already used for another payment")
	}
	if entities.ToMinorUnits(existing.Amount) != entities.ToMinorUnits(s.input.Amount) {
		return nil, domainerrors.Conflict("transaction id was already recorded with a different amount")
	}
	return &entities.PaymentResult{Outcome: entities.OutcomeDuplicate, Payment: existing}, nil
}

func (s *HireSaga) verifyCapture(ctx context.Context) error {
	if !s.settings.VerifyCapture {
		return nil
	}
	if s.gateway == nil {
		return errGatewayUnavailable
	}

	intent, err := s.gateway.GetPaymentIntent(ctx, s.transactionID)
	if err != nil {
		return domainerrors.NewAppError(http.StatusBadRequest, "payment could not be verified", domainerrors.ErrPaymentNotCaptured)
	}
	if intent.Status != "succeeded" {
		return domainerrors.NewAppError(http.StatusBadRequest, "payment has not been captured", domainerrors.ErrPaymentNotCaptured)
	}
	if intent.Amount != entities.ToMinorUnits(s.input.Amount) || !strings.EqualFold(intent.Currency, s.settings.Currency) {
		return domainerrors.NewAppError(http.StatusBadRequest, "captured amount does not match", domainerrors.ErrPaymentNotCaptured)
	}
	return nil
}

func (s *HireSaga) commit(ctx context.Context) (*entities.Payment, error) {
	var payment *entities.Payment

	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := s.uow.WithLock(txCtx)

		application, err := s.applications.GetByID(lockCtx, s.applicationID)
		if err != nil {
			return notFoundOr(err, "application not found")
		}
		if application.Status != entities.ApplicationStatusPending {
			return domainerrors.Conflict("application is already " + string(application.Status))
		}

		tuition, err := s.tuitions.GetByID(lockCtx, application.TuitionID)
		if err != nil {
			return notFoundOr(err, "tuition not found")
		}
		if tuition.Status != entities.TuitionStatusApproved {
			return domainerrors.Conflict("tuition is " + string(tuition.Status) + " and cannot be filled")
		}
		if !s.principal.Is(tuition.StudentEmail) {
			return domainerrors.Forbidden("only the tuition owner can pay for this application")
		}

		now := time.Now().UTC()
		payment = &entities.Payment{
			ID:            utils.GenerateUUIDv7(),
			ApplicationID: application.ID,
			TuitionID:     tuition.ID,
			StudentEmail:  tuition.StudentEmail,
			TutorEmail:    application.TutorEmail,
			TutorName:     application.TutorName,
			Amount:        s.input.Amount,
			Currency:      s.settings.Currency,
			TransactionID: s.transactionID,
			PaidAt:        now,
		}
		if err := s.payments.Create(txCtx, payment); err != nil {
			return err
		}

		if err := s.applications.UpdateStatus(txCtx, application.ID, entities.ApplicationStatusPending, entities.ApplicationStatusApproved); err != nil {
			return conflictOr(err, "application not found", "application status changed concurrently")
		}

		hire := entities.HireRecord{
			TutorEmail: application.TutorEmail,
			TutorName:  application.TutorName,
			HiredAt:    now,
		}
		if err := s.tuitions.MarkFilled(txCtx, tuition.ID, hire); err != nil {
			return conflictOr(err, "tuition not found", "tuition status changed concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
