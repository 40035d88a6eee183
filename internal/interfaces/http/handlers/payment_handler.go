package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/internal/interfaces/http/response"
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, principal *entities.Principal, input *entities.CreatePaymentIntentInput) (*entities.PaymentIntent, error)
	RecordPayment(ctx context.Context, principal *entities.Principal, input *entities.RecordPaymentInput) (*entities.PaymentResult, error)
	ListByStudent(ctx context.Context, email string) ([]*entities.Payment, error)
	ListByTutor(ctx context.Context, email string) ([]*entities.Payment, error)
}

// PaymentHandler handles checkout and payment history endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// CreatePaymentIntent opens a checkout for hiring an applicant
// POST /create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input entities.CreatePaymentIntentInput
	if !bindJSON(c, &input) {
		return
	}

	intent, err := h.paymentUsecase.CreatePaymentIntent(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, intent)
}

// RecordPayment finalizes the hire after capture. Replaying a transaction
// answers 200 with the stored payment and a null insertedId.
// POST /payments
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input entities.RecordPaymentInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.paymentUsecase.RecordPayment(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Outcome == entities.OutcomeDuplicate {
		response.Success(c, http.StatusOK, gin.H{
			"message":    "Payment already recorded",
			"insertedId": nil,
			"payment":    result.Payment,
		})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message":    "Payment recorded and tutor hired",
		"insertedId": result.Payment.ID,
		"payment":    result.Payment,
	})
}

// ListMyHistory lists payments made by the caller
// GET /payments/my-history/:email
func (h *PaymentHandler) ListMyHistory(c *gin.Context) {
	payments, err := h.paymentUsecase.ListByStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}

// ListTutorHistory lists payments the caller was hired through
// GET /payments/tutor-history/:email
func (h *PaymentHandler) ListTutorHistory(c *gin.Context) {
	payments, err := h.paymentUsecase.ListByTutor(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}
