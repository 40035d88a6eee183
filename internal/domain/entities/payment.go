package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Payment records a completed hire. It is never updated after insert.
type Payment struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"applicationId"`
	TuitionID     uuid.UUID `json:"tuitionId"`
	StudentEmail  string    `json:"studentEmail"`
	TutorEmail    string    `json:"tutorEmail"`
	TutorName     string    `json:"tutorName"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transactionId"`
	PaidAt        time.Time `json:"paidAt"`
}

// PaymentIntent is the processor-side handle the client confirms.
type PaymentIntent struct {
	ID           string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// PaymentIntentRequest is what the processor needs to open a checkout.
type PaymentIntentRequest struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// CreatePaymentIntentInput represents input for starting a checkout
type CreatePaymentIntentInput struct {
	ApplicationID string  `json:"applicationId" binding:"required,uuid"`
	Price         float64 `json:"price"`
}

// RecordPaymentInput is posted by the client after the processor confirmed capture
type RecordPaymentInput struct {
	ApplicationID string  `json:"applicationId" binding:"required,uuid"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId" binding:"required"`
}

// MaxAmount is the largest value the payments.amount NUMERIC(12,2) column holds.
const MaxAmount = 9_999_999_999.99

// ToMinorUnits converts a major-unit price to the processor's minor units.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
