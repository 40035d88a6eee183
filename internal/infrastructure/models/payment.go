package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null"`
	TuitionID     uuid.UUID `gorm:"type:uuid;not null"`
	StudentEmail  string    `gorm:"type:varchar(255);index;not null"`
	TutorEmail    string    `gorm:"type:varchar(255);index;not null"`
	TutorName     string    `gorm:"type:varchar(100)"`
	Amount        float64   `gorm:"type:numeric(12,2);not null"`
	Currency      string    `gorm:"type:varchar(10);not null"`
	TransactionID string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PaidAt        time.Time
}

func (Payment) TableName() string { return "payments" }
