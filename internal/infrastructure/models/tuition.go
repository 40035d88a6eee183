package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Tuition struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	StudentEmail    string      `gorm:"type:varchar(255);index;not null"`
	StudentName     string      `gorm:"type:varchar(100)"`
	Subject         string      `gorm:"type:varchar(100);not null"`
	ClassLevel      string      `gorm:"type:varchar(50)"`
	Location        string      `gorm:"type:varchar(200);not null"`
	Budget          float64     `gorm:"type:numeric(12,2);not null"`
	Description     string      `gorm:"type:text"`
	Status          string      `gorm:"type:varchar(20);index;not null;default:'pending'"`
	HiredTutorEmail null.String `gorm:"type:varchar(255)"`
	HiredTutorName  null.String `gorm:"type:varchar(100)"`
	HiredAt         null.Time   `gorm:"type:timestamp"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Tuition) TableName() string { return "tuitions" }
