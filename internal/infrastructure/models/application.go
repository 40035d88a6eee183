package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Application struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TuitionID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_applications_tuition_tutor"`
	TutorEmail     string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_applications_tuition_tutor"`
	TutorName      string    `gorm:"type:varchar(100)"`
	Qualifications string    `gorm:"type:text"`
	Experience     string    `gorm:"type:text"`
	ExpectedSalary float64   `gorm:"type:numeric(12,2)"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'"`
	AppliedAt      time.Time
	UpdatedAt      time.Time
}

func (Application) TableName() string { return "applications" }

// ApplicationWithTuition is the row shape of the applications ⋈ tuitions views.
// Tuition columns are nullable because the posting may have been deleted.
type ApplicationWithTuition struct {
	Application
	TuitionRefID        null.String
	TuitionStudentEmail null.String
	TuitionSubject      null.String
	TuitionClassLevel   null.String
	TuitionLocation     null.String
	TuitionBudget       null.Float64
	TuitionStatus       null.String
}
