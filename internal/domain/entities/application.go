package entities

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus represents the state of a tutor's bid
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application represents a tutor's application to a tuition
type Application struct {
	ID             uuid.UUID         `json:"id"`
	TuitionID      uuid.UUID         `json:"tuitionId"`
	TutorEmail     string            `json:"tutorEmail"`
	TutorName      string            `json:"tutorName"`
	Qualifications string            `json:"qualifications"`
	Experience     string            `json:"experience"`
	ExpectedSalary float64           `json:"expectedSalary"`
	Status         ApplicationStatus `json:"status"`
	AppliedAt      time.Time         `json:"appliedAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// TuitionSummary is the slice of a tuition joined onto application views.
type TuitionSummary struct {
	ID           uuid.UUID     `json:"id"`
	StudentEmail string        `json:"studentEmail"`
	Subject      string        `json:"subject"`
	ClassLevel   string        `json:"classLevel"`
	Location     string        `json:"location"`
	Budget       float64       `json:"budget"`
	Status       TuitionStatus `json:"status"`
}

// ApplicationDetail is an application with its tuition, if it still exists.
type ApplicationDetail struct {
	Application
	Tuition *TuitionSummary `json:"tuition"`
}

// CreateApplicationInput represents input for applying to a tuition
type CreateApplicationInput struct {
	TuitionID      string  `json:"tuitionId" binding:"required,uuid"`
	TutorName      string  `json:"tutorName" binding:"max=100"`
	Qualifications string  `json:"qualifications" binding:"max=1000"`
	Experience     string  `json:"experience" binding:"max=1000"`
	ExpectedSalary float64 `json:"expectedSalary" binding:"gte=0"`
}
