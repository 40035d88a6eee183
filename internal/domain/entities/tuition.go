package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"tutorhub.backend/pkg/utils"
)

// TuitionStatus represents the lifecycle state of a posting
type TuitionStatus string

const (
	TuitionStatusPending  TuitionStatus = "pending"
	TuitionStatusApproved TuitionStatus = "approved"
	TuitionStatusRejected TuitionStatus = "rejected"
	TuitionStatusFilled   TuitionStatus = "filled"
)

var tuitionTransitions = map[TuitionStatus][]TuitionStatus{
	TuitionStatusPending:  {TuitionStatusApproved, TuitionStatusRejected},
	TuitionStatusApproved: {TuitionStatusFilled},
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s TuitionStatus) CanTransitionTo(next TuitionStatus) bool {
	for _, allowed := range tuitionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TuitionStatus) Valid() bool {
	switch s {
	case TuitionStatusPending, TuitionStatusApproved, TuitionStatusRejected, TuitionStatusFilled:
		return true
	}
	return false
}

// Tuition represents a student's request for a tutor
type Tuition struct {
	ID              uuid.UUID     `json:"id"`
	StudentEmail    string        `json:"studentEmail"`
	StudentName     string        `json:"studentName"`
	Subject         string        `json:"subject"`
	ClassLevel      string        `json:"classLevel"`
	Location        string        `json:"location"`
	Budget          float64       `json:"budget"`
	Description     string        `json:"description"`
	Status          TuitionStatus `json:"status"`
	HiredTutorEmail null.String   `json:"hiredTutorEmail"`
	HiredTutorName  null.String   `json:"hiredTutorName"`
	HiredAt         null.Time     `json:"hiredAt"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// CreateTuitionInput represents input for posting a tuition
type CreateTuitionInput struct {
	StudentName string  `json:"studentName" binding:"max=100"`
	Subject     string  `json:"subject" binding:"required,max=100"`
	ClassLevel  string  `json:"classLevel" binding:"max=50"`
	Location    string  `json:"location" binding:"required,max=200"`
	Budget      float64 `json:"budget" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=2000"`
}

// UpdateTuitionInput holds the owner-editable fields; nil means unchanged.
type UpdateTuitionInput struct {
	Subject     *string  `json:"subject" binding:"omitempty,min=1,max=100"`
	ClassLevel  *string  `json:"classLevel" binding:"omitempty,max=50"`
	Location    *string  `json:"location" binding:"omitempty,min=1,max=200"`
	Budget      *float64 `json:"budget" binding:"omitempty,gt=0"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
}

// Empty reports whether no field is set.
func (in *UpdateTuitionInput) Empty() bool {
	return in.Subject == nil && in.ClassLevel == nil && in.Location == nil && in.Budget == nil && in.Description == nil
}

// UpdateTuitionStatusInput is the admin decision on a pending posting
type UpdateTuitionStatusInput struct {
	Status TuitionStatus `json:"status" binding:"required,tuitiondecision"`
}

// TuitionFilter narrows tuition listings.
type TuitionFilter struct {
	Status       TuitionStatus
	StudentEmail string
	Search       string
}

// HireRecord is written onto a tuition when a payment fills it.
type HireRecord struct {
	TutorEmail string
	TutorName  string
	HiredAt    time.Time
}

// TuitionPage is one page of a tuition listing.
type TuitionPage struct {
	Tuitions   []*Tuition           `json:"tuitions"`
	Total      int64                `json:"total"`
	Pagination utils.PaginationMeta `json:"pagination"`
}
