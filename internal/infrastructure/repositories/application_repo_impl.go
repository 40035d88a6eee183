package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/infrastructure/models"
)

const applicationDetailColumns = `a.*,
	t.id AS tuition_ref_id,
	t.student_email AS tuition_student_email,
	t.subject AS tuition_subject,
	t.class_level AS tuition_class_level,
	t.location AS tuition_location,
	t.budget AS tuition_budget,
	t.status AS tuition_status`

// ApplicationRepository implements application data operations
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create creates a new application
func (r *ApplicationRepository) Create(ctx context.Context, application *entities.Application) error {
	m := &models.Application{
		ID:             application.ID,
		TuitionID:      application.TuitionID,
		TutorEmail:     application.TutorEmail,
		TutorName:      application.TutorName,
		Qualifications: application.Qualifications,
		Experience:     application.Experience,
		ExpectedSalary: application.ExpectedSalary,
		Status:         string(application.Status),
		AppliedAt:      application.AppliedAt,
		UpdatedAt:      application.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Application, error) {
	var m models.Application
	if err := forUpdate(ctx, GetDB(ctx, r.db)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByTuitionAndTutor gets the application a tutor made to a tuition
func (r *ApplicationRepository) FindByTuitionAndTutor(ctx context.Context, tuitionID uuid.UUID, tutorEmail string) (*entities.Application, error) {
	var m models.Application
	err := GetDB(ctx, r.db).
		Where("tuition_id = ? AND tutor_email = ?", tuitionID, entities.NormalizeEmail(tutorEmail)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListReceived returns applications made to postings owned by studentEmail, newest first
func (r *ApplicationRepository) ListReceived(ctx context.Context, studentEmail string) ([]*entities.ApplicationDetail, error) {
	var rows []models.ApplicationWithTuition
	err := GetDB(ctx, r.db).
		Table("applications AS a").
		Select(applicationDetailColumns).
		Joins("INNER JOIN tuitions t ON t.id = a.tuition_id").
		Where("t.student_email = ?", entities.NormalizeEmail(studentEmail)).
		Order("a.applied_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.toDetails(rows), nil
}

// ListByTutor returns a tutor's own applications, newest first. Applications whose
// posting was deleted are still listed, without tuition data.
func (r *ApplicationRepository) ListByTutor(ctx context.Context, tutorEmail string) ([]*entities.ApplicationDetail, error) {
	var rows []models.ApplicationWithTuition
	err := GetDB(ctx, r.db).
		Table("applications AS a").
		Select(applicationDetailColumns).
		Joins("LEFT JOIN tuitions t ON t.id = a.tuition_id").
		Where("a.tutor_email = ?", entities.NormalizeEmail(tutorEmail)).
		Order("a.applied_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.toDetails(rows), nil
}

// UpdateStatus performs a compare-and-set on the status column
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.ApplicationStatus) error {
	result := GetDB(ctx, r.db).Model(&models.Application{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := GetDB(ctx, r.db).Model(&models.Application{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrConflict
}

// Delete removes an application
func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Count returns the number of applications
func (r *ApplicationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Model(&models.Application{}).Count(&n).Error
	return n, err
}

func (r *ApplicationRepository) toEntity(m *models.Application) *entities.Application {
	return &entities.Application{
		ID:             m.ID,
		TuitionID:      m.TuitionID,
		TutorEmail:     m.TutorEmail,
		TutorName:      m.TutorName,
		Qualifications: m.Qualifications,
		Experience:     m.Experience,
		ExpectedSalary: m.ExpectedSalary,
		Status:         entities.ApplicationStatus(m.Status),
		AppliedAt:      m.AppliedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (r *ApplicationRepository) toDetails(rows []models.ApplicationWithTuition) []*entities.ApplicationDetail {
	details := make([]*entities.ApplicationDetail, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		detail := &entities.ApplicationDetail{Application: *r.toEntity(&row.Application)}
		if row.TuitionRefID.Valid {
			detail.Tuition = &entities.TuitionSummary{
				ID:           row.TuitionID,
				StudentEmail: row.TuitionStudentEmail.String,
				Subject:      row.TuitionSubject.String,
				ClassLevel:   row.TuitionClassLevel.String,
				Location:     row.TuitionLocation.String,
				Budget:       row.TuitionBudget.Float64,
				Status:       entities.TuitionStatus(row.TuitionStatus.String),
			}
		}
		details = append(details, detail)
	}
	return details
}
