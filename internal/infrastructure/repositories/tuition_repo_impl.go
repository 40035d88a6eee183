package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/infrastructure/models"
	"tutorhub.backend/pkg/utils"
)

// TuitionRepository implements tuition data operations
type TuitionRepository struct {
	db *gorm.DB
}

// NewTuitionRepository creates a new tuition repository
func NewTuitionRepository(db *gorm.DB) *TuitionRepository {
	return &TuitionRepository{db: db}
}

// Create creates a new tuition posting
func (r *TuitionRepository) Create(ctx context.Context, tuition *entities.Tuition) error {
	m := &models.Tuition{
		ID:              tuition.ID,
		StudentEmail:    tuition.StudentEmail,
		StudentName:     tuition.StudentName,
		Subject:         tuition.Subject,
		ClassLevel:      tuition.ClassLevel,
		Location:        tuition.Location,
		Budget:          tuition.Budget,
		Description:     tuition.Description,
		Status:          string(tuition.Status),
		HiredTutorEmail: tuition.HiredTutorEmail,
		HiredTutorName:  tuition.HiredTutorName,
		HiredAt:         tuition.HiredAt,
		CreatedAt:       tuition.CreatedAt,
		UpdatedAt:       tuition.UpdatedAt,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

// GetByID gets a tuition by ID
func (r *TuitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Tuition, error) {
	var m models.Tuition
	if err := forUpdate(ctx, GetDB(ctx, r.db)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns one page of tuitions matching filter together with the total match count
func (r *TuitionRepository) List(ctx context.Context, filter entities.TuitionFilter, pagination utils.PaginationParams) ([]*entities.Tuition, int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Tuition{}).Scopes(tuitionFilterScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := GetDB(ctx, r.db).Scopes(tuitionFilterScope(filter)).Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Offset(pagination.CalculateOffset()).Limit(pagination.Limit)
	}

	var rows []models.Tuition
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	tuitions := make([]*entities.Tuition, 0, len(rows))
	for i := range rows {
		tuitions = append(tuitions, r.toEntity(&rows[i]))
	}
	return tuitions, total, nil
}

func tuitionFilterScope(filter entities.TuitionFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", string(filter.Status))
		}
		if filter.StudentEmail != "" {
			db = db.Where("student_email = ?", entities.NormalizeEmail(filter.StudentEmail))
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			term := "%" + escapeLike(strings.ToLower(search)) + "%"
			db = db.Where(`(LOWER(subject) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\')`, term, term)
		}
		return db
	}
}

// Update applies owner edits to the descriptive fields
func (r *TuitionRepository) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateTuitionInput) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if input.Subject != nil {
		updates["subject"] = strings.TrimSpace(*input.Subject)
	}
	if input.ClassLevel != nil {
		updates["class_level"] = strings.TrimSpace(*input.ClassLevel)
	}
	if input.Location != nil {
		updates["location"] = strings.TrimSpace(*input.Location)
	}
	if input.Budget != nil {
		updates["budget"] = *input.Budget
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	result := GetDB(ctx, r.db).Model(&models.Tuition{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus performs a compare-and-set on the status column
func (r *TuitionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.TuitionStatus) error {
	result := GetDB(ctx, r.db).Model(&models.Tuition{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

// MarkFilled closes an approved posting and records the hired tutor
func (r *TuitionRepository) MarkFilled(ctx context.Context, id uuid.UUID, hire entities.HireRecord) error {
	result := GetDB(ctx, r.db).Model(&models.Tuition{}).
		Where("id = ? AND status = ?", id, string(entities.TuitionStatusApproved)).
		Updates(map[string]interface{}{
			"status":            string(entities.TuitionStatusFilled),
			"hired_tutor_email": null.StringFrom(hire.TutorEmail),
			"hired_tutor_name":  null.StringFrom(hire.TutorName),
			"hired_at":          null.TimeFrom(hire.HiredAt),
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

// Delete removes a tuition. Applications referencing it are kept.
func (r *TuitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Tuition{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Count returns the number of tuitions
func (r *TuitionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Model(&models.Tuition{}).Count(&n).Error
	return n, err
}

func (r *TuitionRepository) missingOrConflict(ctx context.Context, id uuid.UUID) error {
	var n int64
	if err := GetDB(ctx, r.db).Model(&models.Tuition{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrConflict
}

func (r *TuitionRepository) toEntity(m *models.Tuition) *entities.Tuition {
	return &entities.Tuition{
		ID:              m.ID,
		StudentEmail:    m.StudentEmail,
		StudentName:     m.StudentName,
		Subject:         m.Subject,
		ClassLevel:      m.ClassLevel,
		Location:        m.Location,
		Budget:          m.Budget,
		Description:     m.Description,
		Status:          entities.TuitionStatus(m.Status),
		HiredTutorEmail: m.HiredTutorEmail,
		HiredTutorName:  m.HiredTutorName,
		HiredAt:         m.HiredAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
