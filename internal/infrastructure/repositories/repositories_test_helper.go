package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/internal/infrastructure/migrations"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, migrations.NewMigrator(sqlDB, "sqlite3").Up(context.Background()), "migrate")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func seedTuition(t *testing.T, repo *TuitionRepository, owner string, status entities.TuitionStatus, at time.Time) *entities.Tuition {
	t.Helper()
	tuition := &entities.Tuition{
		ID:           uuid.New(),
		StudentEmail: owner,
		StudentName:  "Student",
		Subject:      "Physics",
		ClassLevel:   "HSC",
		Location:     "Dhanmondi",
		Budget:       5000,
		Status:       status,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
	require.NoError(t, repo.Create(context.Background(), tuition))
	return tuition
}

func seedApplication(t *testing.T, repo *ApplicationRepository, tuitionID uuid.UUID, tutor string, at time.Time) *entities.Application {
	t.Helper()
	app := &entities.Application{
		ID:             uuid.New(),
		TuitionID:      tuitionID,
		TutorEmail:     tutor,
		TutorName:      "Tutor",
		Qualifications: "BSc",
		Experience:     "2 years",
		ExpectedSalary: 4500,
		Status:         entities.ApplicationStatusPending,
		AppliedAt:      at,
		UpdatedAt:      at,
	}
	require.NoError(t, repo.Create(context.Background(), app))
	return app
}
