package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tutorhub.backend/internal/config"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/internal/infrastructure/migrations"
	"tutorhub.backend/internal/infrastructure/repositories"
	"tutorhub.backend/pkg/utils"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origOpenGorm := openGorm
	origRunMigrations := runMigrations
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		openGorm = origOpenGorm
		runMigrations = origRunMigrations
		runServer = origRunServer
	})

	loadDotenv = func(...string) error { return nil }
	loadCfg = func() (*config.Config, error) { return baseTestConfig(), nil }
	initLog = func(string) {}
	initRedis = func(string, string) error { return nil }
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: "18080", Env: "development"},
		Database: config.DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "postgres", Name: "tutorhub", SSLMode: "disable", AutoMigrate: true},
		JWT:      config.JWTConfig{Secret: "secret", Expiry: time.Hour},
		Payment:  config.PaymentConfig{Currency: "usd"},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// useSQLite points the database hooks at a fresh in-memory database.
func useSQLite(t *testing.T) **gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	var captured *gorm.DB

	openDB = func(string) (*sql.DB, error) { return sql.Open("sqlite3", dsn) }
	runMigrations = func(ctx context.Context, db *sql.DB) error {
		return migrations.NewMigrator(db, "sqlite3").Up(ctx)
	}
	openGorm = func(db *sql.DB) (*gorm.DB, error) {
		gdb, err := gorm.Open(sqlite.Dialector{Conn: db}, &gorm.Config{TranslateError: true})
		captured = gdb
		return gdb, err
	}
	return &captured
}

func TestRunMainProcess_ConfigError(t *testing.T) {
	withMainHooks(t)
	loadCfg = func() (*config.Config, error) { return nil, errors.New("JWT_SECRET missing") }

	assert.Error(t, runMainProcess())
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)
	loadCfg = func() (*config.Config, error) {
		cfg := baseTestConfig()
		cfg.Redis.URL = "redis://127.0.0.1:0"
		return cfg, nil
	}
	initRedis = func(string, string) error { return errors.New("redis down") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)
	openDB = func(string) (*sql.DB, error) { return nil, errors.New("db open failed") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}

func TestRunMainProcess_MigrationError(t *testing.T) {
	withMainHooks(t)
	useSQLite(t)
	runMigrations = func(context.Context, *sql.DB) error { return errors.New("bad migration") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run migrations")
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)
	useSQLite(t)
	runServer = func(context.Context, *http.Server) error { return errors.New("listen failed") }

	assert.Error(t, runMainProcess())
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func (a apiClient) call(method, path, token string, body interface{}) (int, map[string]interface{}) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (a apiClient) token(email string) string {
	a.t.Helper()
	code, body := a.call(http.MethodPost, "/jwt", "", map[string]string{"email": email})
	require.Equal(a.t, http.StatusOK, code)
	return body["token"].(string)
}

func TestRunMainProcess_ServesMarketplaceFlow(t *testing.T) {
	withMainHooks(t)
	db := useSQLite(t)

	runServer = func(_ context.Context, srv *http.Server) error {
		api := apiClient{t: t, handler: srv.Handler}

		admin := &entities.User{ID: utils.GenerateUUIDv7(), Email: "admin@mail.com", Role: entities.UserRoleAdmin, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		require.NoError(t, repositories.NewUserRepository(*db).Create(context.Background(), admin))

		studentTok := api.token("a@mail.com")
		tutorTok := api.token("b@mail.com")
		adminTok := api.token("admin@mail.com")

		code, _ := api.call(http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, code)
		code, _ = api.call(http.MethodGet, "/admin-stats", "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)

		code, _ = api.call(http.MethodPost, "/users", "", map[string]string{"email": "b@mail.com", "name": "B", "role": "tutor"})
		require.Equal(t, http.StatusCreated, code)

		code, body := api.call(http.MethodPost, "/tuitions", studentTok, map[string]interface{}{"subject": "Mathematics", "location": "Mirpur", "budget": 20})
		require.Equal(t, http.StatusCreated, code)
		tuitionID := body["insertedId"].(string)

		_, body = api.call(http.MethodGet, "/tuitions?search=math", "", nil)
		assert.EqualValues(t, 0, body["total"])

		code, _ = api.call(http.MethodPatch, "/tuitions/status/"+tuitionID, studentTok, map[string]string{"status": "approved"})
		assert.Equal(t, http.StatusForbidden, code)
		code, _ = api.call(http.MethodPatch, "/tuitions/status/"+tuitionID, adminTok, map[string]string{"status": "approved"})
		require.Equal(t, http.StatusOK, code)

		_, body = api.call(http.MethodGet, "/tuitions?search=MATH", "", nil)
		assert.EqualValues(t, 1, body["total"])

		code, _ = api.call(http.MethodPost, "/applications", studentTok, map[string]string{"tuitionId": tuitionID})
		assert.Equal(t, http.StatusForbidden, code, "students cannot apply")

		code, body = api.call(http.MethodPost, "/applications", tutorTok, map[string]string{"tuitionId": tuitionID, "tutorName": "B"})
		require.Equal(t, http.StatusCreated, code)
		applicationID := body["insertedId"].(string)

		code, body = api.call(http.MethodPost, "/applications", tutorTok, map[string]string{"tuitionId": tuitionID})
		require.Equal(t, http.StatusOK, code)
		assert.Nil(t, body["insertedId"])

		code, _ = api.call(http.MethodGet, "/applications/received/b@mail.com", studentTok, nil)
		assert.Equal(t, http.StatusForbidden, code)

		code, _ = api.call(http.MethodPost, "/create-payment-intent", studentTok, map[string]interface{}{"applicationId": applicationID, "price": 20})
		assert.Equal(t, http.StatusServiceUnavailable, code, "no processor configured")

		payment := map[string]interface{}{"applicationId": applicationID, "amount": 20, "transactionId": "pi_e2e"}
		code, body = api.call(http.MethodPost, "/payments", studentTok, payment)
		require.Equal(t, http.StatusCreated, code, body)
		paymentID := body["insertedId"]

		code, body = api.call(http.MethodPost, "/payments", studentTok, payment)
		require.Equal(t, http.StatusOK, code)
		assert.Nil(t, body["insertedId"])
		assert.Equal(t, paymentID, body["payment"].(map[string]interface{})["id"])

		_, body = api.call(http.MethodGet, "/tuitions/"+tuitionID, "", nil)
		assert.Equal(t, "filled", body["status"])
		assert.Equal(t, "b@mail.com", body["hiredTutorEmail"])

		_, body = api.call(http.MethodGet, "/applications/"+applicationID, tutorTok, nil)
		assert.Equal(t, "approved", body["status"])

		_, body = api.call(http.MethodGet, "/admin-stats", adminTok, nil)
		assert.EqualValues(t, 1, body["totalPayments"])
		assert.EqualValues(t, 20, body["totalRevenue"])
		assert.EqualValues(t, 2, body["totalUsers"])

		code, _ = api.call(http.MethodGet, "/payments/tutor-history/b@mail.com", tutorTok, nil)
		assert.Equal(t, http.StatusOK, code)
		code, _ = api.call(http.MethodGet, "/payments/my-history/a@mail.com", tutorTok, nil)
		assert.Equal(t, http.StatusForbidden, code)
		return nil
	}

	require.NoError(t, runMainProcess())
}
