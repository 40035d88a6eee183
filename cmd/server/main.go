package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tutorhub.backend/internal/config"
	"tutorhub.backend/internal/infrastructure/datasources/postgres"
	"tutorhub.backend/internal/infrastructure/migrations"
	"tutorhub.backend/internal/infrastructure/payment"
	"tutorhub.backend/internal/infrastructure/repositories"
	"tutorhub.backend/internal/interfaces/http/handlers"
	"tutorhub.backend/internal/interfaces/http/middleware"
	"tutorhub.backend/internal/interfaces/http/validation"
	"tutorhub.backend/internal/usecases"
	"tutorhub.backend/pkg/jwt"
	"tutorhub.backend/pkg/logger"
	"tutorhub.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv    = godotenv.Load
	loadCfg       = config.Load
	initLog       = logger.Init
	initRedis     = redis.Init
	openDB        = postgres.NewConnection
	openGorm      = postgres.OpenGorm
	runMigrations = func(ctx context.Context, db *sql.DB) error {
		return migrations.NewMigrator(db, "postgres").Up(ctx)
	}
	runServer = func(ctx context.Context, srv *http.Server) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadCfg()
	if err != nil {
		return err
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer func() { _ = redis.Close() }()
		logger.Info(ctx, "Redis initialized, idempotency keys enabled")
	} else {
		logger.Warn(ctx, "REDIS_URL not set, idempotency keys disabled")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	sqlDB, err := openDB(cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, sqlDB); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db, err := openGorm(sqlDB)
	if err != nil {
		return err
	}
	logger.Info(ctx, "Connected to database")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := newRouter(cfg, buildRouteDeps(cfg, db), registry)

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Server starting", zap.String("port", cfg.Server.Port))
	if err := runServer(sigCtx, srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}

// buildRouteDeps wires repositories, usecases and handlers
func buildRouteDeps(cfg *config.Config, db *gorm.DB) routeDeps {
	validation.Register()

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	userRepo := repositories.NewUserRepository(db)
	tuitionRepo := repositories.NewTuitionRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	uow := repositories.NewUnitOfWork(db)

	var gateway usecases.PaymentGateway
	if cfg.Stripe.SecretKey != "" {
		gateway = payment.NewStripeGateway(cfg.Stripe.SecretKey)
	} else {
		logger.Warn(context.Background(), "STRIPE_SECRET_KEY not set, checkout is unavailable")
	}

	authUsecase := usecases.NewAuthUsecase(jwtService)
	userUsecase := usecases.NewUserUsecase(userRepo)
	tuitionUsecase := usecases.NewTuitionUsecase(tuitionRepo)
	applicationUsecase := usecases.NewApplicationUsecase(applicationRepo, tuitionRepo)
	paymentUsecase := usecases.NewPaymentUsecase(applicationRepo, tuitionRepo, paymentRepo, uow, gateway, usecases.PaymentSettings{
		Currency:      cfg.Payment.Currency,
		VerifyCapture: cfg.Payment.VerifyCapture,
	})
	statsUsecase := usecases.NewStatsUsecase(userRepo, tuitionRepo, applicationRepo, paymentRepo)

	return routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase),
		userHandler:         handlers.NewUserHandler(userUsecase),
		tuitionHandler:      handlers.NewTuitionHandler(tuitionUsecase),
		applicationHandler:  handlers.NewApplicationHandler(applicationUsecase),
		paymentHandler:      handlers.NewPaymentHandler(paymentUsecase),
		adminHandler:        handlers.NewAdminHandler(statsUsecase),
		authMiddleware:      middleware.AuthMiddleware(jwtService),
		principalMiddleware: middleware.PrincipalMiddleware(userUsecase),
	}
}
