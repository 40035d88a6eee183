package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"tutorhub.backend/internal/config"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	domainrepo "tutorhub.backend/internal/domain/repositories"
	"tutorhub.backend/internal/infrastructure/datasources/postgres"
	"tutorhub.backend/internal/infrastructure/repositories"
	"tutorhub.backend/pkg/utils"
)

// Admins cannot be created through the API, so the first one is granted here.

type grantAdminDeps struct {
	loadEnv func() error
	loadCfg func() (*config.Config, error)
	prepare func(cfg *config.Config) (domainrepo.UserRepository, io.Closer, error)
	now     func() time.Time
	out     io.Writer
}

func defaultGrantAdminDeps() grantAdminDeps {
	return grantAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (domainrepo.UserRepository, io.Closer, error) {
			sqlDB, err := postgres.NewConnection(cfg.DSN())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			var db *gorm.DB
			if db, err = postgres.OpenGorm(sqlDB); err != nil {
				_ = sqlDB.Close()
				return nil, nil, err
			}
			return repositories.NewUserRepository(db), sqlDB, nil
		},
		now: time.Now,
		out: os.Stdout,
	}
}

func parseEmail(raw string) (string, error) {
	email := entities.NormalizeEmail(raw)
	if email == "" {
		return "", errors.New("--email is required")
	}
	return email, nil
}

func runGrantAdmin(args []string, deps grantAdminDeps) error {
	def := defaultGrantAdminDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.now == nil {
		deps.now = time.Now
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("grant-admin", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "user email (required)")
	nameFlag := fs.String("name", "", "display name when the user is created")
	createFlag := fs.Bool("create", false, "create the user when it does not exist")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email, err := parseEmail(*emailFlag)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := deps.loadCfg()
	if err != nil {
		return err
	}
	userRepo, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx := context.Background()
	user, err := userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Role == entities.UserRoleAdmin {
			_, _ = fmt.Fprintf(deps.out, "%s is already admin\n", email)
			return nil
		}
		if err := userRepo.UpdateRole(ctx, user.ID, entities.UserRoleAdmin); err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}
		_, _ = fmt.Fprintf(deps.out, "Promoted %s from %s to admin\n", email, user.Role)
	case errors.Is(err, domainerrors.ErrNotFound):
		if !*createFlag {
			return fmt.Errorf("user %s not found (pass --create to create it)", email)
		}
		now := deps.now().UTC()
		user = &entities.User{
			ID:        utils.GenerateUUIDv7(),
			Email:     email,
			Name:      *nameFlag,
			Role:      entities.UserRoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		_, _ = fmt.Fprintf(deps.out, "Created admin %s\n", email)
	default:
		return fmt.Errorf("failed to load user %s: %w", email, err)
	}

	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", user.ID)
	return nil
}

func main() {
	if err := runGrantAdmin(os.Args[1:], defaultGrantAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
