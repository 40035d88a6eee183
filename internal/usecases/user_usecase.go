package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/domain/repositories"
	"tutorhub.backend/pkg/utils"
)

// UserUsecase handles user business logic
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// Register stores a user on first login. An existing email is a duplicate
// outcome carrying the stored user, not an error.
func (u *UserUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.UserResult, error) {
	email := entities.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domainerrors.BadRequest("email is required")
	}

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return &entities.UserResult{Outcome: entities.OutcomeDuplicate, User: existing}, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = entities.UserRoleStudent
	}
	if role == entities.UserRoleAdmin || !role.Valid() {
		return nil, domainerrors.BadRequest("role must be student or tutor")
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:        utils.GenerateUUIDv7(),
		Email:     email,
		Name:      strings.TrimSpace(input.Name),
		PhotoURL:  input.PhotoURL,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			// Lost a race with a concurrent first login.
			stored, getErr := u.userRepo.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, getErr
			}
			return &entities.UserResult{Outcome: entities.OutcomeDuplicate, User: stored}, nil
		}
		return nil, err
	}

	return &entities.UserResult{Outcome: entities.OutcomeCreated, User: user}, nil
}

// GetByEmail gets a user by email
func (u *UserUsecase) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return user, nil
}

// LoadPrincipal resolves the authorization context for an authenticated email
// with a single user read.
func (u *UserUsecase) LoadPrincipal(ctx context.Context, email string) (*entities.Principal, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.NewPrincipal(email, nil), nil
		}
		return nil, err
	}
	return entities.NewPrincipal(email, user), nil
}

// UpdateProfile lets a user change their own name and photo
func (u *UserUsecase) UpdateProfile(ctx context.Context, principal *entities.Principal, email string, input *entities.UpdateProfileInput) (*entities.User, error) {
	if !principal.Is(email) {
		return nil, domainerrors.Forbidden("you can only update your own profile")
	}
	if input.Name == nil && input.PhotoURL == nil {
		return nil, domainerrors.BadRequest("nothing to update")
	}

	user, err := u.userRepo.UpdateProfile(ctx, email, input)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return user, nil
}

// List lists users, optionally filtered by a name or email substring
func (u *UserUsecase) List(ctx context.Context, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, search)
}

// UpdateRole sets a user's role (admin only)
func (u *UserUsecase) UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) (*entities.User, error) {
	if !role.Valid() {
		return nil, domainerrors.BadRequest("invalid role")
	}
	if err := u.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return user, nil
}

// Delete removes a user (admin only)
func (u *UserUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return notFoundOr(u.userRepo.Delete(ctx, id), "user not found")
}
