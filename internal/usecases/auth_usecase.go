package usecases

import (
	"context"

	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/pkg/jwt"
)

// AuthUsecase issues bearer tokens
type AuthUsecase struct {
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{jwtService: jwtService}
}

// IssueToken signs a token for the identity in input. The identity itself is
// vouched for by the client's login provider.
func (u *AuthUsecase) IssueToken(ctx context.Context, input *entities.IssueTokenInput) (*entities.TokenResponse, error) {
	email := entities.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domainerrors.BadRequest("email is required")
	}

	token, err := u.jwtService.GenerateToken(email)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.TokenResponse{Token: token}, nil
}
