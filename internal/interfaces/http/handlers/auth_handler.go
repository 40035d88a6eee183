package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/internal/interfaces/http/response"
)

type TokenIssuer interface {
	IssueToken(ctx context.Context, input *entities.IssueTokenInput) (*entities.TokenResponse, error)
}

// AuthHandler handles token issuance
type AuthHandler struct {
	authUsecase TokenIssuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase TokenIssuer) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// IssueToken exchanges an identity payload for a bearer token
// POST /jwt
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var input entities.IssueTokenInput
	if !bindJSON(c, &input) {
		return
	}

	token, err := h.authUsecase.IssueToken(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, token)
}
