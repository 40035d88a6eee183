package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/internal/interfaces/http/response"
)

type UserService interface {
	Register(ctx context.Context, input *entities.CreateUserInput) (*entities.UserResult, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateProfile(ctx context.Context, principal *entities.Principal, email string, input *entities.UpdateProfileInput) (*entities.User, error)
	List(ctx context.Context, search string) ([]*entities.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) (*entities.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserHandler handles user endpoints
type UserHandler struct {
	userUsecase UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase UserService) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// CreateUser stores the user on first login. An existing email answers 200
// with a null insertedId.
// POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input entities.CreateUserInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.userUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Outcome == entities.OutcomeDuplicate {
		response.Success(c, http.StatusOK, gin.H{
			"message":    "User already exists",
			"insertedId": nil,
			"user":       result.User,
		})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message":    "User created",
		"insertedId": result.User.ID,
		"user":       result.User,
	})
}

// GetUser returns a user by email
// GET /users/:email
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateProfile updates the caller's own name and photo
// PATCH /users/update/:email
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), p, c.Param("email"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ListUsers lists users for admins
// GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUsecase.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// UpdateRole changes a user's role
// PATCH /users/role/:id
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}
	var input entities.UpdateRoleInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.userUsecase.UpdateRole(c.Request.Context(), id, input.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DeleteUser removes a user
// DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}
	if err := h.userUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User deleted", "deletedCount": 1})
}
