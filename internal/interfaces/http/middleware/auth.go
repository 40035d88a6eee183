package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/interfaces/http/response"
	"tutorhub.backend/pkg/jwt"
	"tutorhub.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserEmailKey is the context key for the authenticated email
	UserEmailKey = "userEmail"
	// PrincipalKey is the context key for the loaded principal
	PrincipalKey = "principal"
)

// PrincipalLoader resolves the authorization context for an email
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, email string) (*entities.Principal, error)
}

// AuthMiddleware verifies the bearer token and stores the claimed email
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Warn(c.Request.Context(), "Authorization header is missing", zap.String("path", c.Request.URL.Path))
			response.Abort(c, domainerrors.Unauthorized("Authorization header is required"))
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Abort(c, domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>"))
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Warn(c.Request.Context(), "Token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Abort(c, domainerrors.NewAppError(http.StatusUnauthorized, "Token has expired", domainerrors.ErrTokenExpired))
				return
			}
			response.Abort(c, domainerrors.Unauthorized("Invalid token"))
			return
		}

		c.Set(UserEmailKey, claims.Email)
		c.Request = c.Request.WithContext(logger.ContextWithUserEmail(c.Request.Context(), claims.Email))

		c.Next()
	}
}

// PrincipalMiddleware loads the caller's user record once per request.
// Must run after AuthMiddleware.
func PrincipalMiddleware(loader PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := GetUserEmail(c)
		if !ok {
			response.Abort(c, domainerrors.Unauthorized("User not authenticated"))
			return
		}

		principal, err := loader.LoadPrincipal(c.Request.Context(), email)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// GetUserEmail gets the authenticated email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// GetPrincipal gets the principal from context
func GetPrincipal(c *gin.Context) (*entities.Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*entities.Principal)
	return p, ok && p != nil
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.Abort(c, domainerrors.Unauthorized("User not authenticated"))
			return
		}

		if !principal.HasRole(roles...) {
			response.Abort(c, domainerrors.Forbidden("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}

// RequireSelf rejects requests whose path identity is not the caller
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.Abort(c, domainerrors.Unauthorized("User not authenticated"))
			return
		}

		if !principal.Is(c.Param(param)) {
			response.Abort(c, domainerrors.Forbidden("Forbidden access"))
			return
		}
		c.Next()
	}
}
