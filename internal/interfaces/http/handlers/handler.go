package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/internal/interfaces/http/middleware"
	"tutorhub.backend/internal/interfaces/http/response"
	"tutorhub.backend/internal/interfaces/http/validation"
	"tutorhub.backend/pkg/utils"
)

// principal returns the caller or writes a 401 and reports false.
func principal(c *gin.Context) (*entities.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return nil, false
	}
	return p, true
}

// pathID parses the :id path parameter or writes a 400.
func pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, domainerrors.BadRequest("invalid "+what+" id"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body into dst or writes a 400.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, validation.BindError(err))
		return false
	}
	return true
}

func pagination(c *gin.Context) utils.PaginationParams {
	return utils.ParsePaginationQuery(c.Query("page"), c.Query("limit"))
}
