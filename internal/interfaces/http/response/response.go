package response

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "tutorhub.backend/internal/domain/errors"
	"tutorhub.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Anything that is not an AppError is
// reported as a 500 and logged.
func Error(c *gin.Context, err error) {
	appErr, ok := domainerrors.As(err)
	if !ok {
		logger.Error(c.Request.Context(), "Unhandled error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		appErr = domainerrors.InternalError(err)
	} else if appErr.Code >= 500 {
		logger.Error(c.Request.Context(), "Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

// Abort sends an error response and stops the handler chain
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
