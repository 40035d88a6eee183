package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		err      *AppError
		code     int
		sentinel error
	}{
		{NotFound("x"), http.StatusNotFound, ErrNotFound},
		{BadRequest("x"), http.StatusBadRequest, ErrInvalidInput},
		{Unauthorized("x"), http.StatusUnauthorized, ErrUnauthorized},
		{Forbidden("x"), http.StatusForbidden, ErrForbidden},
		{Conflict("x"), http.StatusConflict, ErrConflict},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.ErrorIs(t, tc.err, tc.sentinel)
	}
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Forbidden("not yours"))
	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.Code)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternalErrorMessage(t *testing.T) {
	err := InternalError(errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "internal server error: db down", err.Error())
	assert.Equal(t, "plain", (&AppError{Message: "plain"}).Error())
}
