package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	t.Run("passes through app errors", func(t *testing.T) {
		err := NewNotFoundError("Customer")
		appErr := GetAppError(err)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		assert.Equal(t, "Customer not found", appErr.Message)
	})

	t.Run("unwraps wrapped app errors", func(t *testing.T) {
		wrapped := fmt.Errorf("loading customer: %w", ErrConflict)
		appErr := GetAppError(wrapped)
		assert.Equal(t, http.StatusConflict, appErr.Code)
	})

	t.Run("defaults unknown errors to 500", func(t *testing.T) {
		appErr := GetAppError(errors.New("connection reset"))
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		assert.Equal(t, "connection reset", appErr.Message)
	})
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(ErrUnauthorized))
	assert.True(t, IsAppError(fmt.Errorf("wrapped: %w", ErrBadRequest)))
	assert.False(t, IsAppError(errors.New("plain")))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "quantity", Message: "must be positive"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Len(t, err.Errors, 1)
	assert.Equal(t, "quantity", err.Errors[0].Field)
}
