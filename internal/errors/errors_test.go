package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("Error returns formatted string", func(t *testing.T) {
		err := New(ErrCodeNotFound, "Conversation not found")
		assert.Equal(t, "NOT_FOUND: Conversation not found", err.Error())
	})

	t.Run("Error with cause includes cause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := Wrap(ErrCodeDataAccess, "Data store error", cause)
		assert.Contains(t, err.Error(), "DATA_ACCESS_ERROR")
		assert.Contains(t, err.Error(), "Data store error")
		assert.Contains(t, err.Error(), "database connection failed")
	})

	t.Run("WithCause adds cause to error", func(t *testing.T) {
		cause := errors.New("original error")
		err := New(ErrCodeInternal, "Something went wrong").WithCause(cause)
		assert.Equal(t, cause, err.Unwrap())
	})

	t.Run("WithDetails adds details to error", func(t *testing.T) {
		details := map[string]string{"field": "scheduledAt", "reason": "invalid format"}
		err := New(ErrCodeValidation, "Validation failed").WithDetails(details)
		assert.Equal(t, details, err.Details)
	})
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name         string
		constructor  func() *AppError
		expectedCode ErrorCode
	}{
		{"Unauthorized", func() *AppError { return Unauthorized() }, ErrCodeUnauthorized},
		{"Forbidden", func() *AppError { return Forbidden("test") }, ErrCodeForbidden},
		{"AuthExchange", func() *AppError { return AuthExchange("provider rejected code", nil) }, ErrCodeAuthExchange},
		{"NotFound", func() *AppError { return NotFound("Appointment") }, ErrCodeNotFound},
		{"ValidationError", func() *AppError { return ValidationError("test") }, ErrCodeValidation},
		{"InvalidInput", func() *AppError { return InvalidInput("status", "unknown value") }, ErrCodeInvalidInput},
		{"MissingRequired", func() *AppError { return MissingRequired("openId") }, ErrCodeMissingRequired},
		{"RateLimitExceeded", func() *AppError { return RateLimitExceeded() }, ErrCodeRateLimitExceeded},
		{"Internal", func() *AppError { return Internal("test") }, ErrCodeInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.constructor()
			assert.Equal(t, tc.expectedCode, err.Code)
			assert.NotEmpty(t, err.Message)
		})
	}
}

func TestUnauthorizedMessage(t *testing.T) {
	t.Run("carries the canonical message", func(t *testing.T) {
		assert.Equal(t, "caller must be authenticated", Unauthorized().Message)
	})
}

func TestDataAccess(t *testing.T) {
	t.Run("wraps store error", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := DataAccess(cause)
		assert.Equal(t, ErrCodeDataAccess, err.Code)
		assert.Equal(t, cause, err.Unwrap())
	})
}

func TestGetCode(t *testing.T) {
	t.Run("extracts code from AppError", func(t *testing.T) {
		assert.Equal(t, ErrCodeValidation, GetCode(ValidationError("bad input")))
	})

	t.Run("defaults to internal for plain errors", func(t *testing.T) {
		assert.Equal(t, ErrCodeInternal, GetCode(errors.New("boom")))
	})
}
