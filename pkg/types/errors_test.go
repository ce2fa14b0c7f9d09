package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorsCarryEntityCodes(t *testing.T) {
	codes := []ErrorCode{
		CodePatientNotFound,
		CodeDoctorNotFound,
		CodeBookingNotFound,
		CodeNotificationNotFound,
		CodeLogNotFound,
		CodeUserNotFound,
	}

	for _, code := range codes {
		err := NewNotFoundError(code, "missing")
		assert.Equal(t, ErrorTypeNotFound, err.Type)
		assert.True(t, err.HasCode(code))
		assert.NotEqual(t, CodeDatabaseError, err.Code, "DATABASE_ERROR is reserved for storage failures")
	}
}

func TestStorageErrorsUseDatabaseCode(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("failed to get logs", cause)

	assert.Equal(t, ErrorTypeStorage, err.Type)
	assert.Equal(t, CodeDatabaseError, err.Code)
	assert.Equal(t, cause, err.Unwrap())
}

func TestValidationErrorAggregatesCodes(t *testing.T) {
	err := NewValidationError("invalid booking", []ErrorCode{CodeWrongTime, CodeWrongDate})

	assert.True(t, err.HasCode(CodeWrongTime))
	assert.True(t, err.HasCode(CodeWrongDate))
	assert.False(t, err.HasCode(CodeWrongGender))
	assert.Contains(t, err.Error(), "WRONG_TIME, WRONG_DATE")
}

func TestAsErrorUnwrapsThroughWrapping(t *testing.T) {
	inner := NewConflictError(CodeSameDoctor, "doctor unchanged")
	wrapped := fmt.Errorf("changing doctor: %w", inner)

	got, ok := AsError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeSameDoctor, got.Code)
	assert.True(t, IsType(wrapped, ErrorTypeConflict))

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}
