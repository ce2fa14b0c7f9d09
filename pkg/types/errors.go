package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeAuth       ErrorType = "authentication"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeInternal   ErrorType = "internal"
)

// ErrorCode identifies a single violated rule or domain condition.
type ErrorCode string

// Field-format and temporal rule codes.
const (
	CodeWrongFirstName      ErrorCode = "WRONG_FIRST_NAME"
	CodeWrongMiddleName     ErrorCode = "WRONG_MIDDLE_NAME"
	CodeWrongLastName       ErrorCode = "WRONG_LAST_NAME"
	CodeWrongDate           ErrorCode = "WRONG_DATE"
	CodeWrongGender         ErrorCode = "WRONG_GENDER"
	CodeWrongPhoneNo        ErrorCode = "WRONG_PHONE_NO"
	CodeWrongEmail          ErrorCode = "WRONG_EMAIL"
	CodeWrongPassword       ErrorCode = "WRONG_PASSWORD"
	CodeWrongConfirmedEmail ErrorCode = "WRONG_CONFIRMED_EMAIL"
	CodeWrongConfirmedPass  ErrorCode = "WRONG_CONFIRMED_PASSWORD"
	CodeWrongTime           ErrorCode = "WRONG_TIME"
	CodeImpossibleBooking   ErrorCode = "IMPOSSIBLE_BOOKING"
	CodeWrongBookingType    ErrorCode = "WRONG_BOOKING_TYPE"
	CodeDoctorNotChosen     ErrorCode = "DOCTOR_NOT_CHOSEN"
)

// Domain conflict, referential and storage codes.
const (
	CodeExistingBooking ErrorCode = "EXISTING_BOOKING"
	CodeSameDoctor      ErrorCode = "SAME_DOCTOR"
	CodeEmailInUse      ErrorCode = "EMAIL_IN_USE"
	CodePatientNotFound ErrorCode = "PATIENT_NOT_FOUND"
	CodeDoctorNotFound  ErrorCode = "DOCTOR_NOT_FOUND"
	CodeBookingNotFound ErrorCode = "BOOKING_NOT_FOUND"

	CodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	CodeLogNotFound          ErrorCode = "LOG_NOT_FOUND"
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
)

// Error is the structured error returned by every service operation.
// Validation errors carry the full list of violated rule codes in Codes;
// all other categories carry exactly one code.
type Error struct {
	Type    ErrorType   `json:"type"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Codes   []ErrorCode `json:"codes,omitempty"`
	Cause   error       `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if len(e.Codes) > 0 {
		parts := make([]string, len(e.Codes))
		for i, c := range e.Codes {
			parts[i] = string(c)
		}
		return fmt.Sprintf("%s: %s [%s]", e.Code, e.Message, strings.Join(parts, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *Error) Unwrap() error {
	return e.Cause
}

// HasCode reports whether the error carries the given rule code, either as
// its primary code or among the aggregated validation codes.
func (e *Error) HasCode(code ErrorCode) bool {
	if e.Code == code {
		return true
	}
	for _, c := range e.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// NewValidationError creates a validation error aggregating all violated rule codes.
func NewValidationError(message string, codes []ErrorCode) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Code:    "VALIDATION_FAILED",
		Message: message,
		Codes:   codes,
	}
}

// NewConflictError creates a domain-conflict error
func NewConflictError(code ErrorCode, message string) *Error {
	return &Error{
		Type:    ErrorTypeConflict,
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a referential not-found error
func NewNotFoundError(code ErrorCode, message string) *Error {
	return &Error{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
	}
}

// NewAuthError creates an authentication error
func NewAuthError(message string, codes ...ErrorCode) *Error {
	return &Error{
		Type:    ErrorTypeAuth,
		Code:    "AUTHENTICATION_FAILED",
		Message: message,
		Codes:   codes,
	}
}

// NewStorageError wraps a connectivity or query failure from the persistence layer.
func NewStorageError(message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeStorage,
		Code:    CodeDatabaseError,
		Message: message,
		Cause:   cause,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeInternal,
		Code:    "INTERNAL_ERROR",
		Message: message,
		Cause:   cause,
	}
}

// AsError extracts a *Error from err, if it carries one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType reports whether err is a *Error of the given category.
func IsType(err error, t ErrorType) bool {
	if e, ok := AsError(err); ok {
		return e.Type == t
	}
	return false
}
