package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Asset specific errors
	CodeUnsafeFilename   ErrorCode = "UNSAFE_FILENAME"
	CodeInvalidImageData ErrorCode = "INVALID_IMAGE_DATA"
	CodePersistence      ErrorCode = "PERSISTENCE_ERROR"
	CodeMalformedHash    ErrorCode = "MALFORMED_HASH"
)

// Stage names reported by the ingestion pipeline in DomainError.Context["stage"].
const (
	StageFilename       = "filename"
	StageDecode         = "decode"
	StageStoreOriginal  = "store_original"
	StageStoreThumbnail = "store_thumbnail"
	StageFingerprint    = "fingerprint"
	StageIndex          = "index"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches on Code so errors.Is(err, ErrMalformedHash) works for any message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a key/value pair and returns the same error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Stage returns the ingestion stage recorded on the error, if any.
func (e *DomainError) Stage() string {
	if e.Context == nil {
		return ""
	}
	stage, _ := e.Context["stage"].(string)
	return stage
}

// Sentinels for errors.Is checks.
var (
	ErrUnsafeFilename   = &DomainError{Code: CodeUnsafeFilename, Message: "unsafe filename"}
	ErrInvalidImageData = &DomainError{Code: CodeInvalidImageData, Message: "invalid image data"}
	ErrPersistence      = &DomainError{Code: CodePersistence, Message: "persistence failure"}
	ErrMalformedHash    = &DomainError{Code: CodeMalformedHash, Message: "malformed hash"}
	ErrNotFound         = &DomainError{Code: CodeNotFound, Message: "not found"}
)

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError() *DomainError {
	return NewError(CodeUnauthorized, "admin token mismatch", nil)
}

func NewUnsafeFilenameError(name string) *DomainError {
	return NewError(CodeUnsafeFilename, fmt.Sprintf("unsafe filename: %q", name), nil).
		WithContext("stage", StageFilename)
}

func NewInvalidImageDataError(err error) *DomainError {
	return NewError(CodeInvalidImageData, "uploaded bytes are not a supported image", err).
		WithContext("stage", StageDecode)
}

func NewPersistenceError(stage, message string, err error) *DomainError {
	return NewError(CodePersistence, message, err).WithContext("stage", stage)
}

func NewMalformedHashError(hash string) *DomainError {
	return NewError(CodeMalformedHash, fmt.Sprintf("malformed fingerprint %q", hash), nil)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Code    ErrorCode   `json:"code"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned from handlers and rendered by the error middleware.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Code: CodeMissingField, Field: field, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Code: CodeInvalidFormat, Field: field, Message: "field has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Code:    CodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("value must be between %d and %d", min, max),
		Value:   value,
	}
}
