package validation

import (
	"regexp"
	"strconv"
	"strings"

	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/fingerprint"
)

const (
	maxFilenameLength = 255
	maxKeyLength      = 50
)

var (
	validKey      = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	validFilename = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUploadRequest checks the JSON upload envelope. Filename safety is
// judged by the ingestion pipeline, which reports UNSAFE_FILENAME itself.
func (v *Validator) ValidateUploadRequest(filename, dataBase64 string) domain.ValidationErrors {
	errors := v.ValidateUploadFilename(filename)

	if strings.TrimSpace(dataBase64) == "" {
		errors = append(errors, domain.NewMissingFieldError("data_base64"))
	}

	return errors
}

// ValidateUploadFilename checks presence and length of a suggested upload
// name, for both the JSON and multipart transports.
func (v *Validator) ValidateUploadFilename(filename string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(filename) == "" {
		errors = append(errors, domain.NewMissingFieldError("filename"))
	} else if len(filename) > maxFilenameLength {
		errors = append(errors, domain.NewOutOfRangeError("filename", len(filename), 1, maxFilenameLength))
	}
	return errors
}

// ValidateSyntheticKey validates the placeholder image key.
func (v *Validator) ValidateSyntheticKey(key string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(key) == "" {
		errors = append(errors, domain.NewMissingFieldError("key"))
		return errors
	}
	if len(key) > maxKeyLength || !validKey.MatchString(key) {
		errors = append(errors, domain.NewInvalidFormatError("key", key))
	}
	return errors
}

// ValidateAssetFilename validates a filename path parameter.
func (v *Validator) ValidateAssetFilename(filename string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if filename == "" {
		errors = append(errors, domain.NewMissingFieldError("filename"))
	} else if len(filename) > maxFilenameLength || !validFilename.MatchString(filename) {
		errors = append(errors, domain.NewInvalidFormatError("filename", filename))
	}
	return errors
}

// ParseMaxDistance parses the max_distance query value, defaulting to 0.
func (v *Validator) ParseMaxDistance(raw string) (int, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("max_distance", raw)}
	}
	if n < 0 || n > fingerprint.MaxDistance {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("max_distance", n, 0, fingerprint.MaxDistance)}
	}
	return n, nil
}
