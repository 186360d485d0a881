package validation

import (
	"strings"
	"testing"

	"tanuki-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidateUploadRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateUploadRequest("tanuki.png", "aGVsbG8="))

	errs := v.ValidateUploadRequest("", "")
	assert.Len(t, errs, 2)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)
	assert.Equal(t, "filename", errs[0].Field)
	assert.Equal(t, "data_base64", errs[1].Field)

	errs = v.ValidateUploadRequest(strings.Repeat("a", 256), "aGVsbG8=")
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)

	// unsafe names are left to the ingestion pipeline
	assert.Empty(t, v.ValidateUploadRequest("../x.png", "aGVsbG8="))
}

func TestValidateUploadFilename(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateUploadFilename("tanuki.png"))
	assert.Empty(t, v.ValidateUploadFilename("../x.png"))
	assert.Empty(t, v.ValidateUploadFilename(strings.Repeat("a", 255)))

	errs := v.ValidateUploadFilename("  ")
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateUploadFilename(strings.Repeat("a", 256))
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)
}

func TestValidateSyntheticKey(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"tanuki", "anaguma", "hakubishin", "tanuki-2", "some_key"} {
		assert.Empty(t, v.ValidateSyntheticKey(ok), ok)
	}
	for _, bad := range []string{"", " ", "bad.key", "a/b", "タヌキ", strings.Repeat("k", 51)} {
		assert.NotEmpty(t, v.ValidateSyntheticKey(bad), bad)
	}
}

func TestValidateAssetFilename(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateAssetFilename("tanuki-1.png"))
	assert.NotEmpty(t, v.ValidateAssetFilename(""))
	assert.NotEmpty(t, v.ValidateAssetFilename("a b.png"))
	assert.NotEmpty(t, v.ValidateAssetFilename("..%2Fetc"))
}

func TestParseMaxDistance(t *testing.T) {
	v := NewValidator()

	n, errs := v.ParseMaxDistance("")
	assert.Empty(t, errs)
	assert.Equal(t, 0, n)

	n, errs = v.ParseMaxDistance("10")
	assert.Empty(t, errs)
	assert.Equal(t, 10, n)

	n, errs = v.ParseMaxDistance("64")
	assert.Empty(t, errs)
	assert.Equal(t, 64, n)

	_, errs = v.ParseMaxDistance("65")
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)

	_, errs = v.ParseMaxDistance("-1")
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)

	_, errs = v.ParseMaxDistance("ten")
	assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)
}
