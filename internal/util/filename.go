package util

import (
	"fmt"
	"path/filepath"
	"strings"

	"tanuki-quiz/internal/domain"
)

// maxSuffixAttempts bounds the collision search so a hostile directory
// listing cannot spin forever.
const maxSuffixAttempts = 10000

// SanitizeFilename replaces every character outside [A-Za-z0-9._-] with '_'.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ResolveFilename turns an untrusted proposed name into a safe name that is
// not in existing. Names containing path separators, and names that sanitize
// to "", "." or "..", are rejected with domain.ErrUnsafeFilename. Collisions
// get "-1", "-2", ... inserted before the extension.
func ResolveFilename(proposed string, existing map[string]struct{}) (string, error) {
	if proposed == "" || strings.ContainsAny(proposed, `/\`) || strings.ContainsRune(proposed, filepath.Separator) {
		return "", domain.NewUnsafeFilenameError(proposed)
	}

	safe := SanitizeFilename(proposed)
	if safe == "" || strings.Trim(safe, ".") == "" {
		return "", domain.NewUnsafeFilenameError(proposed)
	}

	if _, taken := existing[safe]; !taken {
		return safe, nil
	}

	ext := filepath.Ext(safe)
	stem := strings.TrimSuffix(safe, ext)
	if stem == "" {
		// ".png" style names: keep the whole thing as the stem.
		stem, ext = safe, ""
	}
	for i := 1; i <= maxSuffixAttempts; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if _, taken := existing[candidate]; !taken {
			return candidate, nil
		}
	}
	return "", domain.NewUnsafeFilenameError(proposed).
		WithContext("reason", "no free name after suffix search")
}
