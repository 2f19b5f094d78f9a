package errors

import (
	"strings"
	"unicode"
)

// MaxKeyLength bounds box keys read from files.
const MaxKeyLength = 256

// ValidateKey validates a box key read from an input file.
//
// The validation rules:
//   - No empty keys (reported as MISSING_KEY)
//   - No control characters or null bytes
//   - No leading or trailing whitespace
//   - Maximum length of MaxKeyLength bytes
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeMissingKey, "box key cannot be empty")
	}

	if len(key) > MaxKeyLength {
		return New(ErrCodeInvalidKey, "box key too long (max %d characters)", MaxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "box key %q contains control characters", key)
		}
	}

	if strings.TrimSpace(key) != key {
		return New(ErrCodeInvalidKey, "box key %q has surrounding whitespace", key)
	}

	return nil
}

// ValidateSpan validates a declared column span read from an input file.
// Zero means "unspecified" and is accepted.
func ValidateSpan(key string, span int) error {
	if span < 0 {
		return New(ErrCodeInvalidInput, "box %q: span must not be negative, got %d", key, span)
	}
	return nil
}

// ValidateHeight validates a box height read from an input file.
func ValidateHeight(key string, height float64) error {
	if height < 0 || height != height {
		return New(ErrCodeInvalidInput, "box %q: height must be a non-negative number, got %v", key, height)
	}
	return nil
}
