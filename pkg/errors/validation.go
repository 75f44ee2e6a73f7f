package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateFraction checks that v lies in the half-open interval [0, 1).
// Generator tunables such as denseness and sparseness use this range; a value
// of exactly 1 would make the corresponding loop never stop.
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return New(ErrCodeInvalidParameter, "%s must be in [0, 1), got %v", name, v)
	}
	return nil
}

// ValidateMin checks that v is at least min.
func ValidateMin(name string, v, min int) error {
	if v < min {
		return New(ErrCodeInvalidParameter, "%s must be at least %d, got %d", name, min, v)
	}
	return nil
}

// ValidateFinite checks that v is neither NaN nor infinite.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidParameter, "%s must be finite, got %v", name, v)
	}
	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
