package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxWordLength is the longest word name accepted by ValidateWordName.
const MaxWordLength = 256

// ValidateWordName validates a word label.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters (labels are rendered on a single line)
//   - Maximum length of MaxWordLength bytes
func ValidateWordName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "word name cannot be empty")
	}

	if len(name) > MaxWordLength {
		return New(ErrCodeInvalidInput, "word name too long (max %d characters)", MaxWordLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "word name contains invalid control characters: %q", name)
		}
	}

	return nil
}

// ValidateValue rejects NaN and infinite word weights.
// Zero and negative values are allowed.
func ValidateValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "word value must be finite, got %v", v)
	}
	return nil
}

// ValidateCanvas checks that canvas dimensions are positive.
func ValidateCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "canvas dimensions must be positive, got %dx%d", width, height)
	}
	return nil
}

// ValidateFontRange checks that min and max font sizes form a usable range.
func ValidateFontRange(minSize, maxSize float64) error {
	if math.IsNaN(minSize) || math.IsNaN(maxSize) || math.IsInf(minSize, 0) || math.IsInf(maxSize, 0) {
		return New(ErrCodeInvalidInput, "font sizes must be finite")
	}
	if minSize <= 0 {
		return New(ErrCodeInvalidInput, "minimum font size must be positive, got %v", minSize)
	}
	if maxSize < minSize {
		return New(ErrCodeInvalidInput, "maximum font size %v is below minimum %v", maxSize, minSize)
	}
	return nil
}

// ValidatePath validates a user-supplied output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
