package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
)

const (
	// Profile fields
	MinNameLength = 2
	MaxNameLength = 50
	MinAge        = 10
	MaxAge        = 30

	// Admin input
	MinButtonTextLength = 1
	MaxButtonTextLength = 30
	MinSchoolNameLength = 3
	MaxSchoolNameLength = 100
)

// ValidateName checks a display name and returns it trimmed.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := checkLength("name", name, MinNameLength, MaxNameLength); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateAge parses an age typed by the user. Persian and Arabic-Indic
// digits are accepted.
func ValidateAge(input string) (int, error) {
	input = NormalizeDigits(strings.TrimSpace(input))
	if input == "" {
		return 0, apperrors.NewValidationError("age", "cannot be empty")
	}

	age, err := strconv.Atoi(input)
	if err != nil {
		return 0, apperrors.NewValidationError("age", "must be a number")
	}
	if age < MinAge || age > MaxAge {
		return 0, apperrors.NewValidationError("age", fmt.Sprintf("must be between %d and %d", MinAge, MaxAge))
	}

	return age, nil
}

// ValidateButtonText checks the label of a forced-channel button.
func ValidateButtonText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if err := checkLength("button text", text, MinButtonTextLength, MaxButtonTextLength); err != nil {
		return "", err
	}
	return text, nil
}

// ValidateSchoolName checks a school name entered by the admin.
func ValidateSchoolName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := checkLength("school name", name, MinSchoolNameLength, MaxSchoolNameLength); err != nil {
		return "", err
	}
	return name, nil
}

// NormalizeDigits maps Persian (U+06F0..U+06F9) and Arabic-Indic
// (U+0660..U+0669) digits to ASCII.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		}
		return r
	}, s)
}

// checkLength counts characters, not bytes
func checkLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min {
		return apperrors.NewValidationError(field, fmt.Sprintf("must be at least %d characters long", min))
	}
	if n > max {
		return apperrors.NewValidationError(field, fmt.Sprintf("cannot exceed %d characters", max))
	}
	return nil
}
