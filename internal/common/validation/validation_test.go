package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
)

func TestValidateAge(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "below range", input: "9", wantErr: true},
		{name: "above range", input: "31", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing garbage", input: "17abc", wantErr: true},
		{name: "lower bound", input: "10", want: 10},
		{name: "typical", input: "17", want: 17},
		{name: "upper bound", input: "30", want: 30},
		{name: "surrounding spaces", input: "  21 ", want: 21},
		{name: "persian digits", input: "۱۷", want: 17},
		{name: "arabic-indic digits", input: "٢٥", want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAge(tt.input)
			if tt.wantErr {
				assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "one character", input: "a", wantErr: true},
		{name: "two characters", input: "ab"},
		{name: "fifty characters", input: strings.Repeat("x", 50)},
		{name: "fifty one characters", input: strings.Repeat("x", 51), wantErr: true},
		{name: "persian fifty characters", input: strings.Repeat("ع", 50)},
		{name: "only spaces", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNameTrims(t *testing.T) {
	got, err := ValidateName("  علی  ")
	assert.NoError(t, err)
	assert.Equal(t, "علی", got)
}

func TestValidateButtonText(t *testing.T) {
	_, err := ValidateButtonText(" ")
	assert.Error(t, err)

	_, err = ValidateButtonText(strings.Repeat("b", 31))
	assert.Error(t, err)

	got, err := ValidateButtonText(" عضویت ")
	assert.NoError(t, err)
	assert.Equal(t, "عضویت", got)
}

func TestValidateSchoolName(t *testing.T) {
	_, err := ValidateSchoolName("ab")
	assert.Error(t, err)

	_, err = ValidateSchoolName(strings.Repeat("s", 101))
	assert.Error(t, err)

	_, err = ValidateSchoolName("علامه")
	assert.NoError(t, err)
}

func TestValidationErrorDetails(t *testing.T) {
	_, err := ValidateAge("9")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, "age", appErr.Details["field"])
	assert.Equal(t, "[VALIDATION_ERROR] age must be between 10 and 30", err.Error())

	_, err = ValidateSchoolName("ab")
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "school name", appErr.Details["field"])
	assert.Equal(t, "must be at least 3 characters long", appErr.Details["reason"])
}
