package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecondLineOr(t *testing.T) {
	assert.Equal(t, "second", secondLineOr("first\nsecond\nthird", "fallback"))
	assert.Equal(t, "fallback", secondLineOr("only line", "fallback"))
	assert.Equal(t, "fallback", secondLineOr("first\n  ", "fallback"))
}

func TestMenuAfterRegistration(t *testing.T) {
	// the guide is a single line, so the menu falls back to the welcome text
	assert.Equal(t, WelcomeBack, MenuAfterRegistration())
}
