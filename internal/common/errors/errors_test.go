package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCodeThroughWrapping(t *testing.T) {
	base := NewStoreUnavailableError("get user", stderrors.New("dial tcp: refused"))
	wrapped := fmt.Errorf("bootstrap: %w", base)

	assert.True(t, IsUnavailable(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, HasCode(nil, ErrCodeStoreUnavailable))
	assert.False(t, HasCode(stderrors.New("plain"), ErrCodeInternal))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "get user", appErr.Details["operation"])
	assert.Contains(t, appErr.Error(), "dial tcp: refused")
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("user", int64(42))

	assert.True(t, err.IsNotFound())
	assert.Equal(t, "[NOT_FOUND] user not found", err.Error())
	assert.Equal(t, int64(42), err.Details["id"])
	assert.NotEmpty(t, err.Stack)
}

func TestStoreUnavailableWithoutCause(t *testing.T) {
	err := NewStoreUnavailableError("list channels", nil)

	assert.True(t, err.IsUnavailable())
	assert.Nil(t, stderrors.Unwrap(err))
}
