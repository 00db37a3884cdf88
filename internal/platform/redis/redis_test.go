package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "", "", 0)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionError))

	mr := miniredis.RunT(t)
	c, err := Open(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	defer c.Close()
	assert.NoError(t, c.Check(ctx))

	mr.Close()
	err = c.Check(ctx)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionError))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "ping", appErr.Details["operation"])
}

func TestOpenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Open(context.Background(), addr, "", 0)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeSessionError, appErr.Code)
	assert.Equal(t, addr, appErr.Details["addr"])
}
