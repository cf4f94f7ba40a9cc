package wingo

import (
	"context"
	"testing"
	"time"

	"wingo_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOverrideValidation(t *testing.T) {
	s, _ := newTestServ(time.Now())

	_, err := s.SetOverride(context.Background(), "wingo_3m", 5, 9)
	assert.ErrorIs(t, err, model.ErrTrackNotFound)

	_, err = s.SetOverride(context.Background(), "wingo_1m", 10, 9)
	assert.ErrorIs(t, err, model.ErrInvalidSelection)

	_, err = s.SetOverride(context.Background(), "wingo_1m", -1, 9)
	assert.ErrorIs(t, err, model.ErrInvalidSelection)
}

func TestSetOverrideReplacesPrevious(t *testing.T) {
	s, _ := newTestServ(time.Now())

	first, err := s.SetOverride(context.Background(), "wingo_1m", 3, 9)
	require.NoError(t, err)

	second, err := s.SetOverride(context.Background(), "wingo_1m", 7, 11)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	// Активным остается только последний
	active, err := s.ActiveOverrides(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, 7, active[0].WinningNumber)
	assert.Equal(t, 11, active[0].OperatorID)
}
