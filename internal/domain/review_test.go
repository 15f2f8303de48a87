package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview_Validation(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("valid_without_description", func(t *testing.T) {
		rv, err := NewReview(uuid.New(), uuid.New(), 5, "great evening", nil, now)
		require.NoError(t, err)
		assert.Nil(t, rv.Description)
	})

	t.Run("score_out_of_range", func(t *testing.T) {
		_, err := NewReview(uuid.New(), uuid.New(), 0, "t", nil, now)
		assert.Error(t, err)
		_, err = NewReview(uuid.New(), uuid.New(), 6, "t", nil, now)
		assert.Error(t, err)
	})

	t.Run("empty_title", func(t *testing.T) {
		_, err := NewReview(uuid.New(), uuid.New(), 3, "  ", nil, now)
		assert.Error(t, err)
	})
}

func TestReview_ApplyUpdate(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	desc := "long queue at the door"
	rv, err := NewReview(uuid.New(), uuid.New(), 4, "good", &desc, now)
	require.NoError(t, err)

	t.Run("clear_description", func(t *testing.T) {
		require.NoError(t, rv.ApplyUpdate(nil, nil, nil, true, now))
		assert.Nil(t, rv.Description)
	})

	t.Run("absent_description_keeps_value", func(t *testing.T) {
		d := "worth it anyway"
		require.NoError(t, rv.ApplyUpdate(nil, nil, &d, false, now))
		require.NotNil(t, rv.Description)

		score := 5
		require.NoError(t, rv.ApplyUpdate(&score, nil, nil, false, now))
		assert.Equal(t, 5, rv.Score)
		require.NotNil(t, rv.Description)
		assert.Equal(t, "worth it anyway", *rv.Description)
	})

	t.Run("bad_score_rejected", func(t *testing.T) {
		score := 9
		assert.Error(t, rv.ApplyUpdate(&score, nil, nil, false, now))
	})
}
