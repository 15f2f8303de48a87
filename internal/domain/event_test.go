package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent(t *testing.T, now time.Time) *Event {
	t.Helper()
	e, err := NewEvent(
		uuid.New(), nil,
		"friday run", "easy 5km along the river",
		1, []int64{1, 2},
		now.Add(24*time.Hour), now.Add(26*time.Hour),
		8, now,
	)
	require.NoError(t, err)
	return e
}

func TestNewEvent_Validation(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		e := validEvent(t, now)
		assert.False(t, e.IsClubScoped())
		assert.Equal(t, []int64{1, 2}, e.CityIDs)
	})

	t.Run("start_after_end", func(t *testing.T) {
		_, err := NewEvent(uuid.New(), nil, "t", "d", 1, nil,
			now.Add(2*time.Hour), now.Add(time.Hour), 8, now)
		assert.Error(t, err)
	})

	t.Run("start_in_past", func(t *testing.T) {
		_, err := NewEvent(uuid.New(), nil, "t", "d", 1, nil,
			now.Add(-time.Hour), now.Add(time.Hour), 8, now)
		assert.Error(t, err)
	})

	t.Run("missing_category", func(t *testing.T) {
		_, err := NewEvent(uuid.New(), nil, "t", "d", 0, nil,
			now.Add(time.Hour), now.Add(2*time.Hour), 8, now)
		assert.Error(t, err)
	})

	t.Run("max_people_below_one", func(t *testing.T) {
		_, err := NewEvent(uuid.New(), nil, "t", "d", 1, nil,
			now.Add(time.Hour), now.Add(2*time.Hour), 0, now)
		assert.Error(t, err)
	})
}

func TestEvent_TemporalState(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	e := validEvent(t, now)

	assert.False(t, e.HasStarted(now))
	assert.True(t, e.HasStarted(e.StartTime))
	assert.True(t, e.HasStarted(e.StartTime.Add(time.Minute)))

	assert.False(t, e.IsEnded(e.EndTime))
	assert.True(t, e.IsEnded(e.EndTime.Add(time.Second)))
}

func TestEvent_ApplyUpdate(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("moving_only_start_revalidates_range", func(t *testing.T) {
		e := validEvent(t, now)
		badStart := e.EndTime.Add(time.Hour)
		err := e.ApplyUpdate(nil, nil, nil, nil, &badStart, nil, nil, now)
		assert.Error(t, err)
	})

	t.Run("partial_patch", func(t *testing.T) {
		e := validEvent(t, now)
		title := "saturday run"
		people := 12
		require.NoError(t, e.ApplyUpdate(&title, nil, nil, nil, nil, nil, &people, now))
		assert.Equal(t, "saturday run", e.Title)
		assert.Equal(t, 12, e.MaxPeople)
		assert.Equal(t, "easy 5km along the river", e.Description)
	})
}
