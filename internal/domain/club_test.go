package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClub_Validation(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	leader := uuid.New()

	t.Run("valid", func(t *testing.T) {
		c, err := NewClub(leader, "  board games  ", "weekly meetup", 10, now)
		require.NoError(t, err)
		assert.Equal(t, "board games", c.Name)
		assert.Equal(t, leader, c.LeaderID)
		assert.Equal(t, 10, c.MaxPeople)
		assert.False(t, c.IsDeleted())
	})

	t.Run("empty_name", func(t *testing.T) {
		_, err := NewClub(leader, "   ", "desc", 10, now)
		assert.Error(t, err)
	})

	t.Run("name_too_long", func(t *testing.T) {
		_, err := NewClub(leader, strings.Repeat("x", 65), "desc", 10, now)
		assert.Error(t, err)
	})

	t.Run("max_people_below_one", func(t *testing.T) {
		_, err := NewClub(leader, "club", "desc", 0, now)
		assert.Error(t, err)
	})

	t.Run("missing_leader", func(t *testing.T) {
		_, err := NewClub(uuid.Nil, "club", "desc", 10, now)
		assert.Error(t, err)
	})
}

func TestClub_ApplyUpdate(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c, err := NewClub(uuid.New(), "club", "desc", 10, now)
	require.NoError(t, err)

	t.Run("partial_patch_keeps_rest", func(t *testing.T) {
		name := "renamed"
		later := now.Add(time.Hour)
		require.NoError(t, c.ApplyUpdate(&name, nil, nil, later))
		assert.Equal(t, "renamed", c.Name)
		assert.Equal(t, "desc", c.Description)
		assert.Equal(t, 10, c.MaxPeople)
		assert.Equal(t, later, c.UpdatedAt)
	})

	t.Run("invalid_field_rejected", func(t *testing.T) {
		bad := 0
		assert.Error(t, c.ApplyUpdate(nil, nil, &bad, now))
	})
}
