package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Club is a persistent, leader-owned group with a hard member cap.
// The leader always holds an accepted membership; the accepted-member
// count never exceeds MaxPeople.
type Club struct {
	ID          uuid.UUID
	Name        string
	Description string
	LeaderID    uuid.UUID
	MaxPeople   int

	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewClub(leaderID uuid.UUID, name, description string, maxPeople int, now time.Time) (*Club, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if leaderID == uuid.Nil {
		return nil, ErrValidation("leader_id is required")
	}
	if name == "" || len(name) > 64 {
		return nil, ErrValidation("name is required and must be <= 64 chars")
	}
	if description == "" || len(description) > 4000 {
		return nil, ErrValidation("description is required and must be <= 4000 chars")
	}
	// the leader occupies one slot, so a club can never hold fewer than one
	if maxPeople < 1 {
		return nil, ErrValidation("max_people must be >= 1")
	}

	return &Club{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		LeaderID:    leaderID,
		MaxPeople:   maxPeople,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

func (c *Club) IsDeleted() bool { return c.DeletedAt != nil }

// ApplyUpdate patches mutable fields. Nil means "leave unchanged".
// The capacity-vs-current-members check lives in the application layer
// because it needs the accepted count.
func (c *Club) ApplyUpdate(name, description *string, maxPeople *int, now time.Time) error {
	if name != nil {
		v := strings.TrimSpace(*name)
		if v == "" || len(v) > 64 {
			return ErrValidation("name must be non-empty and <= 64 chars")
		}
		c.Name = v
	}
	if description != nil {
		v := strings.TrimSpace(*description)
		if v == "" || len(v) > 4000 {
			return ErrValidation("description must be non-empty and <= 4000 chars")
		}
		c.Description = v
	}
	if maxPeople != nil {
		if *maxPeople < 1 {
			return ErrValidation("max_people must be >= 1")
		}
		c.MaxPeople = *maxPeople
	}
	c.UpdatedAt = now.UTC()
	return nil
}
