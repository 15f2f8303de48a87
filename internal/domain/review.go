package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Review is a post-event write-up by a past participant. Whether a
// viewer may read it is never stored; it is derived at read time from
// club membership, participation history, and club deletion state.
type Review struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	EventID     uuid.UUID
	Score       int
	Title       string
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewReview(userID, eventID uuid.UUID, score int, title string, description *string, now time.Time) (*Review, error) {
	title = strings.TrimSpace(title)

	if userID == uuid.Nil {
		return nil, ErrValidation("user_id is required")
	}
	if eventID == uuid.Nil {
		return nil, ErrValidation("event_id is required")
	}
	if score < 1 || score > 5 {
		return nil, ErrValidation("score must be between 1 and 5")
	}
	if title == "" || len(title) > 120 {
		return nil, ErrValidation("title is required and must be <= 120 chars")
	}
	if description != nil {
		v := strings.TrimSpace(*description)
		if len(v) > 4000 {
			return nil, ErrValidation("description must be <= 4000 chars")
		}
		description = &v
	}

	return &Review{
		ID:          uuid.New(),
		UserID:      userID,
		EventID:     eventID,
		Score:       score,
		Title:       title,
		Description: description,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

// ApplyUpdate patches mutable fields. Description may be cleared
// explicitly; score and title may not.
func (r *Review) ApplyUpdate(score *int, title *string, description *string, clearDescription bool, now time.Time) error {
	if score != nil {
		if *score < 1 || *score > 5 {
			return ErrValidation("score must be between 1 and 5")
		}
		r.Score = *score
	}
	if title != nil {
		v := strings.TrimSpace(*title)
		if v == "" || len(v) > 120 {
			return ErrValidation("title must be non-empty and <= 120 chars")
		}
		r.Title = v
	}
	if clearDescription {
		r.Description = nil
	} else if description != nil {
		v := strings.TrimSpace(*description)
		if len(v) > 4000 {
			return ErrValidation("description must be <= 4000 chars")
		}
		r.Description = &v
	}
	r.UpdatedAt = now.UTC()
	return nil
}
