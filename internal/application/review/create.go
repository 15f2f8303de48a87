package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

type CreateCmd struct {
	ActorID uuid.UUID

	EventID     uuid.UUID
	Score       int
	Title       string
	Description *string
}

// Create writes a review. Only a past participant of an ended event may
// review it, the host may not review their own event, and each user
// writes at most one review per event.
func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Review, error) {
	exists, err := s.repo.Exists(ctx, cmd.ActorID, cmd.EventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict("a review by this user already exists for this event")
	}

	joined, err := s.events.IsParticipant(ctx, cmd.EventID, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, domain.ErrConflict("only participants can review this event")
	}

	e, err := s.events.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	if !e.IsEnded(s.clock.Now()) {
		return nil, domain.ErrConflict("event has not ended yet")
	}
	if e.HostID == cmd.ActorID {
		return nil, domain.ErrConflict("the host cannot review their own event")
	}

	r, err := domain.NewReview(cmd.ActorID, cmd.EventID, cmd.Score, cmd.Title, cmd.Description, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
