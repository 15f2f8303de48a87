package event

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

// Delete removes an event with its participations and city tags.
// Host only, and only before start_time.
func (s *Service) Delete(ctx context.Context, eventID, actorID uuid.UUID) error {
	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if e.HostID != actorID {
		return domain.ErrForbidden("only the host can delete the event")
	}
	if e.HasStarted(s.clock.Now()) {
		return domain.ErrConflict("event has already started")
	}
	return s.repo.Delete(ctx, eventID)
}
