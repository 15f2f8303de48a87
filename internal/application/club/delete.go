package club

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

// Delete soft-deletes the club and hard-deletes its membership ledger
// and its not-yet-started events, all in one transaction. Ended events
// and their participation rows are retained: the review visibility
// fallback depends on that history surviving.
func (s *Service) Delete(ctx context.Context, clubID, actorID uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if c.LeaderID != actorID {
		return domain.ErrForbidden("only the leader can delete the club")
	}
	return s.repo.Delete(ctx, clubID, s.clock.Now())
}
