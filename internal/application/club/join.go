package club

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

// Join applies for membership. Success inserts a pending row — an
// application, not admission. The checks here are fast-fail reads; the
// repository re-runs the membership and capacity checks inside the
// insert transaction, so a concurrent burst cannot overshoot the cap.
func (s *Service) Join(ctx context.Context, clubID, userID uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}

	m, err := s.repo.GetMembership(ctx, clubID, userID)
	if err == nil {
		if m.Status == domain.StatusAccepted {
			return domain.ErrConflict("already a member of this club")
		}
		return domain.ErrConflict("already applied to this club")
	}
	if !isNotFound(err) {
		return err
	}

	count, err := s.repo.AcceptedCount(ctx, clubID)
	if err != nil {
		return err
	}
	if count == c.MaxPeople {
		return domain.ErrCapacityFull("club is full")
	}

	return s.repo.Join(ctx, clubID, userID)
}

// Out removes the caller's accepted membership. The leader can never
// leave their own club; pending applicants are not members yet.
func (s *Service) Out(ctx context.Context, clubID, userID uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}

	m, err := s.repo.GetMembership(ctx, clubID, userID)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrConflict("not a member of this club")
		}
		return err
	}
	if m.Status != domain.StatusAccepted {
		return domain.ErrConflict("not a member of this club")
	}
	if c.LeaderID == userID {
		return domain.ErrConflict("the leader cannot leave the club")
	}

	return s.repo.Leave(ctx, clubID, userID)
}

func isNotFound(err error) bool {
	var ae *domain.AppError
	return errors.As(err, &ae) && ae.Code == domain.CodeNotFound
}
