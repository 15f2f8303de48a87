package event

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

// Join enrolls the caller. No approval stage: given capacity and
// eligibility the row is inserted immediately. Checks run in precedence
// order (not found, already joined, ended, club gate, capacity); the
// capacity comparison is repeated inside the insert transaction, so two
// requests racing for the last seat cannot both win.
func (s *Service) Join(ctx context.Context, eventID, userID uuid.UUID) error {
	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	joined, err := s.repo.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if joined {
		return domain.ErrConflict("already joined this event")
	}

	if e.IsEnded(s.clock.Now()) {
		return domain.ErrConflict("event has already ended")
	}

	if e.IsClubScoped() {
		member, err := s.members.IsAcceptedMember(ctx, *e.ClubID, userID)
		if err != nil {
			return err
		}
		if !member {
			return domain.ErrForbidden("only club members can join this event")
		}
	}

	count, err := s.repo.ParticipantCount(ctx, eventID)
	if err != nil {
		return err
	}
	if count == e.MaxPeople {
		return domain.ErrCapacityFull("event is full")
	}

	return s.repo.Join(ctx, eventID, userID)
}

// Out removes the caller's participation. The host may never leave
// their own event, and nobody leaves an ended one.
func (s *Service) Out(ctx context.Context, eventID, userID uuid.UUID) error {
	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	joined, err := s.repo.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if !joined {
		return domain.ErrConflict("not joined this event")
	}

	if e.IsEnded(s.clock.Now()) {
		return domain.ErrConflict("event has already ended")
	}

	if e.HostID == userID {
		return domain.ErrConflict("the host cannot leave their own event")
	}

	return s.repo.Leave(ctx, eventID, userID)
}
