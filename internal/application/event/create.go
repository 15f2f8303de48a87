package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

type CreateCmd struct {
	ActorID uuid.UUID

	Title       string
	Description string
	ClubID      *uuid.UUID
	CategoryID  int64
	CityIDs     []int64
	StartTime   time.Time
	EndTime     time.Time
	MaxPeople   int
}

// Create makes a new event; the host is enrolled as the first
// participant in the same transaction. A club-scoped event can only be
// opened by an accepted member of that club.
func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	ok, err := s.refdata.CategoryExists(ctx, cmd.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound("category does not exist")
	}

	if len(cmd.CityIDs) > 0 {
		ok, err := s.refdata.CitiesExist(ctx, cmd.CityIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound("one or more cities do not exist")
		}
	}

	if cmd.ClubID != nil {
		if _, err := s.members.GetClub(ctx, *cmd.ClubID); err != nil {
			return nil, err
		}
		member, err := s.members.IsAcceptedMember(ctx, *cmd.ClubID, cmd.ActorID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, domain.ErrForbidden("only club members can open a club event")
		}
	}

	e, err := domain.NewEvent(
		cmd.ActorID, cmd.ClubID,
		cmd.Title, cmd.Description,
		cmd.CategoryID, cmd.CityIDs,
		cmd.StartTime, cmd.EndTime,
		cmd.MaxPeople,
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
