package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

type UpdateCmd struct {
	ActorID uuid.UUID
	EventID uuid.UUID

	Title       *string
	Description *string
	CategoryID  *int64
	CityIDs     *[]int64
	StartTime   *time.Time
	EndTime     *time.Time
	MaxPeople   *int
}

// Update patches an event. Host only, and only before start_time; the
// new time range is re-validated and a shrunken max_people may not fall
// below the current participant count.
func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Event, error) {
	e, err := s.repo.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	if e.HostID != cmd.ActorID {
		return nil, domain.ErrForbidden("only the host can update the event")
	}
	if e.HasStarted(s.clock.Now()) {
		return nil, domain.ErrConflict("event has already started")
	}

	if cmd.CategoryID != nil {
		ok, err := s.refdata.CategoryExists(ctx, *cmd.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound("category does not exist")
		}
	}
	if cmd.CityIDs != nil && len(*cmd.CityIDs) > 0 {
		ok, err := s.refdata.CitiesExist(ctx, *cmd.CityIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound("one or more cities do not exist")
		}
	}

	if cmd.MaxPeople != nil {
		count, err := s.repo.ParticipantCount(ctx, cmd.EventID)
		if err != nil {
			return nil, err
		}
		if *cmd.MaxPeople < count {
			return nil, domain.ErrConflict("max_people cannot be less than the current participant count")
		}
	}

	if err := e.ApplyUpdate(
		cmd.Title, cmd.Description,
		cmd.CategoryID, cmd.CityIDs,
		cmd.StartTime, cmd.EndTime,
		cmd.MaxPeople,
		s.clock.Now(),
	); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
