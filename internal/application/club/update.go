package club

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

type UpdateCmd struct {
	ActorID uuid.UUID
	ClubID  uuid.UUID

	Name        *string
	Description *string
	MaxPeople   *int
}

func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Club, error) {
	c, err := s.repo.GetByID(ctx, cmd.ClubID)
	if err != nil {
		return nil, err
	}
	if c.LeaderID != cmd.ActorID {
		return nil, domain.ErrForbidden("only the leader can update the club")
	}

	if cmd.MaxPeople != nil {
		count, err := s.repo.AcceptedCount(ctx, cmd.ClubID)
		if err != nil {
			return nil, err
		}
		if *cmd.MaxPeople < count {
			return nil, domain.ErrConflict("max_people cannot be less than the current member count")
		}
	}

	if err := c.ApplyUpdate(cmd.Name, cmd.Description, cmd.MaxPeople, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
