package club

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

type CreateCmd struct {
	ActorID uuid.UUID

	Name        string
	Description string
	MaxPeople   int
}

// Create makes a new club. The creator becomes the leader and is
// written as an accepted member in the same transaction, so the club
// invariant (leader is always accepted) holds from the first row.
func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Club, error) {
	c, err := domain.NewClub(cmd.ActorID, cmd.Name, cmd.Description, cmd.MaxPeople, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
