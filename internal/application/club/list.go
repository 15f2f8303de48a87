package club

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

func (s *Service) Get(ctx context.Context, clubID uuid.UUID) (*domain.Club, error) {
	return s.repo.GetByID(ctx, clubID)
}

func (s *Service) List(ctx context.Context) ([]*domain.Club, error) {
	return s.repo.List(ctx)
}

// ListMine returns the clubs where the viewer holds an accepted
// membership. Pending applications are not included.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Club, error) {
	return s.repo.ListByMember(ctx, userID)
}
