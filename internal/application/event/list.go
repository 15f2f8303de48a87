package event

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

func (s *Service) Get(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	return s.repo.GetByID(ctx, eventID)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*domain.Event, int, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	return s.repo.List(ctx, f)
}

// ListMine returns the events the viewer participates in.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	return s.repo.ListJoined(ctx, userID)
}
