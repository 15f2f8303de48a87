package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

// Get returns one review if the viewer may read it, applying the same
// two-tier rule as List: membership while the club is alive,
// participation once the club is deleted.
func (s *Service) Get(ctx context.Context, reviewID, viewerID uuid.UUID) (*domain.Review, error) {
	r, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshotFor(ctx, []*domain.Review{r}, viewerID)
	if err != nil {
		return nil, err
	}
	if !snap.Visible(r) {
		return nil, domain.ErrForbidden("only club members can read this review")
	}
	return r, nil
}

// List returns reviews the viewer may read, visibility-filtered.
func (s *Service) List(ctx context.Context, f ListFilter, viewerID uuid.UUID) ([]*domain.Review, error) {
	reviews, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return []*domain.Review{}, nil
	}

	snap, err := s.snapshotFor(ctx, reviews, viewerID)
	if err != nil {
		return nil, err
	}
	return Resolve(reviews, snap), nil
}
