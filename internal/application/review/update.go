package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

type UpdateCmd struct {
	ActorID  uuid.UUID
	ReviewID uuid.UUID

	Score            *int
	Title            *string
	Description      *string
	ClearDescription bool
}

// Update patches a review. Author only.
func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Review, error) {
	r, err := s.repo.GetByID(ctx, cmd.ReviewID)
	if err != nil {
		return nil, err
	}
	if r.UserID != cmd.ActorID {
		return nil, domain.ErrForbidden("only the author can modify the review")
	}

	if err := r.ApplyUpdate(cmd.Score, cmd.Title, cmd.Description, cmd.ClearDescription, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a review. Author only.
func (s *Service) Delete(ctx context.Context, reviewID, actorID uuid.UUID) error {
	r, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if r.UserID != actorID {
		return domain.ErrForbidden("only the author can modify the review")
	}
	return s.repo.Delete(ctx, reviewID)
}
