package club

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

// Approve flips a pending application to accepted. Capacity may have
// filled between application and approval, so the repository re-checks
// the accepted count against max_people inside the status-flip
// transaction and the approval fails with capacity_full if the club
// filled up in the meantime.
func (s *Service) Approve(ctx context.Context, clubID, applicantID, actorID uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if c.LeaderID != actorID {
		return domain.ErrForbidden("only the leader can approve applicants")
	}

	m, err := s.repo.GetMembership(ctx, clubID, applicantID)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound("no pending application for this user")
		}
		return err
	}
	if m.Status != domain.StatusPending {
		return domain.ErrNotFound("no pending application for this user")
	}

	return s.repo.Approve(ctx, clubID, applicantID)
}

// Reject removes a pending application. The row is deleted, so a second
// reject of the same application reports not_found.
func (s *Service) Reject(ctx context.Context, clubID, applicantID, actorID uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if c.LeaderID != actorID {
		return domain.ErrForbidden("only the leader can reject applicants")
	}

	m, err := s.repo.GetMembership(ctx, clubID, applicantID)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound("no pending application for this user")
		}
		return err
	}
	if m.Status != domain.StatusPending {
		return domain.ErrNotFound("no pending application for this user")
	}

	return s.repo.Reject(ctx, clubID, applicantID)
}

// Applicants lists pending applications. Leader only.
func (s *Service) Applicants(ctx context.Context, clubID, actorID uuid.UUID) ([]*domain.Membership, error) {
	c, err := s.repo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if c.LeaderID != actorID {
		return nil, domain.ErrForbidden("only the leader can list applicants")
	}
	return s.repo.ListApplicants(ctx, clubID)
}
