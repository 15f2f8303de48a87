package club

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// Repo is the persistence port for clubs and their membership ledger.
// Join and Approve must re-run the capacity check inside the same
// transaction as the write; the service-level checks are fast-fail only.
type Repo interface {
	Create(ctx context.Context, c *domain.Club) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error)
	Update(ctx context.Context, c *domain.Club) error
	Delete(ctx context.Context, id uuid.UUID, now time.Time) error
	List(ctx context.Context) ([]*domain.Club, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Club, error)

	GetMembership(ctx context.Context, clubID, userID uuid.UUID) (*domain.Membership, error)
	AcceptedCount(ctx context.Context, clubID uuid.UUID) (int, error)
	ListApplicants(ctx context.Context, clubID uuid.UUID) ([]*domain.Membership, error)

	Join(ctx context.Context, clubID, userID uuid.UUID) error
	Leave(ctx context.Context, clubID, userID uuid.UUID) error
	Approve(ctx context.Context, clubID, userID uuid.UUID) error
	Reject(ctx context.Context, clubID, userID uuid.UUID) error
}
