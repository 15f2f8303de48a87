package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type ListFilter struct {
	EventID *uuid.UUID
	UserID  *uuid.UUID
}

type Repo interface {
	Create(ctx context.Context, r *domain.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f ListFilter) ([]*domain.Review, error)
	Exists(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
}

// EventReader looks up events for review gating and visibility. Unlike
// the event service's own reads, GetByIDs must also return events whose
// owning club has been deleted — retained history is exactly what the
// visibility fallback inspects.
type EventReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Event, error)
	IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	ListJoinedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ClubReader answers membership and deletion-state questions, including
// for soft-deleted clubs.
type ClubReader interface {
	AcceptedClubIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	DeletedStatus(ctx context.Context, clubIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}
