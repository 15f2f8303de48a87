package event

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
	HostID     *uuid.UUID
	CategoryID *int64
	CityID     *int64

	Page     int
	PageSize int
}

// Repo is the persistence port for events and the participation
// tracker. Join must re-run the capacity check inside the same
// transaction as the insert.
type Repo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f ListFilter) ([]*domain.Event, int, error)
	ListJoined(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error)

	ParticipantCount(ctx context.Context, eventID uuid.UUID) (int, error)
	IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	Join(ctx context.Context, eventID, userID uuid.UUID) error
	Leave(ctx context.Context, eventID, userID uuid.UUID) error
}

// MembershipReader answers club-gating questions for club-scoped events.
type MembershipReader interface {
	GetClub(ctx context.Context, clubID uuid.UUID) (*domain.Club, error)
	IsAcceptedMember(ctx context.Context, clubID, userID uuid.UUID) (bool, error)
}

// RefData is the external reference-data collaborator: plain existence
// lookups for categories and cities.
type RefData interface {
	CategoryExists(ctx context.Context, id int64) (bool, error)
	CitiesExist(ctx context.Context, ids []int64) (bool, error)
}
