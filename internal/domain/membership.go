package domain

import (
	"time"

	"github.com/google/uuid"
)

// MembershipStatus is the approval state of a club membership.
// A membership row only ever holds pending or accepted; rejection and
// voluntary exit delete the row instead of adding a terminal status.
type MembershipStatus string

const (
	StatusPending  MembershipStatus = "pending"
	StatusAccepted MembershipStatus = "accepted"
)

func (s MembershipStatus) Valid() bool {
	return s == StatusPending || s == StatusAccepted
}

type Membership struct {
	ClubID uuid.UUID
	UserID uuid.UUID
	Status MembershipStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
