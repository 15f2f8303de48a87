package review

import (
	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

// Snapshot carries the already-fetched state the resolver filters
// against. It is assembled once per request so the filter itself stays
// a pure function.
type Snapshot struct {
	// Events keyed by ID, including events of deleted clubs.
	Events map[uuid.UUID]*domain.Event
	// Clubs the viewer currently holds accepted membership in.
	ViewerClubs map[uuid.UUID]bool
	// Events the viewer has a participation row for.
	ViewerEvents map[uuid.UUID]bool
	// Deletion state per club referenced by the events above.
	ClubDeleted map[uuid.UUID]bool
}

// Visible decides readability for one review against the snapshot.
//
// Reviews on public events are visible to everyone. For club-scoped
// events: while the club is alive, visibility requires current accepted
// membership. Once the club is deleted its membership ledger is gone,
// so visibility falls back to whether the viewer participated in that
// specific event — participation history of ended events survives club
// deletion, which keeps old reviews readable to legitimate past
// attendees.
func (s Snapshot) Visible(r *domain.Review) bool {
	e, ok := s.Events[r.EventID]
	if !ok || !e.IsClubScoped() {
		return true
	}
	if s.ClubDeleted[*e.ClubID] {
		return s.ViewerEvents[e.ID]
	}
	return s.ViewerClubs[*e.ClubID]
}

// Resolve filters reviews down to the ones the viewer may read. Pure
// filtering pass, no side effects.
func Resolve(reviews []*domain.Review, snap Snapshot) []*domain.Review {
	out := make([]*domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if snap.Visible(r) {
			out = append(out, r)
		}
	}
	return out
}
