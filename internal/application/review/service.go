package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
)

type Service struct {
	repo   Repo
	events EventReader
	clubs  ClubReader
	clock  Clock
}

func New(repo Repo, events EventReader, clubs ClubReader, clock Clock) *Service {
	return &Service{repo: repo, events: events, clubs: clubs, clock: clock}
}

// snapshotFor assembles the visibility snapshot for the given reviews
// and viewer: the reviewed events, the viewer's accepted clubs and
// joined events, and the deletion state of every club referenced.
func (s *Service) snapshotFor(ctx context.Context, reviews []*domain.Review, viewerID uuid.UUID) (Snapshot, error) {
	snap := Snapshot{
		Events:       map[uuid.UUID]*domain.Event{},
		ViewerClubs:  map[uuid.UUID]bool{},
		ViewerEvents: map[uuid.UUID]bool{},
		ClubDeleted:  map[uuid.UUID]bool{},
	}
	if len(reviews) == 0 {
		return snap, nil
	}

	seen := map[uuid.UUID]bool{}
	ids := make([]uuid.UUID, 0, len(reviews))
	for _, r := range reviews {
		if !seen[r.EventID] {
			seen[r.EventID] = true
			ids = append(ids, r.EventID)
		}
	}

	events, err := s.events.GetByIDs(ctx, ids)
	if err != nil {
		return Snapshot{}, err
	}
	clubIDs := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		snap.Events[e.ID] = e
		if e.IsClubScoped() {
			clubIDs = append(clubIDs, *e.ClubID)
		}
	}

	viewerClubs, err := s.clubs.AcceptedClubIDs(ctx, viewerID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, id := range viewerClubs {
		snap.ViewerClubs[id] = true
	}

	viewerEvents, err := s.events.ListJoinedIDs(ctx, viewerID)
	if err != nil {
		return Snapshot{}, err
	}
	for _, id := range viewerEvents {
		snap.ViewerEvents[id] = true
	}

	if len(clubIDs) > 0 {
		deleted, err := s.clubs.DeletedStatus(ctx, clubIDs)
		if err != nil {
			return Snapshot{}, err
		}
		snap.ClubDeleted = deleted
	}

	return snap, nil
}
