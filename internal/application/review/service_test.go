package review

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minyoungbaek/eventory/internal/domain"
)

// --- Mocks & Helpers ---

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type memReviewRepo struct {
	byID map[uuid.UUID]*domain.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{byID: map[uuid.UUID]*domain.Review{}}
}

func (m *memReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	m.byID[r.ID] = r
	return nil
}

func (m *memReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("review not found")
	}
	return r, nil
}

func (m *memReviewRepo) Update(ctx context.Context, r *domain.Review) error {
	m.byID[r.ID] = r
	return nil
}

func (m *memReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound("review not found")
	}
	delete(m.byID, id)
	return nil
}

func (m *memReviewRepo) List(ctx context.Context, f ListFilter) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, r := range m.byID {
		if f.EventID != nil && r.EventID != *f.EventID {
			continue
		}
		if f.UserID != nil && r.UserID != *f.UserID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memReviewRepo) Exists(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	for _, r := range m.byID {
		if r.UserID == userID && r.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

type stubEvents struct {
	events       map[uuid.UUID]*domain.Event
	participants map[uuid.UUID]map[uuid.UUID]bool
}

func newStubEvents() *stubEvents {
	return &stubEvents{
		events:       map[uuid.UUID]*domain.Event{},
		participants: map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (s *stubEvents) add(e *domain.Event, participants ...uuid.UUID) {
	s.events[e.ID] = e
	if s.participants[e.ID] == nil {
		s.participants[e.ID] = map[uuid.UUID]bool{}
	}
	for _, p := range participants {
		s.participants[e.ID][p] = true
	}
}

func (s *stubEvents) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return e, nil
}

func (s *stubEvents) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, id := range ids {
		if e, ok := s.events[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubEvents) IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	return s.participants[eventID][userID], nil
}

func (s *stubEvents) ListJoinedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for eid, users := range s.participants {
		if users[userID] {
			out = append(out, eid)
		}
	}
	return out, nil
}

type stubClubs struct {
	accepted map[uuid.UUID][]uuid.UUID // userID -> clubIDs
	deleted  map[uuid.UUID]bool
}

func newStubClubs() *stubClubs {
	return &stubClubs{
		accepted: map[uuid.UUID][]uuid.UUID{},
		deleted:  map[uuid.UUID]bool{},
	}
}

func (s *stubClubs) AcceptedClubIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.accepted[userID], nil
}

func (s *stubClubs) DeletedStatus(ctx context.Context, clubIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	for _, id := range clubIDs {
		out[id] = s.deleted[id]
	}
	return out, nil
}

func errCode(t *testing.T, err error) domain.ErrCode {
	t.Helper()
	var ae *domain.AppError
	require.ErrorAs(t, err, &ae)
	return ae.Code
}

func endedEvent(host uuid.UUID, now time.Time) *domain.Event {
	return &domain.Event{
		ID:        uuid.New(),
		HostID:    host,
		StartTime: now.Add(-3 * time.Hour),
		EndTime:   now.Add(-time.Hour),
		MaxPeople: 10,
	}
}

// --- Test Cases ---

func TestService_Create(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	host := uuid.New()
	attendee := uuid.New()

	setup := func(t *testing.T) (*Service, *stubEvents, *domain.Event) {
		t.Helper()
		events := newStubEvents()
		e := endedEvent(host, now)
		events.add(e, host, attendee)
		svc := New(newMemReviewRepo(), events, newStubClubs(), fakeClock{t: now})
		return svc, events, e
	}

	t.Run("participant_reviews_ended_event", func(t *testing.T) {
		svc, _, e := setup(t)
		rv, err := svc.Create(context.Background(), CreateCmd{
			ActorID: attendee, EventID: e.ID, Score: 4, Title: "good one",
		})
		require.NoError(t, err)
		assert.Equal(t, attendee, rv.UserID)
	})

	t.Run("second_review_conflicts", func(t *testing.T) {
		svc, _, e := setup(t)
		_, err := svc.Create(context.Background(), CreateCmd{
			ActorID: attendee, EventID: e.ID, Score: 4, Title: "good one",
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), CreateCmd{
			ActorID: attendee, EventID: e.ID, Score: 2, Title: "changed my mind",
		})
		assert.Equal(t, domain.CodeConflict, errCode(t, err))
	})

	t.Run("non_participant_conflicts", func(t *testing.T) {
		svc, _, e := setup(t)
		_, err := svc.Create(context.Background(), CreateCmd{
			ActorID: uuid.New(), EventID: e.ID, Score: 4, Title: "drive-by",
		})
		assert.Equal(t, domain.CodeConflict, errCode(t, err))
	})

	t.Run("running_event_rejects_review", func(t *testing.T) {
		svc, events, _ := setup(t)
		running := &domain.Event{
			ID: uuid.New(), HostID: host,
			StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
		}
		events.add(running, attendee)

		_, err := svc.Create(context.Background(), CreateCmd{
			ActorID: attendee, EventID: running.ID, Score: 4, Title: "too early",
		})
		assert.Equal(t, domain.CodeConflict, errCode(t, err))
	})

	t.Run("host_cannot_review_own_event", func(t *testing.T) {
		svc, _, e := setup(t)
		_, err := svc.Create(context.Background(), CreateCmd{
			ActorID: host, EventID: e.ID, Score: 5, Title: "i did great",
		})
		assert.Equal(t, domain.CodeConflict, errCode(t, err))
	})
}

func TestService_VisibilityThroughReads(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	host := uuid.New()
	attendee := uuid.New()
	clubID := uuid.New()

	repo := newMemReviewRepo()
	events := newStubEvents()
	clubs := newStubClubs()
	svc := New(repo, events, clubs, fakeClock{t: now})

	clubEvent := endedEvent(host, now)
	clubEvent.ClubID = &clubID
	events.add(clubEvent, host, attendee)
	clubs.accepted[attendee] = []uuid.UUID{clubID}
	clubs.accepted[host] = []uuid.UUID{clubID}

	rv, err := svc.Create(context.Background(), CreateCmd{
		ActorID: attendee, EventID: clubEvent.ID, Score: 3, Title: "decent",
	})
	require.NoError(t, err)

	outsider := uuid.New()

	t.Run("member_reads_club_review", func(t *testing.T) {
		got, err := svc.Get(context.Background(), rv.ID, host)
		require.NoError(t, err)
		assert.Equal(t, rv.ID, got.ID)
	})

	t.Run("outsider_gets_forbidden", func(t *testing.T) {
		_, err := svc.Get(context.Background(), rv.ID, outsider)
		assert.Equal(t, domain.CodeForbidden, errCode(t, err))
	})

	t.Run("outsider_list_omits_club_review", func(t *testing.T) {
		got, err := svc.List(context.Background(), ListFilter{}, outsider)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("deleted_club_keeps_review_for_participant", func(t *testing.T) {
		clubs.deleted[clubID] = true
		clubs.accepted = map[uuid.UUID][]uuid.UUID{} // ledger gone with the club

		got, err := svc.Get(context.Background(), rv.ID, attendee)
		require.NoError(t, err)
		assert.Equal(t, rv.ID, got.ID)
	})

	t.Run("deleted_club_hides_review_from_non_participant", func(t *testing.T) {
		_, err := svc.Get(context.Background(), rv.ID, outsider)
		assert.Equal(t, domain.CodeForbidden, errCode(t, err))
	})
}

func TestService_UpdateAndDelete(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	host := uuid.New()
	attendee := uuid.New()

	repo := newMemReviewRepo()
	events := newStubEvents()
	e := endedEvent(host, now)
	events.add(e, host, attendee)
	svc := New(repo, events, newStubClubs(), fakeClock{t: now})

	desc := "queue was long"
	rv, err := svc.Create(context.Background(), CreateCmd{
		ActorID: attendee, EventID: e.ID, Score: 4, Title: "good", Description: &desc,
	})
	require.NoError(t, err)

	t.Run("non_author_cannot_patch", func(t *testing.T) {
		score := 1
		_, err := svc.Update(context.Background(), UpdateCmd{
			ActorID: uuid.New(), ReviewID: rv.ID, Score: &score,
		})
		assert.Equal(t, domain.CodeForbidden, errCode(t, err))
	})

	t.Run("author_clears_description", func(t *testing.T) {
		got, err := svc.Update(context.Background(), UpdateCmd{
			ActorID: attendee, ReviewID: rv.ID, ClearDescription: true,
		})
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Equal(t, 4, got.Score)
	})

	t.Run("non_author_cannot_delete", func(t *testing.T) {
		err := svc.Delete(context.Background(), rv.ID, host)
		assert.Equal(t, domain.CodeForbidden, errCode(t, err))
	})

	t.Run("author_deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), rv.ID, attendee))
		err := svc.Delete(context.Background(), rv.ID, attendee)
		assert.Equal(t, domain.CodeNotFound, errCode(t, err))
	})
}
