package club

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

type memberKey struct {
	club uuid.UUID
	user uuid.UUID
}

type memClubRepo struct {
	clubs   map[uuid.UUID]*domain.Club
	members map[memberKey]*domain.Membership
}

func newMemClubRepo() *memClubRepo {
	return &memClubRepo{
		clubs:   map[uuid.UUID]*domain.Club{},
		members: map[memberKey]*domain.Membership{},
	}
}

func (m *memClubRepo) Create(ctx context.Context, c *domain.Club) error {
	m.clubs[c.ID] = c
	m.members[memberKey{c.ID, c.LeaderID}] = &domain.Membership{
		ClubID: c.ID, UserID: c.LeaderID, Status: domain.StatusAccepted, CreatedAt: c.CreatedAt,
	}
	return nil
}

func (m *memClubRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error) {
	c, ok := m.clubs[id]
	if !ok || c.IsDeleted() {
		return nil, domain.ErrNotFound("club not found")
	}
	return c, nil
}

func (m *memClubRepo) Update(ctx context.Context, c *domain.Club) error {
	m.clubs[c.ID] = c
	return nil
}

func (m *memClubRepo) Delete(ctx context.Context, id uuid.UUID, now time.Time) error {
	c, ok := m.clubs[id]
	if !ok || c.IsDeleted() {
		return domain.ErrNotFound("club not found")
	}
	c.DeletedAt = &now
	for k := range m.members {
		if k.club == id {
			delete(m.members, k)
		}
	}
	return nil
}

func (m *memClubRepo) List(ctx context.Context) ([]*domain.Club, error) {
	var out []*domain.Club
	for _, c := range m.clubs {
		if !c.IsDeleted() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClubRepo) ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Club, error) {
	var out []*domain.Club
	for k, mb := range m.members {
		if k.user == userID && mb.Status == domain.StatusAccepted {
			if c, ok := m.clubs[k.club]; ok && !c.IsDeleted() {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (m *memClubRepo) GetMembership(ctx context.Context, clubID, userID uuid.UUID) (*domain.Membership, error) {
	mb, ok := m.members[memberKey{clubID, userID}]
	if !ok {
		return nil, domain.ErrNotFound("membership not found")
	}
	return mb, nil
}

func (m *memClubRepo) AcceptedCount(ctx context.Context, clubID uuid.UUID) (int, error) {
	n := 0
	for k, mb := range m.members {
		if k.club == clubID && mb.Status == domain.StatusAccepted {
			n++
		}
	}
	return n, nil
}

func (m *memClubRepo) ListApplicants(ctx context.Context, clubID uuid.UUID) ([]*domain.Membership, error) {
	var out []*domain.Membership
	for k, mb := range m.members {
		if k.club == clubID && mb.Status == domain.StatusPending {
			out = append(out, mb)
		}
	}
	return out, nil
}

func (m *memClubRepo) Join(ctx context.Context, clubID, userID uuid.UUID) error {
	key := memberKey{clubID, userID}
	if _, ok := m.members[key]; ok {
		return domain.ErrConflict("already applied to this club")
	}
	c := m.clubs[clubID]
	n, _ := m.AcceptedCount(ctx, clubID)
	if n == c.MaxPeople {
		return domain.ErrCapacityFull("club is full")
	}
	m.members[key] = &domain.Membership{ClubID: clubID, UserID: userID, Status: domain.StatusPending}
	return nil
}

func (m *memClubRepo) Leave(ctx context.Context, clubID, userID uuid.UUID) error {
	delete(m.members, memberKey{clubID, userID})
	return nil
}

func (m *memClubRepo) Approve(ctx context.Context, clubID, userID uuid.UUID) error {
	mb, ok := m.members[memberKey{clubID, userID}]
	if !ok || mb.Status != domain.StatusPending {
		return domain.ErrNotFound("no pending application for this user")
	}
	c := m.clubs[clubID]
	n, _ := m.AcceptedCount(ctx, clubID)
	if n == c.MaxPeople {
		return domain.ErrCapacityFull("club is full")
	}
	mb.Status = domain.StatusAccepted
	return nil
}

func (m *memClubRepo) Reject(ctx context.Context, clubID, userID uuid.UUID) error {
	mb, ok := m.members[memberKey{clubID, userID}]
	if !ok || mb.Status != domain.StatusPending {
		return domain.ErrNotFound("no pending application for this user")
	}
	delete(m.members, memberKey{clubID, userID})
	return nil
}

func errCode(t *testing.T, err error) domain.ErrCode {
	t.Helper()
	var ae *domain.AppError
	require.ErrorAs(t, err, &ae)
	return ae.Code
}

// --- Test Cases ---

func TestService_JoinApproveFlow(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newMemClubRepo()
	svc := New(repo, fakeClock{t: now})

	leader := uuid.New()
	applicant := uuid.New()

	c, err := svc.Create(context.Background(), CreateCmd{
		ActorID: leader, Name: "chess", Description: "casual blitz", MaxPeople: 2,
	})
	require.NoError(t, err)

	t.Run("applying_creates_pending_membership", func(t *testing.T) {
		require.NoError(t, svc.Join(context.Background(), c.ID, applicant))

		ms, err := svc.Applicants(context.Background(), c.ID, leader)
		require.NoError(t, err)
		require.Len(t, ms, 1)
		assert.Equal(t, domain.StatusPending, ms[0].Status)
	})

	t.Run("applying_twice_conflicts", func(t *testing.T) {
		err := svc.Join(context.Background(), c.ID, applicant)
		assert.Equal(t, domain.CodeConflict, errCode(t, err))
	})

	t.Run("only_leader_reads_applicants", func(t *testing.T) {
		_, err := svc.Applicants(context.Background(), c.ID, applicant)
		assert.Equal(t, domain.CodeForbidden, errCode(t, err))
	})

	t.Run("approve_by_non_leader_forbidden", func(t *testing.T) {
		err := svc.Approve(context.Background(), c.ID, applicant, applicant)
		assert.Equal(t, domain.CodeForbidden, errCode(t, err))
	})

	t.Run("leader_approves_applicant", func(t *testing.T) {
		require.NoError(t, svc.Approve(context.Background(), c.ID, applicant, leader))

		mb, err := repo.GetMembership(context.Background(), c.ID, applicant)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, mb.Status)
	})

	t.Run("approving_member_again_is_not_found", func(t *testing.T) {
		err := svc.Approve(context.Background(), c.ID, applicant, leader)
		assert.Equal(t, domain.CodeNotFound, errCode(t, err))
	})

	t.Run("joining_as_member_conflicts", func(t *testing.T) {
		err := svc.Join(context.Background(), c.ID, applicant)
		assert.Equal(t, domain.CodeConflict, errCode(t, err))
	})

	t.Run("full_club_rejects_new_applications", func(t *testing.T) {
		// capacity 2: leader + approved applicant
		err := svc.Join(context.Background(), c.ID, uuid.New())
		assert.Equal(t, domain.CodeCapacityFull, errCode(t, err))
	})
}

func TestService_RejectAndLeave(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newMemClubRepo()
	svc := New(repo, fakeClock{t: now})

	leader := uuid.New()
	applicant := uuid.New()

	c, err := svc.Create(context.Background(), CreateCmd{
		ActorID: leader, Name: "book club", Description: "one novel a month", MaxPeople: 5,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Join(context.Background(), c.ID, applicant))

	t.Run("reject_deletes_application", func(t *testing.T) {
		require.NoError(t, svc.Reject(context.Background(), c.ID, applicant, leader))
		_, err := repo.GetMembership(context.Background(), c.ID, applicant)
		assert.Error(t, err)
	})

	t.Run("second_reject_is_not_found", func(t *testing.T) {
		err := svc.Reject(context.Background(), c.ID, applicant, leader)
		assert.Equal(t, domain.CodeNotFound, errCode(t, err))
	})

	t.Run("rejected_user_can_reapply", func(t *testing.T) {
		assert.NoError(t, svc.Join(context.Background(), c.ID, applicant))
	})

	t.Run("pending_applicant_cannot_leave", func(t *testing.T) {
		err := svc.Out(context.Background(), c.ID, applicant)
		assert.Equal(t, domain.CodeConflict, errCode(t, err))
	})

	t.Run("member_can_leave", func(t *testing.T) {
		require.NoError(t, svc.Approve(context.Background(), c.ID, applicant, leader))
		assert.NoError(t, svc.Out(context.Background(), c.ID, applicant))
	})

	t.Run("leader_cannot_leave", func(t *testing.T) {
		err := svc.Out(context.Background(), c.ID, leader)
		assert.Equal(t, domain.CodeConflict, errCode(t, err))
	})
}

func TestService_UpdateAndDelete(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := newMemClubRepo()
	svc := New(repo, fakeClock{t: now})

	leader := uuid.New()
	member := uuid.New()

	c, err := svc.Create(context.Background(), CreateCmd{
		ActorID: leader, Name: "climbing", Description: "indoor bouldering", MaxPeople: 4,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Join(context.Background(), c.ID, member))
	require.NoError(t, svc.Approve(context.Background(), c.ID, member, leader))

	t.Run("non_leader_cannot_patch", func(t *testing.T) {
		name := "renamed"
		_, err := svc.Update(context.Background(), UpdateCmd{ActorID: member, ClubID: c.ID, Name: &name})
		assert.Equal(t, domain.CodeForbidden, errCode(t, err))
	})

	t.Run("shrinking_below_member_count_conflicts", func(t *testing.T) {
		one := 1
		_, err := svc.Update(context.Background(), UpdateCmd{ActorID: leader, ClubID: c.ID, MaxPeople: &one})
		assert.Equal(t, domain.CodeConflict, errCode(t, err))
	})

	t.Run("leader_patches_club", func(t *testing.T) {
		name := "climbing crew"
		got, err := svc.Update(context.Background(), UpdateCmd{ActorID: leader, ClubID: c.ID, Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "climbing crew", got.Name)
	})

	t.Run("non_leader_cannot_delete", func(t *testing.T) {
		err := svc.Delete(context.Background(), c.ID, member)
		assert.Equal(t, domain.CodeForbidden, errCode(t, err))
	})

	t.Run("delete_hides_club_and_memberships", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), c.ID, leader))

		_, err := svc.Get(context.Background(), c.ID)
		assert.Equal(t, domain.CodeNotFound, errCode(t, err))

		mine, err := svc.ListMine(context.Background(), member)
		require.NoError(t, err)
		assert.Empty(t, mine)
	})
}
