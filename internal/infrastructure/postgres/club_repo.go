package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minyoungbaek/eventory/internal/domain"
)

type ClubRepository struct {
	pool *pgxpool.Pool
}

func NewClubRepository(pool *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{pool: pool}
}

const selectClubSQL = `
SELECT id, name, description, leader_id, max_people, deleted_at, created_at, updated_at
FROM clubs
`

func scanClub(row pgx.Row) (*domain.Club, error) {
	var c domain.Club
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.LeaderID, &c.MaxPeople,
		&c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("club not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the club and the leader's accepted membership in one
// transaction, so the leader-is-always-a-member invariant holds from
// the first row.
func (r *ClubRepository) Create(ctx context.Context, c *domain.Club) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO clubs (id, name, description, leader_id, max_people, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.Name, c.Description, c.LeaderID, c.MaxPeople, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO club_memberships (club_id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`, c.ID, c.LeaderID, string(domain.StatusAccepted), c.CreatedAt)
	if err != nil {
		return err
	}

	if err := enqueueOutbox(ctx, tx, "club.created", map[string]any{
		"club_id":   c.ID,
		"leader_id": c.LeaderID,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID returns the club if it exists and is not soft-deleted.
func (r *ClubRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error) {
	row := r.pool.QueryRow(ctx, selectClubSQL+`WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanClub(row)
}

func (r *ClubRepository) Update(ctx context.Context, c *domain.Club) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE clubs
		SET name = $2, description = $3, max_people = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
	`, c.ID, c.Name, c.Description, c.MaxPeople, c.UpdatedAt)
	return err
}

// Delete soft-deletes the club and hard-deletes its membership ledger
// and its not-yet-started events, atomically. Partial application
// (memberships gone but future events dangling) would corrupt the
// visibility rules, so every statement runs in one transaction. Ended
// and in-progress events are retained together with their participation
// rows.
func (r *ClubRepository) Delete(ctx context.Context, id uuid.UUID, now time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Taking the club row lock first serializes the cascade against
	// concurrent join/approve transactions on the same club.
	tag, err := tx.Exec(ctx, `
		UPDATE clubs SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id, now.UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("club not found")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM club_memberships WHERE club_id = $1`, id); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM event_participants
		WHERE event_id IN (SELECT id FROM events WHERE club_id = $1 AND start_time > $2)
	`, id, now.UTC()); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM event_cities
		WHERE event_id IN (SELECT id FROM events WHERE club_id = $1 AND start_time > $2)
	`, id, now.UTC()); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM events WHERE club_id = $1 AND start_time > $2
	`, id, now.UTC()); err != nil {
		return err
	}

	if err := enqueueOutbox(ctx, tx, "club.deleted", map[string]any{
		"club_id": id,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ClubRepository) List(ctx context.Context) ([]*domain.Club, error) {
	rows, err := r.pool.Query(ctx, selectClubSQL+`WHERE deleted_at IS NULL ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectClubs(rows)
}

func (r *ClubRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Club, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.name, c.description, c.leader_id, c.max_people, c.deleted_at, c.created_at, c.updated_at
		FROM clubs c
		JOIN club_memberships m ON m.club_id = c.id
		WHERE c.deleted_at IS NULL AND m.user_id = $1 AND m.status = $2
		ORDER BY c.created_at DESC
	`, userID, string(domain.StatusAccepted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectClubs(rows)
}

func collectClubs(rows pgx.Rows) ([]*domain.Club, error) {
	var out []*domain.Club
	for rows.Next() {
		var c domain.Club
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.LeaderID, &c.MaxPeople,
			&c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.Club{}
	}
	return out, nil
}

func (r *ClubRepository) GetMembership(ctx context.Context, clubID, userID uuid.UUID) (*domain.Membership, error) {
	var m domain.Membership
	var status string
	err := r.pool.QueryRow(ctx, `
		SELECT club_id, user_id, status, created_at, updated_at
		FROM club_memberships
		WHERE club_id = $1 AND user_id = $2
	`, clubID, userID).Scan(&m.ClubID, &m.UserID, &status, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("membership not found")
	}
	if err != nil {
		return nil, err
	}
	m.Status = domain.MembershipStatus(status)
	if !m.Status.Valid() {
		return nil, domain.ErrConflict("invalid membership status in db")
	}
	return &m, nil
}

func (r *ClubRepository) AcceptedCount(ctx context.Context, clubID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM club_memberships
		WHERE club_id = $1 AND status = $2
	`, clubID, string(domain.StatusAccepted)).Scan(&count)
	return count, err
}

func (r *ClubRepository) ListApplicants(ctx context.Context, clubID uuid.UUID) ([]*domain.Membership, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT club_id, user_id, status, created_at, updated_at
		FROM club_memberships
		WHERE club_id = $1 AND status = $2
		ORDER BY created_at ASC
	`, clubID, string(domain.StatusPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Membership{}
	for rows.Next() {
		var m domain.Membership
		var status string
		if err := rows.Scan(&m.ClubID, &m.UserID, &status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.Status = domain.MembershipStatus(status)
		out = append(out, &m)
	}
	return out, rows.Err()
}

// Join inserts a pending application. The club row is locked first and
// the accepted count is compared against max_people under that lock, so
// N concurrent applications against a club one seat short of full admit
// exactly as many as fit.
func (r *ClubRepository) Join(ctx context.Context, clubID, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var maxPeople int
	err = tx.QueryRow(ctx, `
		SELECT max_people FROM clubs
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, clubID).Scan(&maxPeople)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound("club not found")
	}
	if err != nil {
		return err
	}

	var existing string
	err = tx.QueryRow(ctx, `
		SELECT status FROM club_memberships
		WHERE club_id = $1 AND user_id = $2
	`, clubID, userID).Scan(&existing)
	if err == nil {
		if existing == string(domain.StatusAccepted) {
			return domain.ErrConflict("already a member of this club")
		}
		return domain.ErrConflict("already applied to this club")
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var accepted int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM club_memberships
		WHERE club_id = $1 AND status = $2
	`, clubID, string(domain.StatusAccepted)).Scan(&accepted)
	if err != nil {
		return err
	}
	if accepted == maxPeople {
		return domain.ErrCapacityFull("club is full")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO club_memberships (club_id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, clubID, userID, string(domain.StatusPending))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict("already applied to this club")
		}
		return err
	}

	if err := enqueueOutbox(ctx, tx, "membership.applied", map[string]any{
		"club_id": clubID,
		"user_id": userID,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ClubRepository) Leave(ctx context.Context, clubID, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		DELETE FROM club_memberships
		WHERE club_id = $1 AND user_id = $2 AND status = $3
	`, clubID, userID, string(domain.StatusAccepted))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict("not a member of this club")
	}

	if err := enqueueOutbox(ctx, tx, "membership.left", map[string]any{
		"club_id": clubID,
		"user_id": userID,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Approve flips pending to accepted, re-checking capacity under the
// club row lock: the club may have filled between application and
// approval.
func (r *ClubRepository) Approve(ctx context.Context, clubID, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var maxPeople int
	err = tx.QueryRow(ctx, `
		SELECT max_people FROM clubs
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, clubID).Scan(&maxPeople)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound("club not found")
	}
	if err != nil {
		return err
	}

	var status string
	err = tx.QueryRow(ctx, `
		SELECT status FROM club_memberships
		WHERE club_id = $1 AND user_id = $2
		FOR UPDATE
	`, clubID, userID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && status != string(domain.StatusPending)) {
		return domain.ErrNotFound("no pending application for this user")
	}
	if err != nil {
		return err
	}

	var accepted int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM club_memberships
		WHERE club_id = $1 AND status = $2
	`, clubID, string(domain.StatusAccepted)).Scan(&accepted)
	if err != nil {
		return err
	}
	if accepted == maxPeople {
		return domain.ErrCapacityFull("club is full")
	}

	_, err = tx.Exec(ctx, `
		UPDATE club_memberships SET status = $3, updated_at = NOW()
		WHERE club_id = $1 AND user_id = $2
	`, clubID, userID, string(domain.StatusAccepted))
	if err != nil {
		return err
	}

	if err := enqueueOutbox(ctx, tx, "membership.approved", map[string]any{
		"club_id": clubID,
		"user_id": userID,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Reject deletes the pending application row. A second reject finds no
// row and reports not_found.
func (r *ClubRepository) Reject(ctx context.Context, clubID, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		DELETE FROM club_memberships
		WHERE club_id = $1 AND user_id = $2 AND status = $3
	`, clubID, userID, string(domain.StatusPending))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("no pending application for this user")
	}

	if err := enqueueOutbox(ctx, tx, "membership.rejected", map[string]any{
		"club_id": clubID,
		"user_id": userID,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetClub satisfies the event application's MembershipReader.
func (r *ClubRepository) GetClub(ctx context.Context, clubID uuid.UUID) (*domain.Club, error) {
	return r.GetByID(ctx, clubID)
}

func (r *ClubRepository) IsAcceptedMember(ctx context.Context, clubID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM club_memberships
			WHERE club_id = $1 AND user_id = $2 AND status = $3
		)
	`, clubID, userID, string(domain.StatusAccepted)).Scan(&ok)
	return ok, err
}

func (r *ClubRepository) AcceptedClubIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT club_id FROM club_memberships
		WHERE user_id = $1 AND status = $2
	`, userID, string(domain.StatusAccepted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// DeletedStatus reports, per club, whether it is soft-deleted. IDs with
// no club row at all map to false so the caller falls through to the
// membership check (and denies).
func (r *ClubRepository) DeletedStatus(ctx context.Context, clubIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	if len(clubIDs) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, deleted_at FROM clubs WHERE id = ANY($1)
	`, clubIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var deletedAt *time.Time
		if err := rows.Scan(&id, &deletedAt); err != nil {
			return nil, err
		}
		out[id] = deletedAt != nil
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range clubIDs {
		if _, ok := out[id]; !ok {
			out[id] = false
		}
	}
	return out, nil
}
