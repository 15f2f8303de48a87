package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minyoungbaek/eventory/internal/application/event"
	"github.com/minyoungbaek/eventory/internal/domain"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const selectEventSQL = `
SELECT e.id, e.host_id, e.club_id, e.title, e.description, e.category_id,
       COALESCE(array_agg(ec.city_id) FILTER (WHERE ec.city_id IS NOT NULL), '{}'),
       e.start_time, e.end_time, e.max_people, e.created_at, e.updated_at
FROM events e
LEFT JOIN event_cities ec ON ec.event_id = e.id
`

const groupEventSQL = `
GROUP BY e.id, e.host_id, e.club_id, e.title, e.description, e.category_id,
         e.start_time, e.end_time, e.max_people, e.created_at, e.updated_at
`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID, &e.HostID, &e.ClubID, &e.Title, &e.Description, &e.CategoryID,
		&e.CityIDs, &e.StartTime, &e.EndTime, &e.MaxPeople, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts the event, its city tags, and the host's participation
// row in one transaction: the host is the first participant from the
// moment the event exists.
func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO events (id, host_id, club_id, title, description, category_id,
		                    start_time, end_time, max_people, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, e.ID, e.HostID, e.ClubID, e.Title, e.Description, e.CategoryID,
		e.StartTime, e.EndTime, e.MaxPeople, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertEventCities(ctx, tx, e.ID, e.CityIDs); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO event_participants (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`, e.ID, e.HostID, e.CreatedAt)
	if err != nil {
		return err
	}

	if err := enqueueOutbox(ctx, tx, "event.created", map[string]any{
		"event_id": e.ID,
		"host_id":  e.HostID,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertEventCities(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, cityIDs []int64) error {
	for _, cityID := range cityIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO event_cities (event_id, city_id) VALUES ($1, $2)
		`, eventID, cityID); err != nil {
			return err
		}
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, selectEventSQL+`WHERE e.id = $1 `+groupEventSQL, id)
	return scanEvent(row)
}

// Update rewrites the mutable columns and replaces the city tag set.
func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		UPDATE events
		SET title = $2, description = $3, category_id = $4,
		    start_time = $5, end_time = $6, max_people = $7, updated_at = $8
		WHERE id = $1
	`, e.ID, e.Title, e.Description, e.CategoryID, e.StartTime, e.EndTime, e.MaxPeople, e.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM event_cities WHERE event_id = $1`, e.ID); err != nil {
		return err
	}
	if err := insertEventCities(ctx, tx, e.ID, e.CityIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes the event together with its participations and city
// tags. Only pre-start events are deletable, so no reviews can exist.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM event_participants WHERE event_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM event_cities WHERE event_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("event not found")
	}

	if err := enqueueOutbox(ctx, tx, "event.deleted", map[string]any{
		"event_id": id,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *EventRepository) List(ctx context.Context, f event.ListFilter) ([]*domain.Event, int, error) {
	where := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.HostID != nil {
		where = append(where, "e.host_id = "+arg(*f.HostID))
	}
	if f.CategoryID != nil {
		where = append(where, "e.category_id = "+arg(*f.CategoryID))
	}
	if f.CityID != nil {
		where = append(where, "e.id IN (SELECT event_id FROM event_cities WHERE city_id = "+arg(*f.CityID)+")")
	}

	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ") + " "
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM events e `+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.PageSize
	query := selectEventSQL + cond + groupEventSQL +
		" ORDER BY e.start_time ASC, e.id ASC" +
		" LIMIT " + arg(f.PageSize) + " OFFSET " + arg(offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *EventRepository) ListJoined(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	rows, err := r.pool.Query(ctx, selectEventSQL+`
		WHERE e.id IN (SELECT event_id FROM event_participants WHERE user_id = $1)
	`+groupEventSQL+` ORDER BY e.start_time ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]*domain.Event, error) {
	out := []*domain.Event{}
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID, &e.HostID, &e.ClubID, &e.Title, &e.Description, &e.CategoryID,
			&e.CityIDs, &e.StartTime, &e.EndTime, &e.MaxPeople, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *EventRepository) ParticipantCount(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_participants WHERE event_id = $1
	`, eventID).Scan(&count)
	return count, err
}

func (r *EventRepository) IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2
		)
	`, eventID, userID).Scan(&ok)
	return ok, err
}

// Join inserts a participation row under the event row lock. The
// participant count is compared against max_people inside the same
// transaction, so simultaneous joins for the last seat admit exactly
// one.
func (r *EventRepository) Join(ctx context.Context, eventID, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var maxPeople int
	err = tx.QueryRow(ctx, `
		SELECT max_people FROM events WHERE id = $1 FOR UPDATE
	`, eventID).Scan(&maxPeople)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound("event not found")
	}
	if err != nil {
		return err
	}

	var count int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_participants WHERE event_id = $1
	`, eventID).Scan(&count)
	if err != nil {
		return err
	}
	if count == maxPeople {
		return domain.ErrCapacityFull("event is full")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO event_participants (event_id, user_id, created_at)
		VALUES ($1, $2, NOW())
	`, eventID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict("already joined this event")
		}
		return err
	}

	if err := enqueueOutbox(ctx, tx, "join.created", map[string]any{
		"event_id": eventID,
		"user_id":  userID,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *EventRepository) Leave(ctx context.Context, eventID, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict("not joined this event")
	}

	if err := enqueueOutbox(ctx, tx, "join.canceled", map[string]any{
		"event_id": eventID,
		"user_id":  userID,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByIDs satisfies the review application's EventReader. It does not
// filter on club deletion: retained events of deleted clubs are exactly
// what the visibility fallback needs to see.
func (r *EventRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return []*domain.Event{}, nil
	}
	rows, err := r.pool.Query(ctx, selectEventSQL+`WHERE e.id = ANY($1) `+groupEventSQL, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) ListJoinedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT event_id FROM event_participants WHERE user_id = $1
	`, userID)
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
