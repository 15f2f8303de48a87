package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minyoungbaek/eventory/internal/application/review"
	"github.com/minyoungbaek/eventory/internal/domain"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const selectReviewSQL = `
SELECT id, user_id, event_id, score, title, description, created_at, updated_at
FROM reviews
`

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO reviews (id, user_id, event_id, score, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rv.ID, rv.UserID, rv.EventID, rv.Score, rv.Title, rv.Description, rv.CreatedAt, rv.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict("a review by this user already exists for this event")
	}
	if err != nil {
		return err
	}

	if err := enqueueOutbox(ctx, tx, "review.created", map[string]any{
		"review_id": rv.ID,
		"event_id":  rv.EventID,
		"user_id":   rv.UserID,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var rv domain.Review
	err := r.pool.QueryRow(ctx, selectReviewSQL+`WHERE id = $1`, id).Scan(
		&rv.ID, &rv.UserID, &rv.EventID, &rv.Score, &rv.Title, &rv.Description,
		&rv.CreatedAt, &rv.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("review not found")
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reviews
		SET score = $2, title = $3, description = $4, updated_at = $5
		WHERE id = $1
	`, rv.ID, rv.Score, rv.Title, rv.Description, rv.UpdatedAt)
	return err
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("review not found")
	}

	if err := enqueueOutbox(ctx, tx, "review.deleted", map[string]any{
		"review_id": id,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ReviewRepository) List(ctx context.Context, f review.ListFilter) ([]*domain.Review, error) {
	where := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.EventID != nil {
		where = append(where, "event_id = "+arg(*f.EventID))
	}
	if f.UserID != nil {
		where = append(where, "user_id = "+arg(*f.UserID))
	}

	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ") + " "
	}

	rows, err := r.pool.Query(ctx, selectReviewSQL+cond+"ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID, &rv.UserID, &rv.EventID, &rv.Score, &rv.Title, &rv.Description,
			&rv.CreatedAt, &rv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &rv)
	}
	return out, rows.Err()
}

func (r *ReviewRepository) Exists(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM reviews WHERE user_id = $1 AND event_id = $2
		)
	`, userID, eventID).Scan(&ok)
	return ok, err
}
