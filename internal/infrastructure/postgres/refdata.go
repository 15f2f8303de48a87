package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RefDataRepository answers category/city existence lookups. Both are
// seeded reference tables; the redis decorator in front of this type
// caches positive answers.
type RefDataRepository struct {
	pool *pgxpool.Pool
}

func NewRefDataRepository(pool *pgxpool.Pool) *RefDataRepository {
	return &RefDataRepository{pool: pool}
}

func (r *RefDataRepository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)
	`, id).Scan(&ok)
	return ok, err
}

// CitiesExist reports whether every id in the set exists. Duplicates in
// the input are counted once.
func (r *RefDataRepository) CitiesExist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	uniq := map[int64]bool{}
	for _, id := range ids {
		uniq[id] = true
	}

	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM cities WHERE id = ANY($1)
	`, ids).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == len(uniq), nil
}
