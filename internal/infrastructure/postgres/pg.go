// Package postgres implements the persistence ports on pgx. All
// capacity-affecting writes lock the owning group row (club or event)
// with SELECT ... FOR UPDATE and re-run the count comparison inside the
// same transaction as the insert, so concurrent joins against a full
// group serialize instead of overshooting the cap.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
