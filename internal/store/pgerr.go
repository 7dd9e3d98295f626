package store

import (
	"errors"
	"fmt"

	"bookreview/internal/usecase"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapPgError translates Postgres constraint violations into the usecase
// sentinels so handlers can answer 409 instead of a generic 500.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, usecase.ErrAlreadyExists)
	}
	return err
}
