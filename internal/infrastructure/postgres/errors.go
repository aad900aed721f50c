package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/securetask/internal/domain/repository"
)

const (
	uniqueViolation      = "23505"
	invalidTextRepresent = "22P02"
	foreignKeyViolation  = "23503"
)

// mapErr translates driver errors into repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return repository.ErrDuplicate
		case invalidTextRepresent:
			// malformed uuid in a lookup
			return repository.ErrNotFound
		case foreignKeyViolation:
			return repository.ErrNotFound
		}
	}
	return err
}
