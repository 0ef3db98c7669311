package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrDuplicateReport  = errors.New("duplicate report")
)

const reportNaturalKeyConstraint = "uq_reports_natural_key"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// translateError maps constraint violations to the package sentinels so
// callers never inspect driver errors.
func translateError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == reportNaturalKeyConstraint {
				return ErrDuplicateReport
			}
			return fmt.Errorf("%s: %w (%s)", op, ErrConflict, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%s: %w (%s)", op, ErrInvalidReference, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 200
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
