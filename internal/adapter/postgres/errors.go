package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

// SQLSTATE codes the repositories care about.
const (
	codeUniqueViolation  = "23505"
	codeNotNullViolation = "23502"
	codeCheckViolation   = "23514"
	classDataException   = "22"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
// An id of 0 means the row has no identity yet (inserts).
func MapError(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}

	prefix := entity
	if id != 0 {
		prefix = fmt.Sprintf("%s %d", entity, id)
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", prefix, err)
	}

	if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
		return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return withDetail(prefix, domain.ErrAlreadyExists, constraintDetail(pgErr))
		case pgErr.Code == codeNotNullViolation:
			return withDetail(prefix, domain.ErrValidation, "column "+pgErr.ColumnName+" must not be null")
		case pgErr.Code == codeCheckViolation:
			return withDetail(prefix, domain.ErrValidation, constraintDetail(pgErr))
		case strings.HasPrefix(pgErr.Code, classDataException):
			return withDetail(prefix, domain.ErrValidation, pgErr.Message)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s: %w", prefix, err)
}

func constraintDetail(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return "constraint " + pgErr.ConstraintName
	}
	return pgErr.Message
}

func withDetail(prefix string, sentinel error, detail string) error {
	if detail == "" {
		return fmt.Errorf("%s: %w", prefix, sentinel)
	}
	return fmt.Errorf("%s: %w: %s", prefix, sentinel, detail)
}
