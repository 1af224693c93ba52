// Package pgerr maps PostgreSQL driver failures onto the errs taxonomy.
package pgerr

import (
	"context"
	"errors"
	"strings"

	"cargo/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation    = "23505"
	codeQueryCanceled      = "57014"
	codeTooManyConnections = "53300"
	codeCannotConnectNow   = "57P03"
	classConnection        = "08"
)

// Classify wraps timeouts and lost connections in an UnavailableError and
// returns every other error unchanged.
func Classify(operation string, err error) error {
	if err == nil || errors.Is(err, errs.ErrUnavailable) {
		return err
	}
	if IsUnavailable(err) {
		return errs.NewUnavailableError(operation, err)
	}
	return err
}

// IsUnavailable reports whether err means the store could not answer in time.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errs.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeQueryCanceled,
			pgErr.Code == codeTooManyConnections,
			pgErr.Code == codeCannotConnectNow,
			strings.HasPrefix(pgErr.Code, classConnection):
			return true
		}
	}

	return false
}

// IsUniqueViolation reports whether err is a unique index violation, optionally
// restricted to one constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
