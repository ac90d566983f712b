// Package pgerr maps PostgreSQL driver failures onto the service's error taxonomy.
package pgerr

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes after which the whole operation can be retried as is.
const (
	lockNotAvailable     = "55P03"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	queryCanceled        = "57014"
	connectionException  = "08"
)

// Classify wraps err with the failed operation's name. Lock timeouts, deadlocks,
// serialization conflicts and lost connections become errs.TransientStoreFailureError.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}

	if IsTransient(err) {
		return errs.NewTransientStoreFailureError(operation, err)
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	if errors.Is(err, errs.ErrTransientStoreFailure) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case lockNotAvailable, serializationFailure, deadlockDetected, queryCanceled:
			return true
		}
		return strings.HasPrefix(pgErr.Code, connectionException)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	return pgconn.Timeout(err) || errors.Is(err, driver.ErrBadConn)
}
