// Package dberr translates driver errors from PostgreSQL (pgx) and embedded SQLite
// into the typed errors of printflow/internal/pkg/errs.
//
// Repositories call Translate once at the adapter boundary; nothing above the
// adapters inspects driver errors.
package dberr

import (
	"errors"
	"strings"

	"printflow/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes handled by Translate.
const (
	uniqueViolation      = "23505"
	foreignKeyViolation  = "23503"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// Translate maps err to a typed error for the record identified by kind and id.
//
// Mapping:
//   - gorm.ErrRecordNotFound, foreign key violations -> ObjectNotFoundError
//   - unique violations -> DuplicateKeyError naming the violated column
//   - serialization failures, deadlocks, busy SQLite files -> ConcurrentModificationError
//
// Any other error is returned unchanged. Translate(nil, ...) is nil.
func Translate(err error, kind string, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(kind, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return errs.NewDuplicateKeyErrorWithCause(columnFromConstraint(pgErr.TableName, pgErr.ConstraintName), id, err)
		case foreignKeyViolation:
			return errs.NewObjectNotFoundErrorWithCause(kind, id, err)
		case serializationFailure, deadlockDetected:
			return errs.NewConcurrentModificationErrorWithCause(kind, id, err)
		}
		return err
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewDuplicateKeyErrorWithCause(kind, id, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed:"):
		return errs.NewDuplicateKeyErrorWithCause(columnFromSQLiteMessage(msg), id, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return errs.NewObjectNotFoundErrorWithCause(kind, id, err)
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "SQLITE_BUSY"):
		return errs.NewConcurrentModificationErrorWithCause(kind, id, err)
	}
	return err
}

// columnFromConstraint turns gorm index names such as "idx_orders_order_number"
// into "order_number".
func columnFromConstraint(table, constraint string) string {
	if constraint == "" {
		return table
	}
	if table != "" {
		prefix := "idx_" + table + "_"
		if strings.HasPrefix(constraint, prefix) {
			return strings.TrimPrefix(constraint, prefix)
		}
	}
	return constraint
}

// columnFromSQLiteMessage extracts the column list from
// "UNIQUE constraint failed: parts.part_code (2067)".
func columnFromSQLiteMessage(msg string) string {
	_, detail, _ := strings.Cut(msg, "UNIQUE constraint failed:")
	detail = strings.TrimSpace(detail)
	if idx := strings.Index(detail, " ("); idx >= 0 {
		detail = detail[:idx]
	}
	columns := strings.Split(detail, ",")
	for i, col := range columns {
		col = strings.TrimSpace(col)
		if _, name, ok := strings.Cut(col, "."); ok {
			col = name
		}
		columns[i] = col
	}
	return strings.Join(columns, ",")
}
