package db

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation.
// When a constraint name is given, only violations of that constraint match.
// Errors from the sqlite driver used in tests carry no structured code, so
// those are matched by message.
func IsUniqueViolation(err error, constraint ...string) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return len(constraint) == 0 || pqErr.Constraint == constraint[0]
	}

	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") &&
		!strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return len(constraint) == 0 || strings.Contains(msg, constraint[0])
}
