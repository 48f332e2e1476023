package database

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// uniqueViolationCode is the PostgreSQL error code for unique-constraint
// violations.
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether the error is a PostgreSQL
// unique-constraint violation. The ingestion engine treats these as
// benign races, not failures.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
