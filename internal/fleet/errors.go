// Package fleet implements the group and battery services on top of the
// database package, plus the capacity aggregations.
package fleet

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/intermernet/battery-registry/internal/database"
)

var (
	// ErrNotFound is returned when no row has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrEmptyDataset is returned by aggregations with no rows to aggregate.
	ErrEmptyDataset = errors.New("no grouped batteries to aggregate")
)

// StoreError reports a write the store refused, such as a foreign key violation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// classify turns store errors into the package's error vocabulary.
// Constraint violations become *StoreError, missing rows ErrNotFound, and
// anything else is wrapped with op.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case database.IsConstraintViolation(err):
		return &StoreError{Op: op, Err: err}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
