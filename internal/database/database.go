package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"modernc.org/sqlite" // The pure Go SQLite driver
	sqlite3 "modernc.org/sqlite/lib"
)

// driverName is the name modernc.org/sqlite registers with database/sql.
const driverName = "sqlite"

// Service is the central struct for managing all database interactions.
// It holds the connection pool to the battery database and serialises
// write transactions, since SQLite allows a single writer at a time.
type Service struct {
	db  *sqlx.DB
	log logrus.FieldLogger

	writeMu sync.Mutex
}

// NewService opens the SQLite database at path and verifies the connection.
// Foreign keys are enabled through the DSN so that every pooled connection
// enforces battery.group_id.
func NewService(ctx context.Context, path string, log logrus.FieldLogger) (*Service, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	// Ping the database to ensure the connection is alive.
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to %s: %w", path, err)
	}

	return NewServiceFromDB(db, log), nil
}

// NewServiceFromDB wraps an already opened handle. Tests use it with sqlmock.
func NewServiceFromDB(db *sqlx.DB, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{db: db, log: log}
}

// DB returns the connection pool for reads.
func (s *Service) DB() *sqlx.DB {
	return s.db
}

// WriteToMainDB executes a write operation (INSERT, UPDATE, DELETE) within a
// transaction, protected by a mutex to ensure serial access.
func (s *Service) WriteToMainDB(ctx context.Context, writeFunc func(tx *sqlx.Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Execute the provided function. If it returns an error, rollback the transaction.
	if err := writeFunc(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// Ping checks that the database is still reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Stats reports connection pool statistics.
func (s *Service) Stats() sql.DBStats {
	return s.db.Stats()
}

// Close closes the connection pool when the application shuts down.
func (s *Service) Close() error {
	err := s.db.Close()
	s.log.Info("database connection closed")
	return err
}

// InitSchema creates the group and battery tables if they don't exist.
// This is idempotent and safe to run on every application start.
func (s *Service) InitSchema(ctx context.Context) error {
	return s.WriteToMainDB(ctx, func(tx *sqlx.Tx) error {
		// "group" is a keyword, so the table name is always quoted.
		_, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS "group" (
				id INTEGER PRIMARY KEY,
				name TEXT
			);`)
		if err != nil {
			return fmt.Errorf("creating group table: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS battery (
				id INTEGER PRIMARY KEY,
				name TEXT,
				latitude REAL,
				longitude REAL,
				setup_date TEXT,
				level INTEGER,
				capacity INTEGER,
				group_id INTEGER NULL,
				FOREIGN KEY (group_id) REFERENCES "group" (id)
			);`)
		if err != nil {
			return fmt.Errorf("creating battery table: %w", err)
		}

		return nil
	})
}

// IsConstraintViolation reports whether err is a SQLite constraint failure,
// such as a battery pointing at a group that does not exist.
func IsConstraintViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// Extended result codes keep the primary code in the low byte.
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
