// Package database provides generic, parameterized data-access primitives
// over a pooled PostgreSQL connection.
//
// Table and column identifiers are interpolated into SQL text, so they are
// typed constants declared in this package and never derived from request
// input. All values are bound as $n parameters.
package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Table identifies a relation the DAL may touch.
type Table string

// Column identifies a column the DAL may filter on.
type Column string

// Operator-controlled identifier set. Request input never reaches these.
const (
	TableUsers Table = "users"

	ColumnID    Column = "id"
	ColumnEmail Column = "email"
)

// ErrInvalidArgument is returned when a primitive is called without a table,
// column, value or data set.
var ErrInvalidArgument = errors.New("table, column and value are required")

// Querier is the subset of pgxpool.Pool the DAL needs. pgxmock satisfies it
// in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// Service exposes the generic CRUD primitives. Each call checks a connection
// out of the pool for exactly one statement; pgx returns it on every exit
// path once the row set is drained.
type Service struct {
	db     Querier
	logger *slog.Logger
}

// New creates a Service on top of an established pool.
func New(db Querier, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Connect opens a pgx connection pool and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Migrate applies the embedded schema.
func (s *Service) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to run database migration: %w", err)
	}
	return nil
}

// InsertOne inserts a single row and returns it. When data carries no "id"
// key, a random UUID is generated before the insert.
func (s *Service) InsertOne(ctx context.Context, table Table, data map[string]any) (map[string]any, error) {
	if table == "" || len(data) == 0 {
		return nil, ErrInvalidArgument
	}

	if _, ok := data[string(ColumnID)]; !ok {
		data[string(ColumnID)] = uuid.New().String()
	}

	// Sorted keys keep the statement deterministic.
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	placeholders := make([]string, len(keys))
	values := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		values[i] = data[k]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(keys, ", "), strings.Join(placeholders, ", "))

	rows, err := s.db.Query(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("error inserting record: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("error inserting record: %w", err)
	}
	return row, nil
}

// FindOne returns the first row where column = value, or nil when no row
// matches. Internal failures propagate.
func (s *Service) FindOne(ctx context.Context, table Table, column Column, value any) (map[string]any, error) {
	if table == "" || column == "" || value == nil || value == "" {
		return nil, ErrInvalidArgument
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 LIMIT 1", table, column)

	rows, err := s.db.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("error finding record: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding record: %w", err)
	}
	return row, nil
}

// DeleteOne deletes the row where column = value and returns it. Unlike
// FindOne this fails closed: any internal failure is logged and nil is
// returned instead of an error.
func (s *Service) DeleteOne(ctx context.Context, table Table, column Column, value any) map[string]any {
	if table == "" || column == "" || value == nil || value == "" {
		s.logger.Error("delete called with missing arguments", "op", "database.DeleteOne", "table", table, "column", column)
		return nil
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 RETURNING *", table, column)

	rows, err := s.db.Query(ctx, query, value)
	if err != nil {
		s.logger.Error("error deleting record", "op", "database.DeleteOne", "err", err)
		return nil
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error("error deleting record", "op", "database.DeleteOne", "err", err)
		}
		return nil
	}
	return row
}

// Exists reports whether any row has column = value. Fails closed: any
// internal failure reads as false.
func (s *Service) Exists(ctx context.Context, table Table, column Column, value any) bool {
	if table == "" || column == "" || value == nil || value == "" {
		s.logger.Error("exists called with missing arguments", "op", "database.Exists", "table", table, "column", column)
		return false
	}

	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1) AS exists", table, column)

	result := s.Query(ctx, query, value)
	if len(result) == 0 {
		return false
	}
	exists, _ := result[0]["exists"].(bool)
	return exists
}

// Query executes arbitrary parameterized SQL and returns the rows. Fails
// closed: any internal failure is logged and an empty slice is returned.
func (s *Service) Query(ctx context.Context, sql string, params ...any) []map[string]any {
	rows, err := s.db.Query(ctx, sql, params...)
	if err != nil {
		s.logger.Error("query failed", "op", "database.Query", "err", err)
		return []map[string]any{}
	}

	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		s.logger.Error("query failed", "op", "database.Query", "err", err)
		return []map[string]any{}
	}
	return result
}

// Health returns the pool status for the health endpoint.
func (s *Service) Health(ctx context.Context) map[string]string {
	status := map[string]string{"status": "up"}
	if err := s.db.Ping(ctx); err != nil {
		status["status"] = "down"
		status["error"] = err.Error()
	}
	return status
}
