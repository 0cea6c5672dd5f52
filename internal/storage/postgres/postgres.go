package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/database"
	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
)

// DBTX is the subset of pgxpool.Pool used by Storage. pgxmock pools satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const (
	getQuery    = `SELECT value FROM storefront_kv WHERE key = $1`
	upsertQuery = `
		INSERT INTO storefront_kv (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	deleteQuery = `DELETE FROM storefront_kv WHERE key = $1`
)

// Storage implements storage.Storage on a single PostgreSQL key-value table.
type Storage struct {
	db DBTX
}

// NewStorage creates a PostgreSQL-backed storage.
func NewStorage(db DBTX) *Storage {
	return &Storage{db: db}
}

// Get retrieves the value stored under key.
func (s *Storage) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, end := database.TraceOp(ctx, database.SystemPostgreSQL, "Get", getQuery)
	defer func() { end(err) }()

	var value string
	if err := s.db.QueryRow(ctx, getQuery, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("storage key", key)
		}
		return nil, fmt.Errorf("select storefront_kv %s: %w", key, err)
	}

	return []byte(value), nil
}

// Set upserts value under key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, end := database.TraceOp(ctx, database.SystemPostgreSQL, "Set", upsertQuery)
	defer func() { end(err) }()

	if _, err := s.db.Exec(ctx, upsertQuery, key, string(value)); err != nil {
		return fmt.Errorf("upsert storefront_kv %s: %w", key, err)
	}

	return nil
}

// Delete removes key. Zero affected rows is not an error.
func (s *Storage) Delete(ctx context.Context, key string) (err error) {
	ctx, end := database.TraceOp(ctx, database.SystemPostgreSQL, "Delete", deleteQuery)
	defer func() { end(err) }()

	if _, err := s.db.Exec(ctx, deleteQuery, key); err != nil {
		return fmt.Errorf("delete storefront_kv %s: %w", key, err)
	}

	return nil
}

// Ping checks database connectivity.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
