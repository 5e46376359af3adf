package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bkovalev/go-sync-keeper/internal/config"
	"github.com/bkovalev/go-sync-keeper/internal/logger"
)

const createKVTable = `CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL
);`

type sqliteKeyValueStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewSQLiteKeyValueStore opens (and bootstraps, if needed) the local SQLite
// database backing the engine's durable records.
func NewSQLiteKeyValueStore(cfg config.ClientStorage, log *logger.Logger) (KeyValueStore, error) {
	db, err := sql.Open("sqlite3", cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	if _, err = db.Exec(createKVTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap kv table: %w", err)
	}

	return &sqliteKeyValueStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
	}, nil
}

func (s *sqliteKeyValueStore) Save(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("key", key).
			Msg("failed to execute upsert for durable record")
		return fmt.Errorf("%w: save %q: %v", ErrExecutingStatement, key, err)
	}

	return nil
}

func (s *sqliteKeyValueStore) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.builder.
		Select("value").
		From("kv").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var value []byte
	row := s.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("%w: load %q: %v", ErrScanningRow, key, err)
	}

	return value, nil
}

func (s *sqliteKeyValueStore) Delete(ctx context.Context, key string) error {
	query, args, err := s.builder.
		Delete("kv").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: delete %q: %v", ErrExecutingStatement, key, err)
	}

	return nil
}

func (s *sqliteKeyValueStore) Close() error {
	return s.db.Close()
}
