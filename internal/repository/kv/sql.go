package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain/repository"
)

// Dialects supported by the SQL store.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// SQL - key-value table on PostgreSQL (pgx) or SQLite.
// expires_at holds unix milliseconds; NULL never expires.
type SQL struct {
	db      *sqlx.DB
	dialect string
	logger  *zap.Logger
	now     func() time.Time
}

var _ repository.KVStore = (*SQL)(nil)

type kvRow struct {
	Key   string `db:"key"`
	Value []byte `db:"value"`
}

// NewPostgres connects with dsn and ensures the table exists.
func NewPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*SQL, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	logger.Info("PostgreSQL connected")
	return NewSQL(ctx, db, DialectPostgres, logger)
}

// NewSQLite opens the database file at path in WAL mode and ensures the table exists.
func NewSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQL, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	logger.Info("SQLite opened", zap.String("path", path))
	return NewSQL(ctx, db, DialectSQLite, logger)
}

// NewSQL wraps an open database and migrates the kv table.
func NewSQL(ctx context.Context, db *sqlx.DB, dialect string, logger *zap.Logger) (*SQL, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SQL{db: db, dialect: dialect, logger: logger, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQL) migrate(ctx context.Context) error {
	blob := "BLOB"
	if s.dialect == DialectPostgres {
		blob = "BYTEA"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv_entries (
			key        TEXT PRIMARY KEY,
			value      ` + blob + ` NOT NULL,
			expires_at BIGINT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_kv_entries_expires_at ON kv_entries (expires_at)`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate kv_entries: %w", err)
		}
	}
	return nil
}

func (s *SQL) nowMillis() int64 {
	return s.now().UnixMilli()
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := s.db.Rebind(`
		SELECT value FROM kv_entries
		WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)
	`)

	var val []byte
	err := s.db.GetContext(ctx, &val, query, key, s.nowMillis())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return val, true, nil
}

func (s *SQL) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	var (
		query string
		args  []interface{}
		err   error
	)
	if s.dialect == DialectPostgres {
		query = `
			SELECT key, value FROM kv_entries
			WHERE key = ANY($1) AND (expires_at IS NULL OR expires_at > $2)
		`
		args = []interface{}{pq.Array(keys), s.nowMillis()}
	} else {
		query, args, err = sqlx.In(`
			SELECT key, value FROM kv_entries
			WHERE key IN (?) AND (expires_at IS NULL OR expires_at > ?)
		`, keys, s.nowMillis())
		if err != nil {
			return nil, fmt.Errorf("build kv query: %w", err)
		}
		query = s.db.Rebind(query)
	}

	var rows []kvRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("kv get many: %w", err)
	}
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt sql.NullInt64
	if ttl > 0 {
		expiresAt = sql.NullInt64{Int64: s.now().Add(ttl).UnixMilli(), Valid: true}
	}

	query := s.db.Rebind(`
		INSERT INTO kv_entries (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`)
	if _, err := s.db.ExecContext(ctx, query, key, value, expiresAt); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM kv_entries WHERE key IN (?)`, keys)
	if err != nil {
		return fmt.Errorf("build kv delete: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (s *SQL) PurgeExpired(ctx context.Context) (int64, error) {
	query := s.db.Rebind(`DELETE FROM kv_entries WHERE expires_at IS NOT NULL AND expires_at <= ?`)
	res, err := s.db.ExecContext(ctx, query, s.nowMillis())
	if err != nil {
		return 0, fmt.Errorf("kv purge: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQL) Close() error {
	s.logger.Info("Closing SQL store", zap.String("dialect", s.dialect))
	return s.db.Close()
}

func (s *SQL) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
