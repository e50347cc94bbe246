package storage

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// PostgresStore implements storage using PostgreSQL (shared team store)
type PostgresStore struct {
	*sqlStore
}

// NewPostgresStore creates a new PostgreSQL storage
func NewPostgresStore(dsn string, logger *logrus.Logger) (*PostgresStore, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := &PostgresStore{&sqlStore{db: db, logger: logger}}
	if err := store.initSchema(postgresSchema); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		repo_path TEXT NOT NULL,
		branch TEXT NOT NULL DEFAULT '',
		branch_kind TEXT NOT NULL,
		since_bound TEXT NOT NULL,
		until_bound TEXT NOT NULL,
		include_merges BOOLEAN NOT NULL,
		max_commit_diff BIGINT NOT NULL,
		first_commit_add BIGINT NOT NULL,
		total_hours REAL NOT NULL,
		total_commits INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS report_entries (
		report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		author_name TEXT NOT NULL,
		email TEXT NOT NULL,
		duration BIGINT NOT NULL,
		commit_count INTEGER NOT NULL,
		PRIMARY KEY (report_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
`
