package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// SQLiteStore implements storage using SQLite (the default local store)
type SQLiteStore struct {
	*sqlStore
}

// NewSQLiteStore creates a new SQLite storage
func NewSQLiteStore(path string, logger *logrus.Logger) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")
	db.Exec("PRAGMA journal_mode = WAL")

	store := &SQLiteStore{&sqlStore{db: db, logger: logger}}
	if err := store.initSchema(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		repo_path TEXT NOT NULL,
		branch TEXT NOT NULL DEFAULT '',
		branch_kind TEXT NOT NULL,
		since_bound TEXT NOT NULL,
		until_bound TEXT NOT NULL,
		include_merges BOOLEAN NOT NULL,
		max_commit_diff INTEGER NOT NULL,
		first_commit_add INTEGER NOT NULL,
		total_hours REAL NOT NULL,
		total_commits INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS report_entries (
		report_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		author_name TEXT NOT NULL,
		email TEXT NOT NULL,
		duration INTEGER NOT NULL,
		commit_count INTEGER NOT NULL,
		PRIMARY KEY (report_id, position),
		FOREIGN KEY (report_id) REFERENCES reports(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
`
