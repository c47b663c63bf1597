package database

import (
	"database/sql"
	"errors"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrBlogNotFound  = errors.New("blog not found")
	ErrUsernameTaken = errors.New("username must be unique")
)

// Open opens (or creates) a local SQLite database file and creates the schema
// if needed. foreign_keys and busy_timeout are per-connection pragmas, so
// they go in the DSN where every pooled connection picks them up. The
// returned handle is non-nil even when the connection check fails, so the
// caller can keep serving and let individual queries error out.
func Open(path string) (*sql.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=on&_busy_timeout=5000"
	} else {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return db, err
	}

	// journal_mode is a database-level setting; it may not be supported in
	// some contexts (e.g., in-memory).
	_, _ = db.Exec(`PRAGMA journal_mode=WAL`)

	if err := createSchema(db); err != nil {
		return db, err
	}

	return db, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS blogs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL,
		likes INTEGER NOT NULL DEFAULT 0 CHECK(likes >= 0),
		user_id INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	`
	_, err := db.Exec(schema)
	return err
}
