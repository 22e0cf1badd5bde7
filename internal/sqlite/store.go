// File path: internal/sqlite/store.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a pooled sqlx.DB connection to the SQLite database holding
// contacts, communication history, generated messages, and usage counters.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided path.
// The schema is migrated automatically on first use.
func Open(path string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		cfg.Path = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	// journal_mode must be set per connection and cannot change inside a
	// transaction, so all pragmas ride on the DSN rather than the migration.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BusyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("sqlite store not initialised")
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
                id TEXT PRIMARY KEY,
                user_id TEXT NOT NULL,
                name TEXT NOT NULL,
                email TEXT NOT NULL DEFAULT '',
                company TEXT NOT NULL DEFAULT '',
                title TEXT NOT NULL DEFAULT '',
                website TEXT NOT NULL DEFAULT '',
                linkedin_url TEXT NOT NULL DEFAULT '',
                notes TEXT NOT NULL DEFAULT '',
                funnel_stage TEXT NOT NULL DEFAULT 'cold',
                created_at TIMESTAMP NOT NULL
        );`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_user ON contacts(user_id, created_at);`,
	`CREATE TABLE IF NOT EXISTS communications (
                id TEXT PRIMARY KEY,
                contact_id TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
                user_id TEXT NOT NULL,
                channel TEXT NOT NULL DEFAULT '',
                direction TEXT NOT NULL DEFAULT 'outbound',
                content TEXT NOT NULL,
                sent_at TIMESTAMP NOT NULL
        );`,
	`CREATE INDEX IF NOT EXISTS idx_communications_contact ON communications(contact_id, sent_at);`,
	`CREATE TABLE IF NOT EXISTS generated_messages (
                id TEXT PRIMARY KEY,
                contact_id TEXT NOT NULL DEFAULT '',
                user_id TEXT NOT NULL,
                session_id TEXT NOT NULL,
                channel TEXT NOT NULL DEFAULT '',
                tone TEXT NOT NULL DEFAULT '',
                variant TEXT NOT NULL,
                content TEXT NOT NULL,
                match_reason TEXT NOT NULL DEFAULT '',
                product_pitched TEXT NOT NULL DEFAULT '',
                buyer_context TEXT NOT NULL DEFAULT '',
                seller_context TEXT NOT NULL DEFAULT '',
                created_at TIMESTAMP NOT NULL
        );`,
	`CREATE INDEX IF NOT EXISTS idx_generated_messages_user ON generated_messages(user_id, created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_generated_messages_session ON generated_messages(session_id);`,
	`CREATE TABLE IF NOT EXISTS usage_counters (
                user_id TEXT NOT NULL,
                period TEXT NOT NULL,
                tier TEXT NOT NULL DEFAULT 'free',
                messages_generated INTEGER NOT NULL DEFAULT 0,
                PRIMARY KEY (user_id, period)
        );`,
}
