package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/keepsake/schemas"
)

// MySQLStore keeps values in the kv_entries table.
type MySQLStore struct {
	db *sqlx.DB
}

// NewMySQLStore creates a new MySQLStore.
func NewMySQLStore(db *sqlx.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// Migrate applies every embedded migration. Each one must be idempotent.
func (s *MySQLStore) Migrate(ctx context.Context) error {
	entries, err := fs.ReadDir(schemas.Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("fs.ReadDir(migrations) > %w", err)
	}
	for _, entry := range entries {
		name := path.Join("migrations", entry.Name())
		statement, err := fs.ReadFile(schemas.Migrations, name)
		if err != nil {
			return fmt.Errorf("fs.ReadFile(%s) > %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, string(statement)); err != nil {
			return fmt.Errorf("db.ExecContext(%s) > %w", entry.Name(), err)
		}
	}
	return nil
}

func (s *MySQLStore) Load(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT entry_value FROM kv_entries WHERE entry_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("db.GetContext(kv_entries) > %w", err)
	}
	return value, true, nil
}

func (s *MySQLStore) Save(ctx context.Context, key string, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)`,
		key, value); err != nil {
		return fmt.Errorf("db.ExecContext(upsert kv_entries) > %w", err)
	}
	return nil
}

func (s *MySQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE entry_key = ?", key); err != nil {
		return fmt.Errorf("db.ExecContext(delete kv_entries) > %w", err)
	}
	return nil
}

func (s *MySQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys,
		`SELECT entry_key FROM kv_entries WHERE entry_key LIKE ? ESCAPE '\\' ORDER BY entry_key`,
		escapeLike(prefix)+"%"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(kv_entries keys) > %w", err)
	}
	return keys, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
