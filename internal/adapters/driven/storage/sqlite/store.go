package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driven"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "topics.db"

// Ensure Store implements the interface.
var _ driven.TopicStore = (*Store)(nil)

// Store is a SQLite-backed topic store.
type Store struct {
	db     *sql.DB
	path   string
	closed atomic.Bool
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.kawnhub/data/topics.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".kawnhub", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// List returns all topics in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Topic, error) {
	if s.closed.Load() {
		return nil, domain.ErrStoreClosed
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, material_slug, content, created_at, updated_at
		FROM topics ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	topics := []domain.Topic{}
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, *topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topics: %w", err)
	}

	return topics, nil
}

// Get retrieves a topic by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Topic, error) {
	if s.closed.Load() {
		return nil, domain.ErrStoreClosed
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, material_slug, content, created_at, updated_at
		FROM topics WHERE id = ?
	`, id)

	topic, err := scanTopic(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return topic, err
}

// Save stores or replaces a topic. A new topic is appended after the
// last position; a replaced topic keeps its position.
func (s *Store) Save(ctx context.Context, topic *domain.Topic) error {
	if topic == nil || topic.ID == "" {
		return domain.ErrInvalidInput
	}
	if s.closed.Load() {
		return domain.ErrStoreClosed
	}

	contentJSON, err := json.Marshal(topic.Content)
	if err != nil {
		return fmt.Errorf("marshalling content: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO topics (id, position, title, material_slug, content, created_at, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM topics), ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			material_slug = excluded.material_slug,
			content = excluded.content,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, topic.ID, topic.Title, topic.MaterialSlug, string(contentJSON),
		nullTime(topic.CreatedAt), nullTime(topic.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving topic: %w", err)
	}
	return nil
}

// Create inserts a new topic after the last position.
// Returns domain.ErrAlreadyExists if the ID is taken.
func (s *Store) Create(ctx context.Context, topic *domain.Topic) error {
	if topic == nil || topic.ID == "" {
		return domain.ErrInvalidInput
	}
	if s.closed.Load() {
		return domain.ErrStoreClosed
	}

	contentJSON, err := json.Marshal(topic.Content)
	if err != nil {
		return fmt.Errorf("marshalling content: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO topics (id, position, title, material_slug, content, created_at, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM topics), ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, topic.ID, topic.Title, topic.MaterialSlug, string(contentJSON),
		nullTime(topic.CreatedAt), nullTime(topic.UpdatedAt))
	if err != nil {
		return fmt.Errorf("creating topic: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("creating topic: %w", err)
	}
	if n == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

// Delete removes a topic.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s.closed.Load() {
		return domain.ErrStoreClosed
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM topics WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting topic: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting topic: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_topics.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTopic(row rowScanner) (*domain.Topic, error) {
	var topic domain.Topic
	var contentJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&topic.ID, &topic.Title, &topic.MaterialSlug, &contentJSON,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning topic: %w", err)
	}

	if err := json.Unmarshal([]byte(contentJSON), &topic.Content); err != nil {
		return nil, fmt.Errorf("unmarshaling content of %s: %w", topic.ID, err)
	}

	if createdAt.Valid {
		topic.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		topic.UpdatedAt = updatedAt.Time
	}
	return &topic, nil
}

// nullTime converts a zero time to SQL NULL.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}
