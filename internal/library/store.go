package library

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/treelab/internal/editor"
	"github.com/roach88/treelab/internal/markup"
	"github.com/roach88/treelab/internal/tree"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema
// 1 - Added index on components.fingerprint
const currentSchemaVersion = 1

// ErrNotFound is returned when a component id is unknown.
var ErrNotFound = errors.New("component not found")

// Component is a named saved tree.
type Component struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Tree        tree.Forest `json:"tree"`
	Fingerprint string      `json:"fingerprint"`
	Seq         int64       `json:"seq"`
}

// Store provides durable storage for saved components.
type Store struct {
	db     *sql.DB
	ids    editor.IDGenerator
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default "cmp-<uuidv7>" id generator.
func WithIDGenerator(gen editor.IDGenerator) Option {
	return func(s *Store) { s.ids = gen }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &Store{
		db:     db,
		ids:    editor.UUIDGenerator{Prefix: "cmp"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_components_fingerprint
		ON components(fingerprint)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// Save stores forest under name and returns the new component.
// The name is trimmed and must not be empty; the forest must have at least
// one root. The stored tree is a normalized copy.
func (s *Store) Save(ctx context.Context, name string, forest tree.Forest) (Component, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Component{}, fmt.Errorf("save component: name is required")
	}
	if len(forest) == 0 {
		return Component{}, fmt.Errorf("save component: tree is empty")
	}

	f := tree.Normalize(forest)
	c := Component{
		ID:          s.ids.Generate(),
		Name:        name,
		Tree:        f,
		Fingerprint: tree.Fingerprint(f),
	}

	treeJSON, err := encodeTree(f)
	if err != nil {
		return Component{}, fmt.Errorf("save component: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Component{}, fmt.Errorf("save component: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM components`).Scan(&c.Seq); err != nil {
		return Component{}, fmt.Errorf("save component: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO components (id, name, tree, fingerprint, seq)
		VALUES (?, ?, ?, ?, ?)
	`,
		c.ID,
		c.Name,
		treeJSON,
		c.Fingerprint,
		c.Seq,
	)
	if err != nil {
		return Component{}, fmt.Errorf("save component: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Component{}, fmt.Errorf("save component: commit: %w", err)
	}

	s.logger.Debug("component saved", "id", c.ID, "name", c.Name, "seq", c.Seq, "fingerprint", c.Fingerprint)
	return c, nil
}

// Get returns the component with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Component, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, tree, fingerprint, seq
		FROM components
		WHERE id = ?
	`, id)
	c, err := scanComponent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Component{}, fmt.Errorf("get component %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Component{}, fmt.Errorf("get component %q: %w", id, err)
	}
	return c, nil
}

// List returns every component, newest first.
func (s *Store) List(ctx context.Context) ([]Component, error) {
	return s.query(ctx, "list components", `
		SELECT id, name, tree, fingerprint, seq
		FROM components
		ORDER BY seq DESC
	`)
}

// FindByFingerprint returns components whose tree has the given
// fingerprint, newest first.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) ([]Component, error) {
	return s.query(ctx, "find components", `
		SELECT id, name, tree, fingerprint, seq
		FROM components
		WHERE fingerprint = ?
		ORDER BY seq DESC
	`, fingerprint)
}

// Delete removes the component with id. Deleting a missing id is not an
// error; the returned bool reports whether a row was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM components WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete component %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete component %q: %w", id, err)
	}
	s.logger.Debug("component deleted", "id", id, "removed", n > 0)
	return n > 0, nil
}

// Resolve snapshots the library into a resolver for markup.RenderLayout.
// Later writes are not visible through the returned function.
func (s *Store) Resolve(ctx context.Context) (markup.ComponentResolver, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]tree.Forest, len(all))
	for _, c := range all {
		byID[c.ID] = c.Tree
	}
	return func(id string) (tree.Forest, bool) {
		f, ok := byID[id]
		return f, ok
	}, nil
}

func (s *Store) query(ctx context.Context, op, query string, args ...any) ([]Component, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []Component{}
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// encodeTree writes the stored tree column. Strings are kept byte for byte;
// the canonical form NFC-normalizes them and only feeds the fingerprint.
func encodeTree(f tree.Forest) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return "", fmt.Errorf("encode tree: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComponent(row scanner) (Component, error) {
	var (
		c        Component
		treeJSON string
	)
	if err := row.Scan(&c.ID, &c.Name, &treeJSON, &c.Fingerprint, &c.Seq); err != nil {
		return Component{}, err
	}
	if err := json.Unmarshal([]byte(treeJSON), &c.Tree); err != nil {
		return Component{}, fmt.Errorf("decode tree of %q: %w", c.ID, err)
	}
	c.Tree = tree.Normalize(c.Tree)
	return c, nil
}
