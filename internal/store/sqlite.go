package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/studycards/internal/model"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLStore implements Store on SQLite or PostgreSQL.
type SQLStore struct {
	db     *sqlx.DB
	driver string
}

var _ Store = (*SQLStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return Open(DriverSQLite, dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
}

// Open connects to a database with the given driver and DSN and migrates it.
func Open(driver, dsn string) (*SQLStore, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported driver %q (use %s or %s)", driver, DriverSQLite, DriverPostgres)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if driver == DriverSQLite {
		// One connection: SQLite has a single writer, and it keeps
		// read-modify-write transactions in this process serialised.
		db.SetMaxOpenConns(1)
	}

	s := &SQLStore{db: db, driver: driver}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func newID() string {
	return ulid.Make().String()
}

func (s *SQLStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sets (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_sets_created ON sets(created_at DESC);

	CREATE TABLE IF NOT EXISTS cards (
		id          TEXT PRIMARY KEY,
		set_id      TEXT NOT NULL REFERENCES sets(id) ON DELETE CASCADE,
		term        TEXT NOT NULL,
		definition  TEXT NOT NULL,
		position    INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_cards_set ON cards(set_id, position);

	CREATE TABLE IF NOT EXISTS card_progress (
		card_id       TEXT PRIMARY KEY REFERENCES cards(id) ON DELETE CASCADE,
		ease_factor   DOUBLE PRECISION NOT NULL DEFAULT 2.5,
		interval_days INTEGER NOT NULL DEFAULT 0,
		repetitions   INTEGER NOT NULL DEFAULT 0,
		lapses        INTEGER NOT NULL DEFAULT 0,
		last_reviewed TEXT,
		next_review   TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_progress_next_review ON card_progress(next_review);
	`
	_, err := s.db.Exec(schema)
	return err
}

type setRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   sql.NullString `db:"updated_at"`
	CardCount   int            `db:"card_count"`
}

func (r setRow) set() model.Set {
	return model.Set{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description.String,
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseNullTime(r.UpdatedAt),
	}
}

func (s *SQLStore) CreateSet(ctx context.Context, p SetParams) (*model.Set, error) {
	now := formatTime(time.Now())
	id := newID()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO sets (id, title, description, created_at) VALUES (?, ?, ?, ?)`),
		id, p.Title, nullString(p.Description), now)
	if err != nil {
		return nil, fmt.Errorf("insert set: %w", err)
	}

	if err := s.insertCards(ctx, tx, id, p.Cards); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetSet(ctx, id)
}

func (s *SQLStore) insertCards(ctx context.Context, tx *sqlx.Tx, setID string, cards []CardParams) error {
	query := s.db.Rebind(`INSERT INTO cards (id, set_id, term, definition, position) VALUES (?, ?, ?, ?, ?)`)
	for i, c := range cards {
		order := c.Order
		if order < 0 {
			order = i
		}
		if _, err := tx.ExecContext(ctx, query, newID(), setID, c.Term, c.Definition, order); err != nil {
			return fmt.Errorf("insert card: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) ListSets(ctx context.Context) ([]model.SetSummary, error) {
	var rows []setRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT s.id, s.title, s.description, s.created_at, s.updated_at, COUNT(c.id) AS card_count
		FROM sets s
		LEFT JOIN cards c ON c.set_id = s.id
		GROUP BY s.id, s.title, s.description, s.created_at, s.updated_at
		ORDER BY s.created_at DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}

	sets := make([]model.SetSummary, 0, len(rows))
	for _, r := range rows {
		sets = append(sets, model.SetSummary{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description.String,
			CreatedAt:   parseTime(r.CreatedAt),
			CardCount:   r.CardCount,
		})
	}
	return sets, nil
}

func (s *SQLStore) GetSet(ctx context.Context, id string) (*model.Set, error) {
	var row setRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(
		`SELECT id, title, description, created_at, updated_at FROM sets WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get set: %w", err)
	}

	set := row.set()
	set.Cards, err = s.queryCards(ctx, "c.set_id = ?", id)
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (s *SQLStore) UpdateSet(ctx context.Context, id string, p SetParams) (*model.Set, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.db.Rebind(
		`UPDATE sets SET title = ?, description = ?, updated_at = ? WHERE id = ?`),
		p.Title, nullString(p.Description), formatTime(time.Now()), id)
	if err != nil {
		return nil, fmt.Errorf("update set: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("set %s: %w", id, ErrNotFound)
	}

	if err := s.deleteCards(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := s.insertCards(ctx, tx, id, p.Cards); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetSet(ctx, id)
}

func (s *SQLStore) DeleteSet(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.deleteCards(ctx, tx, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM sets WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set %s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

// deleteCards removes a set's cards and their progress. Foreign key
// cascades are not relied on because SQLite only honours them per connection.
func (s *SQLStore) deleteCards(ctx context.Context, tx *sqlx.Tx, setID string) error {
	_, err := tx.ExecContext(ctx, s.db.Rebind(
		`DELETE FROM card_progress WHERE card_id IN (SELECT id FROM cards WHERE set_id = ?)`), setID)
	if err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	_, err = tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM cards WHERE set_id = ?`), setID)
	if err != nil {
		return fmt.Errorf("delete cards: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func parseNullTime(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := parseTime(ns.String)
	return &t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}
