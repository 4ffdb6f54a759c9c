package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rcliao/studycards/internal/model"
)

const cardColumns = `
	c.id, c.set_id, c.term, c.definition, c.position,
	p.card_id AS progress_id, p.ease_factor, p.interval_days, p.repetitions, p.lapses,
	p.last_reviewed, p.next_review`

type cardRow struct {
	ID         string `db:"id"`
	SetID      string `db:"set_id"`
	Term       string `db:"term"`
	Definition string `db:"definition"`
	Position   int    `db:"position"`
	progressRow
}

type progressRow struct {
	ProgressID   sql.NullString  `db:"progress_id"`
	EaseFactor   sql.NullFloat64 `db:"ease_factor"`
	IntervalDays sql.NullInt64   `db:"interval_days"`
	Repetitions  sql.NullInt64   `db:"repetitions"`
	Lapses       sql.NullInt64   `db:"lapses"`
	LastReviewed sql.NullString  `db:"last_reviewed"`
	NextReview   sql.NullString  `db:"next_review"`
}

func (r progressRow) progress() *model.Progress {
	if !r.ProgressID.Valid {
		return nil
	}
	return &model.Progress{
		CardID:       r.ProgressID.String,
		EaseFactor:   r.EaseFactor.Float64,
		IntervalDays: int(r.IntervalDays.Int64),
		Repetitions:  int(r.Repetitions.Int64),
		Lapses:       int(r.Lapses.Int64),
		LastReviewed: parseNullTime(r.LastReviewed),
		NextReview:   parseNullTime(r.NextReview),
	}
}

func (r cardRow) card() model.Card {
	return model.Card{
		ID:         r.ID,
		SetID:      r.SetID,
		Term:       r.Term,
		Definition: r.Definition,
		Order:      r.Position,
		Progress:   r.progress(),
	}
}

// cardQuery selects cards with their progress matching cond, in set order.
func cardQuery(cond string) string {
	return `SELECT ` + cardColumns + `
		FROM cards c
		LEFT JOIN card_progress p ON p.card_id = c.id
		WHERE ` + cond + `
		ORDER BY c.position, c.id`
}

func (s *SQLStore) queryCards(ctx context.Context, cond string, args ...any) ([]model.Card, error) {
	return s.selectCards(ctx, cardQuery(cond), args...)
}

func (s *SQLStore) selectCards(ctx context.Context, query string, args ...any) ([]model.Card, error) {
	var rows []cardRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}

	cards := make([]model.Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, r.card())
	}
	return cards, nil
}

func (s *SQLStore) GetCard(ctx context.Context, id string) (*model.Card, error) {
	cards, err := s.queryCards(ctx, "c.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	return &cards[0], nil
}

// setExists returns ErrNotFound when no set has the given id.
func (s *SQLStore) setExists(ctx context.Context, id string) error {
	var n int
	err := s.db.GetContext(ctx, &n, s.db.Rebind(`SELECT COUNT(*) FROM sets WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("check set: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("set %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLStore) CardsForSet(ctx context.Context, setID string) ([]model.Card, error) {
	if err := s.setExists(ctx, setID); err != nil {
		return nil, err
	}
	return s.queryCards(ctx, "c.set_id = ?", setID)
}

func (s *SQLStore) GetProgress(ctx context.Context, cardID string) (*model.Progress, error) {
	card, err := s.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return card.Progress, nil
}

func (s *SQLStore) UpdateProgress(ctx context.Context, cardID string, fn ProgressFunc) (*model.Progress, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock the card row so a concurrent review of the same card waits
	// for this one to commit. SQLite is already serialised by its single
	// connection.
	lock := `SELECT id FROM cards WHERE id = ?`
	if s.driver == DriverPostgres {
		lock += ` FOR UPDATE`
	}
	var id string
	err = tx.GetContext(ctx, &id, tx.Rebind(lock), cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s: %w", cardID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock card: %w", err)
	}

	prev, err := progressTx(ctx, tx, cardID)
	if err != nil {
		return nil, err
	}

	next := fn(prev)
	next.CardID = cardID

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO card_progress (card_id, ease_factor, interval_days, repetitions, lapses, last_reviewed, next_review)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (card_id) DO UPDATE SET
			ease_factor = excluded.ease_factor,
			interval_days = excluded.interval_days,
			repetitions = excluded.repetitions,
			lapses = excluded.lapses,
			last_reviewed = excluded.last_reviewed,
			next_review = excluded.next_review`),
		cardID, next.EaseFactor, next.IntervalDays, next.Repetitions, next.Lapses,
		nullTime(next.LastReviewed), nullTime(next.NextReview))
	if err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// Read back so callers see stored precision.
	return s.GetProgress(ctx, cardID)
}

func progressTx(ctx context.Context, tx *sqlx.Tx, cardID string) (*model.Progress, error) {
	var row progressRow
	err := tx.GetContext(ctx, &row, tx.Rebind(`
		SELECT card_id AS progress_id, ease_factor, interval_days, repetitions, lapses, last_reviewed, next_review
		FROM card_progress WHERE card_id = ?`), cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return row.progress(), nil
}

func (s *SQLStore) ResetProgress(ctx context.Context, setID string) error {
	if err := s.setExists(ctx, setID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		`DELETE FROM card_progress WHERE card_id IN (SELECT id FROM cards WHERE set_id = ?)`), setID)
	if err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
