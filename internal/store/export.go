package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/studycards/internal/model"
)

// ExportAll returns every set with its cards, or only the set with the given id.
func (s *SQLStore) ExportAll(ctx context.Context, setID string) ([]model.Set, error) {
	if setID != "" {
		set, err := s.GetSet(ctx, setID)
		if err != nil {
			return nil, err
		}
		return []model.Set{*set}, nil
	}

	summaries, err := s.ListSets(ctx)
	if err != nil {
		return nil, err
	}

	sets := make([]model.Set, 0, len(summaries))
	for _, sum := range summaries {
		set, err := s.GetSet(ctx, sum.ID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *set)
	}
	return sets, nil
}

// Import stores sets as new sets in one transaction: either all of them are
// imported or none is.
func (s *SQLStore) Import(ctx context.Context, sets []SetParams) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := formatTime(time.Now())
	query := s.db.Rebind(`INSERT INTO sets (id, title, description, created_at) VALUES (?, ?, ?, ?)`)
	for _, p := range sets {
		id := newID()
		if _, err := tx.ExecContext(ctx, query, id, p.Title, nullString(p.Description), now); err != nil {
			return 0, fmt.Errorf("import %q: %w", p.Title, err)
		}
		if err := s.insertCards(ctx, tx, id, p.Cards); err != nil {
			return 0, fmt.Errorf("import %q: %w", p.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(sets), nil
}
