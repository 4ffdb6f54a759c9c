package store

import (
	"context"
	"os"
)

// Usage holds database statistics.
type Usage struct {
	DBPath        string     `json:"db_path,omitempty"`
	DBSizeBytes   int64      `json:"db_size_bytes"`
	TotalSets     int        `json:"total_sets"`
	TotalCards    int        `json:"total_cards"`
	ReviewedCards int        `json:"reviewed_cards"`
	Sets          []SetUsage `json:"sets"`
}

// SetUsage holds per-set counts.
type SetUsage struct {
	ID       string `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Cards    int    `json:"cards" db:"cards"`
	Reviewed int    `json:"reviewed" db:"reviewed"`
}

// Usage returns database statistics. dbPath is only used for the file size
// and may be empty for a server database.
func (s *SQLStore) Usage(ctx context.Context, dbPath string) (*Usage, error) {
	u := &Usage{DBPath: dbPath}

	if dbPath != "" {
		if info, err := os.Stat(dbPath); err == nil {
			u.DBSizeBytes = info.Size()
		}
	}

	if err := s.db.GetContext(ctx, &u.TotalSets, `SELECT COUNT(*) FROM sets`); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &u.TotalCards, `SELECT COUNT(*) FROM cards`); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &u.ReviewedCards, `SELECT COUNT(*) FROM card_progress`); err != nil {
		return nil, err
	}

	err := s.db.SelectContext(ctx, &u.Sets, `
		SELECT s.id, s.title, COUNT(c.id) AS cards, COUNT(p.card_id) AS reviewed
		FROM sets s
		LEFT JOIN cards c ON c.set_id = s.id
		LEFT JOIN card_progress p ON p.card_id = c.id
		GROUP BY s.id, s.title
		ORDER BY cards DESC, s.title`)
	if err != nil {
		return u, err
	}

	return u, nil
}
