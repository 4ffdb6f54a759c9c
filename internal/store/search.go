package store

import (
	"context"
	"strings"

	"github.com/rcliao/studycards/internal/model"
)

// SearchCards finds cards whose term or definition contains the query,
// case-insensitively, optionally limited to one set.
func (s *SQLStore) SearchCards(ctx context.Context, p SearchParams) ([]model.Card, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + escapeLike(p.Query) + "%"

	where := []string{`(LOWER(c.term) LIKE LOWER(?) ESCAPE '\' OR LOWER(c.definition) LIKE LOWER(?) ESCAPE '\')`}
	args := []any{pattern, pattern}

	if p.SetID != "" {
		where = append(where, "c.set_id = ?")
		args = append(args, p.SetID)
	}

	query := cardQuery(strings.Join(where, " AND ")) + `
		LIMIT ?`
	args = append(args, limit)

	return s.selectCards(ctx, query, args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
