// Package study runs reviews, sessions and statistics on top of a store.
package study

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/studycards/internal/model"
	"github.com/rcliao/studycards/internal/srs"
	"github.com/rcliao/studycards/internal/store"
)

// Service combines a store with the scheduling engine.
type Service struct {
	store        store.Store
	now          func() time.Time
	loc          *time.Location
	newCardLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for review times and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the location that calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithNewCardLimit sets the default number of new cards per session.
func WithNewCardLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.newCardLimit = n
		}
	}
}

// NewService returns a Service backed by st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:        st,
		now:          time.Now,
		loc:          time.Local,
		newCardLimit: srs.DefaultNewCardLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() store.Store {
	return s.store
}

// NewCardLimit returns the default number of new cards per session.
func (s *Service) NewCardLimit() int {
	return s.newCardLimit
}

func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

// Review grades a card and stores its new progress.
func (s *Service) Review(ctx context.Context, cardID string, g srs.Grade) (*model.Progress, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", srs.ErrInvalidGrade, int(g))
	}
	now := s.clock()
	return s.store.UpdateProgress(ctx, cardID, func(prev *model.Progress) model.Progress {
		return srs.Apply(prev, g, now)
	})
}

// Preview returns what each grade would do to a card, without storing anything.
func (s *Service) Preview(ctx context.Context, cardID string) (map[srs.Grade]model.Progress, error) {
	prev, err := s.store.GetProgress(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return srs.Preview(prev, s.clock()), nil
}

// Progress returns a card's progress, or nil if it was never reviewed.
func (s *Service) Progress(ctx context.Context, cardID string) (*model.Progress, error) {
	return s.store.GetProgress(ctx, cardID)
}

// Session returns today's study queue for a set. A negative newLimit uses
// the service default.
func (s *Service) Session(ctx context.Context, setID string, newLimit int) (srs.Session, error) {
	cards, err := s.store.CardsForSet(ctx, setID)
	if err != nil {
		return srs.Session{}, err
	}
	if newLimit < 0 {
		newLimit = s.newCardLimit
	}
	return srs.Select(cards, s.clock(), newLimit), nil
}

// Stats returns learning statistics for a set as of today.
func (s *Service) Stats(ctx context.Context, setID string) (srs.SetStats, error) {
	cards, err := s.store.CardsForSet(ctx, setID)
	if err != nil {
		return srs.SetStats{}, err
	}
	return srs.Summarize(cards, s.clock()), nil
}

// ResetProgress forgets all progress in a set.
func (s *Service) ResetProgress(ctx context.Context, setID string) error {
	return s.store.ResetProgress(ctx, setID)
}
