// Package reminder periodically reports study sets with cards due for review.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/rcliao/studycards/internal/study"
)

// DefaultInterval is how often sets are checked.
const DefaultInterval = time.Hour

// Reminder describes one set with cards to study.
type Reminder struct {
	SetID   string `json:"set_id"`
	Title   string `json:"title"`
	Due     int    `json:"due_cards"`
	Overdue int    `json:"overdue_cards"`
	New     int    `json:"new_cards"`
}

// Notifier delivers reminders.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, r Reminder) error

func (f NotifierFunc) Notify(ctx context.Context, r Reminder) error {
	return f(ctx, r)
}

// Scheduler runs reminder checks on an interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	svc       *study.Service
	notifier  Notifier
	interval  time.Duration
	logger    *slog.Logger
}

// NewScheduler creates a reminder scheduler. A non-positive interval uses DefaultInterval.
func NewScheduler(svc *study.Service, notifier Notifier, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		svc:       svc,
		notifier:  notifier,
		interval:  interval,
		logger:    logger,
	}
}

// Start begins running checks in the background, the first one immediately.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		if _, err := s.CheckNow(context.Background()); err != nil {
			s.logger.Error("reminder check", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates scheduled checks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// CheckNow runs one check and sends a reminder for every set with review
// cards due today or earlier. It returns the reminders it sent.
func (s *Scheduler) CheckNow(ctx context.Context) ([]Reminder, error) {
	sets, err := s.svc.ListSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}

	var sent []Reminder
	for _, set := range sets {
		sess, err := s.svc.Session(ctx, set.ID, -1)
		if err != nil {
			s.logger.Error("session", "set", set.ID, "err", err)
			continue
		}
		if sess.Stats.Review == 0 {
			continue
		}

		r := Reminder{
			SetID:   set.ID,
			Title:   set.Title,
			Due:     sess.Stats.Review,
			Overdue: sess.Stats.Overdue,
			New:     sess.Stats.New,
		}
		if err := s.notifier.Notify(ctx, r); err != nil {
			s.logger.Error("notify", "set", set.ID, "err", err)
			continue
		}
		s.logger.Info("reminder sent", "set", set.ID, "due", r.Due)
		sent = append(sent, r)
	}
	return sent, nil
}
