package study

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rcliao/studycards/internal/model"
	"github.com/rcliao/studycards/internal/store"
)

// ErrInvalid is returned when a set or card fails validation.
var ErrInvalid = errors.New("invalid input")

const (
	maxTitleLen = 255
	maxTermLen  = 500
)

// Validate checks a set, trims its text fields and replaces negative card
// orders with the card's position.
func Validate(p *store.SetParams) error {
	p.Title = strings.TrimSpace(p.Title)
	if n := utf8.RuneCountInString(p.Title); n == 0 || n > maxTitleLen {
		return fmt.Errorf("%w: title must be 1-%d characters", ErrInvalid, maxTitleLen)
	}
	if len(p.Cards) == 0 {
		return fmt.Errorf("%w: a set needs at least one card", ErrInvalid)
	}
	p.Cards = append([]store.CardParams(nil), p.Cards...)
	for i := range p.Cards {
		c := &p.Cards[i]
		c.Term = strings.TrimSpace(c.Term)
		c.Definition = strings.TrimSpace(c.Definition)
		if n := utf8.RuneCountInString(c.Term); n == 0 || n > maxTermLen {
			return fmt.Errorf("%w: card %d: term must be 1-%d characters", ErrInvalid, i+1, maxTermLen)
		}
		if c.Definition == "" {
			return fmt.Errorf("%w: card %d: definition is required", ErrInvalid, i+1)
		}
		if c.Order < 0 {
			c.Order = i
		}
	}
	return nil
}

// CreateSet validates and stores a new set.
func (s *Service) CreateSet(ctx context.Context, p store.SetParams) (*model.Set, error) {
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return s.store.CreateSet(ctx, p)
}

// UpdateSet validates and replaces a set. Progress of the old cards is lost.
func (s *Service) UpdateSet(ctx context.Context, id string, p store.SetParams) (*model.Set, error) {
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return s.store.UpdateSet(ctx, id, p)
}

// ListSets returns all sets, newest first.
func (s *Service) ListSets(ctx context.Context) ([]model.SetSummary, error) {
	return s.store.ListSets(ctx)
}

// GetSet returns a set with its cards.
func (s *Service) GetSet(ctx context.Context, id string) (*model.Set, error) {
	return s.store.GetSet(ctx, id)
}

// DeleteSet removes a set with its cards and progress.
func (s *Service) DeleteSet(ctx context.Context, id string) error {
	return s.store.DeleteSet(ctx, id)
}

// ImportSets validates every set and stores them all, or none if any is invalid.
func (s *Service) ImportSets(ctx context.Context, sets []store.SetParams) (int, error) {
	for i := range sets {
		if err := Validate(&sets[i]); err != nil {
			return 0, fmt.Errorf("set %d (%q): %w", i+1, sets[i].Title, err)
		}
	}
	return s.store.Import(ctx, sets)
}

// ExportSets returns sets with their cards, all of them when setID is empty.
func (s *Service) ExportSets(ctx context.Context, setID string) ([]model.Set, error) {
	return s.store.ExportAll(ctx, setID)
}

// SearchCards finds cards by term or definition.
func (s *Service) SearchCards(ctx context.Context, p store.SearchParams) ([]model.Card, error) {
	return s.store.SearchCards(ctx, p)
}
