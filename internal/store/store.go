// Package store provides study set storage: sets, cards, and per-card progress.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/studycards/internal/model"
)

// ErrNotFound is returned when a set or card id does not exist.
var ErrNotFound = errors.New("not found")

// CardParams holds the fields of a card to create.
type CardParams struct {
	Term       string `json:"term" yaml:"term"`
	Definition string `json:"definition" yaml:"definition"`
	Order      int    `json:"order" yaml:"order"`
}

// SetParams holds the fields of a set and its cards.
type SetParams struct {
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description,omitempty" yaml:"description"`
	Cards       []CardParams `json:"cards" yaml:"cards"`
}

// SearchParams holds parameters for searching cards.
type SearchParams struct {
	SetID string
	Query string
	Limit int
}

// ProgressFunc computes a card's new progress from its current one.
// prev is nil when the card has never been reviewed.
type ProgressFunc func(prev *model.Progress) model.Progress

// Store defines the study storage interface.
type Store interface {
	// CreateSet stores a new set with its cards.
	CreateSet(ctx context.Context, p SetParams) (*model.Set, error)

	// ListSets returns all sets, newest first, with card counts.
	ListSets(ctx context.Context) ([]model.SetSummary, error)

	// GetSet returns a set with its cards in order, each with its progress.
	GetSet(ctx context.Context, id string) (*model.Set, error)

	// UpdateSet replaces a set's fields and all of its cards.
	// Replaced cards lose their progress.
	UpdateSet(ctx context.Context, id string, p SetParams) (*model.Set, error)

	// DeleteSet removes a set, its cards, and their progress.
	DeleteSet(ctx context.Context, id string) error

	// GetCard returns one card with its progress.
	GetCard(ctx context.Context, id string) (*model.Card, error)

	// CardsForSet returns a set's cards in order, each with its progress.
	CardsForSet(ctx context.Context, setID string) ([]model.Card, error)

	// GetProgress returns a card's progress, or nil if it was never reviewed.
	GetProgress(ctx context.Context, cardID string) (*model.Progress, error)

	// UpdateProgress applies fn to a card's progress and stores the result.
	// Concurrent updates of the same card are serialised.
	UpdateProgress(ctx context.Context, cardID string, fn ProgressFunc) (*model.Progress, error)

	// ResetProgress deletes the progress of every card in a set.
	ResetProgress(ctx context.Context, setID string) error

	// ExportAll returns every set with its cards, or only the given set.
	ExportAll(ctx context.Context, setID string) ([]model.Set, error)

	// Import stores sets as new sets, all or nothing.
	Import(ctx context.Context, sets []SetParams) (int, error)

	// SearchCards finds cards whose term or definition contains the query.
	SearchCards(ctx context.Context, p SearchParams) ([]model.Card, error)

	// Close closes the store.
	Close() error
}
