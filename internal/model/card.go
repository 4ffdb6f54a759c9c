// Package model defines the core study set, card, and progress types.
package model

import "time"

// Set is a named collection of cards studied together.
type Set struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Cards       []Card     `json:"cards"`
}

// SetSummary is a set as shown in listings, without its cards.
type SetSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CardCount   int       `json:"card_count"`
}

// Card is a term/definition pair. Progress is nil until the card's first review.
type Card struct {
	ID         string    `json:"id"`
	SetID      string    `json:"set_id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	Order      int       `json:"order"`
	Progress   *Progress `json:"progress"`
}

// Progress is the per-card learning state.
type Progress struct {
	CardID       string     `json:"card_id"`
	EaseFactor   float64    `json:"ease_factor"`
	IntervalDays int        `json:"interval_days"`
	Repetitions  int        `json:"repetitions"`
	Lapses       int        `json:"lapses"`
	LastReviewed *time.Time `json:"last_reviewed"`
	NextReview   *time.Time `json:"next_review"`
}
