package store

import (
	"context"
	"fmt"
	"testing"
)

func TestSearch_Basic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	spanish, _ := s.CreateSet(ctx, spanishSet())
	s.CreateSet(ctx, SetParams{Title: "French", Cards: []CardParams{
		{Term: "bonjour", Definition: "Hello"},
		{Term: "merci", Definition: "thank you"},
	}})

	results, err := s.SearchCards(ctx, SearchParams{Query: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	results, err = s.SearchCards(ctx, SearchParams{SetID: spanish.ID, Query: "thank"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Term != "gracias" {
		t.Fatalf("expected gracias only, got %+v", results)
	}

	// Search by term
	results, _ = s.SearchCards(ctx, SearchParams{Query: "MERC"})
	if len(results) != 1 || results[0].Term != "merci" {
		t.Fatalf("expected merci, got %+v", results)
	}

	results, _ = s.SearchCards(ctx, SearchParams{Query: "zzz"})
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearch_Limit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.CreateSet(ctx, spanishSet())

	results, err := s.SearchCards(ctx, SearchParams{Query: "o", Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// The limit applies after ordering by card position.
	if results[0].Term != "hola" || results[1].Term != "adios" {
		t.Errorf("expected hola, adios; got %q, %q", results[0].Term, results[1].Term)
	}

	results, _ = s.SearchCards(ctx, SearchParams{Query: "o"})
	if len(results) != 3 {
		t.Errorf("expected 3 results with the default limit, got %d", len(results))
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var cards []CardParams
	for i := 0; i < 25; i++ {
		cards = append(cards, CardParams{Term: fmt.Sprintf("word %02d", i), Definition: "same", Order: i})
	}
	s.CreateSet(ctx, SetParams{Title: "many", Cards: cards})

	results, err := s.SearchCards(ctx, SearchParams{Query: "same"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 20 {
		t.Fatalf("expected 20 results, got %d", len(results))
	}
	if results[19].Term != "word 19" {
		t.Errorf("expected last result word 19, got %q", results[19].Term)
	}
}

func TestSearch_Wildcards(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.CreateSet(ctx, SetParams{Title: "t", Cards: []CardParams{
		{Term: "100%", Definition: "all"},
		{Term: "1000", Definition: "thousand"},
	}})

	results, _ := s.SearchCards(ctx, SearchParams{Query: "0%"})
	if len(results) != 1 || results[0].Term != "100%" {
		t.Errorf("expected literal %% match only, got %+v", results)
	}
}
