package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcliao/studycards/internal/model"
)

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)

	set, _ := src.CreateSet(ctx, spanishSet())
	src.CreateSet(ctx, SetParams{Title: "French", Cards: []CardParams{{Term: "oui", Definition: "yes"}}})
	src.UpdateProgress(ctx, set.Cards[0].ID, func(prev *model.Progress) model.Progress {
		return model.Progress{EaseFactor: 2.5, Repetitions: 1}
	})

	all, err := src.ExportAll(ctx, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(all))
	}

	one, err := src.ExportAll(ctx, set.ID)
	if err != nil {
		t.Fatalf("export one: %v", err)
	}
	if len(one) != 1 || len(one[0].Cards) != 3 {
		t.Fatalf("unexpected export %+v", one)
	}

	var params []SetParams
	for _, set := range all {
		p := SetParams{Title: set.Title, Description: set.Description}
		for _, c := range set.Cards {
			p.Cards = append(p.Cards, CardParams{Term: c.Term, Definition: c.Definition, Order: c.Order})
		}
		params = append(params, p)
	}

	dst := newTestStore(t)
	n, err := dst.Import(ctx, params)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}

	sets, _ := dst.ListSets(ctx)
	if len(sets) != 2 {
		t.Fatalf("expected 2 sets after import, got %d", len(sets))
	}
	for _, sum := range sets {
		got, _ := dst.GetSet(ctx, sum.ID)
		for _, c := range got.Cards {
			if c.Progress != nil {
				t.Errorf("imported card %s should have no progress", c.Term)
			}
		}
	}
}

func TestUsage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "usage.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	set, _ := s.CreateSet(ctx, spanishSet())
	s.CreateSet(ctx, SetParams{Title: "French", Cards: []CardParams{{Term: "oui", Definition: "yes"}}})
	s.UpdateProgress(ctx, set.Cards[0].ID, func(prev *model.Progress) model.Progress {
		return model.Progress{EaseFactor: 2.5}
	})

	u, err := s.Usage(ctx, dbPath)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if u.TotalSets != 2 || u.TotalCards != 4 || u.ReviewedCards != 1 {
		t.Errorf("unexpected usage %+v", u)
	}
	if _, err := os.Stat(dbPath); err == nil && u.DBSizeBytes == 0 {
		t.Error("expected non-zero db size")
	}
	if len(u.Sets) != 2 || u.Sets[0].Title != "Spanish" || u.Sets[0].Cards != 3 || u.Sets[0].Reviewed != 1 {
		t.Errorf("unexpected per-set usage %+v", u.Sets)
	}
}

func TestImportEmpty(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Import(context.Background(), nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 imported, got %d", n)
	}
}
