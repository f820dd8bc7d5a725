package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/glossary/internal/glossary"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	tables := []string{"subjects", "card_groups", "group_members", "cards", "windows", "window_groups"}
	for _, table := range tables {
		var count int
		err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func exportDoc() *glossary.Document {
	return &glossary.Document{Subjects: []glossary.Subject{
		{
			ID: "S1", Code: "101", Title: "Intro",
			Groups: []glossary.Group{
				{ID: "G1", Title: "Greetings", Members: []string{"Ana", "Luis"}, Cards: []glossary.Card{
					{ID: "c1", ES: "hola", EN: "hello"},
					{ID: "c2", ES: "adiós", EN: "goodbye"},
				}},
				{ID: "G2", Title: "Colors", Cards: []glossary.Card{{ID: "c3", ES: "rojo", EN: "red"}}},
			},
			Windows: []glossary.Window{{ID: "W1", Title: "All", Groups: []string{"G1", "G2"}}},
		},
		{ID: "S2", Code: "202", Title: "Empty"},
	}}
}

func TestExportDocument(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "sub", "glossary.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()
	ctx := context.Background()

	if err := d.ExportDocument(ctx, exportDoc()); err != nil {
		t.Fatalf("ExportDocument() error: %v", err)
	}

	n, err := d.CountCards(ctx)
	if err != nil {
		t.Fatalf("CountCards() error: %v", err)
	}
	if n != 3 {
		t.Errorf("cards = %d, want 3", n)
	}

	stats, err := d.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %d rows, want 2", len(stats))
	}
	if stats[0].ID != "S1" || stats[0].Groups != 2 || stats[0].Cards != 3 {
		t.Errorf("S1 stats = %+v", stats[0])
	}
	if stats[1].ID != "S2" || stats[1].Cards != 0 {
		t.Errorf("S2 stats = %+v", stats[1])
	}

	var members int
	if err := d.QueryRow(`SELECT COUNT(*) FROM group_members WHERE group_id = 'G1'`).Scan(&members); err != nil {
		t.Fatal(err)
	}
	if members != 2 {
		t.Errorf("members = %d, want 2", members)
	}
}

func TestExportReplacesRows(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()
	ctx := context.Background()

	if err := d.ExportDocument(ctx, exportDoc()); err != nil {
		t.Fatalf("first export: %v", err)
	}
	small := &glossary.Document{Subjects: []glossary.Subject{{
		ID: "S9", Title: "Only",
		Groups: []glossary.Group{{ID: "G9", Cards: []glossary.Card{{ID: "c9", ES: "sí", EN: "yes"}}}},
	}}}
	if err := d.ExportDocument(ctx, small); err != nil {
		t.Fatalf("second export: %v", err)
	}

	n, err := d.CountCards(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("cards after re-export = %d, want 1", n)
	}
	var windows int
	if err := d.QueryRow(`SELECT COUNT(*) FROM windows`).Scan(&windows); err != nil {
		t.Fatal(err)
	}
	if windows != 0 {
		t.Errorf("stale windows = %d", windows)
	}
}

func TestExportRollsBackOnError(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()
	ctx := context.Background()

	if err := d.ExportDocument(ctx, exportDoc()); err != nil {
		t.Fatalf("export: %v", err)
	}

	// Duplicate card ids violate the primary key.
	bad := &glossary.Document{Subjects: []glossary.Subject{{
		ID: "S1", Groups: []glossary.Group{{ID: "G1", Cards: []glossary.Card{{ID: "x"}, {ID: "x"}}}},
	}}}
	if err := d.ExportDocument(ctx, bad); err == nil {
		t.Fatal("expected error for duplicate card ids")
	}

	n, err := d.CountCards(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("cards after failed export = %d, want 3", n)
	}
}
