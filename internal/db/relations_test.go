package db

import (
	"context"
	"errors"
	"testing"
)

func TestParseRelationType(t *testing.T) {
	tests := []struct {
		in      string
		want    RelationType
		wantErr bool
	}{
		{"Comment", RelationComment, false},
		{"Reference", RelationReference, false},
		{"Link", RelationLink, false},
		{"comment", "", true},
		{"Hyperlink", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRelationType(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidRelationType) {
				t.Errorf("ParseRelationType(%q) err = %v, want ErrInvalidRelationType", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRelationType(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRelationType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateRelation_RoundTrip(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	a := mustCreateNote(t, d, "source")
	b := mustCreateNote(t, d, "target")

	created, err := d.CreateRelation(ctx, a.ID, b.ID, RelationLink)
	if err != nil {
		t.Fatal(err)
	}
	if created.SourceNoteID != a.ID || created.TargetNoteID != b.ID {
		t.Errorf("endpoints = %d->%d, want %d->%d", created.SourceNoteID, created.TargetNoteID, a.ID, b.ID)
	}
	if created.RelationType != RelationLink {
		t.Errorf("type = %q, want Link", created.RelationType)
	}

	relations, err := d.RelationsForNote(ctx, b.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(relations) != 1 {
		t.Fatalf("expected 1 relation, got %d", len(relations))
	}
	r := relations[0]
	if r.ID != created.ID || r.SourceNoteID != a.ID || r.RelationType != RelationLink {
		t.Errorf("fetched relation = %+v, want id=%d source=%d type=Link", r, created.ID, a.ID)
	}
	if !r.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at = %v, want %v", r.CreatedAt, created.CreatedAt)
	}
}

func TestCreateRelation_MissingEndpoint(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	a := mustCreateNote(t, d, "only note")

	// Missing target
	if _, err := d.CreateRelation(ctx, a.ID, 999, RelationReference); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("missing target: err = %v, want ErrNoteNotFound", err)
	}
	// Missing source
	if _, err := d.CreateRelation(ctx, 999, a.ID, RelationReference); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("missing source: err = %v, want ErrNoteNotFound", err)
	}
	if got := countRows(t, d, "note_relations"); got != 0 {
		t.Errorf("note_relations rows = %d, want 0", got)
	}
}

func TestCreateRelation_InvalidType(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	a := mustCreateNote(t, d, "a")
	b := mustCreateNote(t, d, "b")

	_, err := d.CreateRelation(ctx, a.ID, b.ID, RelationType("Bogus"))
	if !errors.Is(err, ErrInvalidRelationType) {
		t.Errorf("err = %v, want ErrInvalidRelationType", err)
	}
	if got := countRows(t, d, "note_relations"); got != 0 {
		t.Errorf("note_relations rows = %d, want 0", got)
	}
}

func TestRelationsForNote_TypeFilter(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	target := mustCreateNote(t, d, "target")
	a := mustCreateNote(t, d, "a")
	b := mustCreateNote(t, d, "b")

	if _, err := d.CreateRelation(ctx, a.ID, target.ID, RelationLink); err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateRelation(ctx, b.ID, target.ID, RelationReference); err != nil {
		t.Fatal(err)
	}
	if _, _, err := d.AddComment(ctx, target.ID, "a comment", nil); err != nil {
		t.Fatal(err)
	}

	all, err := d.RelationsForNote(ctx, target.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 relations, got %d", len(all))
	}

	links, err := d.RelationsForNote(ctx, target.ID, RelationLink)
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 1 || links[0].SourceNoteID != a.ID {
		t.Errorf("link filter = %+v, want one edge from %d", links, a.ID)
	}

	// Edges where the note is the source don't count
	fromA, err := d.RelationsForNote(ctx, a.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(fromA) != 0 {
		t.Errorf("expected no relations targeting %d, got %d", a.ID, len(fromA))
	}
}

func TestRelationsForNote_ChronologicalOrder(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	target := mustCreateNote(t, d, "target")
	a := mustCreateNote(t, d, "a")
	b := mustCreateNote(t, d, "b")
	c := mustCreateNote(t, d, "c")

	// Inserted out of order on purpose
	insertRawRelation(t, d, b.ID, target.ID, "Link", 2000)
	insertRawRelation(t, d, c.ID, target.ID, "Link", 3000)
	insertRawRelation(t, d, a.ID, target.ID, "Link", 1000)

	relations, err := d.RelationsForNote(ctx, target.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(relations) != 3 {
		t.Fatalf("expected 3 relations, got %d", len(relations))
	}
	if relations[0].SourceNoteID != a.ID || relations[1].SourceNoteID != b.ID || relations[2].SourceNoteID != c.ID {
		t.Errorf("order = %d,%d,%d, want oldest first %d,%d,%d",
			relations[0].SourceNoteID, relations[1].SourceNoteID, relations[2].SourceNoteID,
			a.ID, b.ID, c.ID)
	}
}

func TestRelationsForNote_InvalidFilterType(t *testing.T) {
	d := setupTestDB(t)

	target := mustCreateNote(t, d, "target")

	_, err := d.RelationsForNote(context.Background(), target.ID, RelationType("Bogus"))
	if !errors.Is(err, ErrInvalidRelationType) {
		t.Errorf("err = %v, want ErrInvalidRelationType", err)
	}
}

func TestScanRelation_UnknownStoredTypeFailsClosed(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	target := mustCreateNote(t, d, "target")
	a := mustCreateNote(t, d, "a")
	insertRawRelation(t, d, a.ID, target.ID, "Hyperlink", 1000)

	_, err := d.RelationsForNote(ctx, target.ID, "")
	if !errors.Is(err, ErrInvalidRelationType) {
		t.Errorf("err = %v, want ErrInvalidRelationType (no silent coercion)", err)
	}
}
