package store

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	doc := NewDocument("Apoptosis", "Homo sapiens", "GPML2021", []byte("<Pathway/>"))
	if err := s.Save(ctx, doc); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("saved document not found")
	}
	if got.Title != "Apoptosis" || got.Organism != "Homo sapiens" {
		t.Errorf("metadata = %q/%q", got.Title, got.Organism)
	}
	if string(got.Content) != "<Pathway/>" {
		t.Errorf("content = %q", got.Content)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	got, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("missing document = %+v, want nil", got)
	}
}

func TestMemoryStoreSaveReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	doc := NewDocument("v1", "", "GPML2013a", []byte("a"))
	if err := s.Save(ctx, doc); err != nil {
		t.Fatal(err)
	}
	before := doc.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	doc.Title = "v2"
	doc.Content = []byte("b")
	if err := s.Save(ctx, doc); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "v2" || string(got.Content) != "b" {
		t.Errorf("replace lost data: %q/%q", got.Title, got.Content)
	}
	if !got.UpdatedAt.After(before) {
		t.Error("UpdatedAt not refreshed")
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		doc := NewDocument(title, "", "GPML2021", nil)
		time.Sleep(2 * time.Millisecond)
		if err := s.Save(ctx, doc); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("List = %d entries", len(list))
	}
	if list[0].Title != "third" || list[2].Title != "first" {
		t.Errorf("order = %q, %q, %q", list[0].Title, list[1].Title, list[2].Title)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	doc := NewDocument("x", "", "GPML2021", nil)
	if err := s.Save(ctx, doc); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, doc.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(ctx, doc.ID); got != nil {
		t.Error("document still present after delete")
	}

	// Deleting a missing document is not an error.
	if err := s.Delete(ctx, "nope"); err != nil {
		t.Errorf("Delete missing = %v", err)
	}
}

func TestMemoryStoreCloneIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	doc := NewDocument("x", "", "GPML2021", []byte("orig"))
	if err := s.Save(ctx, doc); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's copy must not leak into the store.
	doc.Content[0] = 'X'
	doc.Title = "mutated"

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Content) != "orig" || got.Title != "x" {
		t.Errorf("store shares state with callers: %q/%q", got.Title, got.Content)
	}

	// And mutating a fetched copy must not corrupt the stored one.
	got.Content[0] = 'Y'
	again, _ := s.Get(ctx, doc.ID)
	if string(again.Content) != "orig" {
		t.Errorf("fetched copies share backing array: %q", again.Content)
	}
}
