// Package store archives pathway documents.
//
// # Overview
//
// The archive keeps serialized pathway documents keyed by a generated UUID,
// alongside the metadata needed to list and filter them without decoding.
// Two backends exist:
//   - memory: in-process storage for development and testing
//   - mongo: MongoDB-backed storage for deployments
//
// # Usage
//
//	st := store.NewMemoryStore()
//	doc := store.NewDocument("Apoptosis", "Homo sapiens", string(gpml.V2021), content)
//	if err := st.Save(ctx, doc); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Document is one archived pathway.
type Document struct {
	ID       string `bson:"_id" json:"id"`
	Title    string `bson:"title" json:"title"`
	Organism string `bson:"organism" json:"organism"`
	// Version is the schema generation the content is serialized under.
	Version   string    `bson:"version" json:"version"`
	Content   []byte    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NewDocument creates a document with a fresh UUID and timestamps.
func NewDocument(title, organism, version string, content []byte) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Title:     title,
		Organism:  organism,
		Version:   version,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Summary is the listing view of a document, without content.
type Summary struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Organism  string    `bson:"organism" json:"organism"`
	Version   string    `bson:"version" json:"version"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Store is the interface for archive backends.
type Store interface {
	// Save inserts or replaces a document, refreshing UpdatedAt.
	Save(ctx context.Context, doc *Document) error

	// Get retrieves a document by ID.
	// Returns nil, nil if the document doesn't exist.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns summaries of all documents, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a document. Deleting a missing document is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
