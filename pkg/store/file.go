package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pathmark/pathmark/pkg/errors"
)

// FileStore is a file-based archive for CLI and single-node use. Each
// document is one JSON file in the base directory, named by its ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based archive rooted at baseDir. If baseDir
// is empty it defaults to ~/.config/pathmark/pathways.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "pathmark", "pathways")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create archive dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Path returns the archive directory.
func (s *FileStore) Path() string { return s.baseDir }

func (s *FileStore) docPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// checkID rejects IDs that cannot name a file inside the archive.
func checkID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid document id: %q", id)
	}
	return nil
}

// Save inserts or replaces a document, refreshing UpdatedAt.
func (s *FileStore) Save(_ context.Context, doc *Document) error {
	if err := checkID(doc.ID); err != nil {
		return err
	}
	doc.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal document")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.docPath(doc.ID), data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write document file")
	}
	return nil
}

// Get retrieves a document by ID. Returns nil, nil if missing.
func (s *FileStore) Get(_ context.Context, id string) (*Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.docPath(id))
	s.mu.RUnlock()
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read document file")
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse document file")
	}
	return &doc, nil
}

// List returns summaries of all documents, newest first. Unreadable files
// are skipped rather than failing the listing.
func (s *FileStore) List(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	entries, err := os.ReadDir(s.baseDir)
	s.mu.RUnlock()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read archive dir")
	}

	var out []Summary
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		out = append(out, Summary{
			ID:        doc.ID,
			Title:     doc.Title,
			Organism:  doc.Organism,
			Version:   doc.Version,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.docPath(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "remove document file")
	}
	return nil
}

// Close does nothing.
func (s *FileStore) Close(context.Context) error { return nil }

var _ Store = (*FileStore)(nil)
