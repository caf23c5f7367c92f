package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestFileStoreSaveGet(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	doc := NewDocument("Apoptosis", "Homo sapiens", "GPML2021", []byte("<Pathway/>"))
	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Apoptosis", got.Title)
	assert.Equal(t, []byte("<Pathway/>"), got.Content)
}

func TestFileStoreGetMissing(t *testing.T) {
	s := newFileStore(t)
	got, err := s.Get(context.Background(), "0000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewFileStore(dir)
	require.NoError(t, err)
	doc := NewDocument("x", "", "GPML2013a", []byte("content"))
	require.NoError(t, s1.Save(ctx, doc))

	s2, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := s2.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []byte("content"), got.Content)
}

func TestFileStoreListNewestFirst(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second"} {
		doc := NewDocument(title, "", "GPML2021", nil)
		time.Sleep(2 * time.Millisecond)
		require.NoError(t, s.Save(ctx, doc))
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
}

func TestFileStoreDelete(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	doc := NewDocument("x", "", "GPML2021", nil)
	require.NoError(t, s.Save(ctx, doc))
	require.NoError(t, s.Delete(ctx, doc.ID))

	got, err := s.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, s.Delete(ctx, doc.ID), "deleting a missing document is not an error")
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", `a\b`} {
		_, err := s.Get(ctx, id)
		assert.Error(t, err, "id %q", id)
	}
}
