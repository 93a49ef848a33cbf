package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir, "/uploads")
	ctx := context.Background()

	url, err := store.Save(ctx, "logos/acme.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/logos/acme.png", url)

	b, err := os.ReadFile(filepath.Join(dir, "logos", "acme.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "logos", "acme.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, url))
}

func TestLocal_SaveRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(filepath.Join(dir, "uploads"), "/uploads")

	url, err := store.Save(context.Background(), "../../escape.txt", "text/plain", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.txt", url)

	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.txt"))
	assert.NoError(t, err)
}

func TestLocal_SaveEmptyKey(t *testing.T) {
	_, err := NewLocal(t.TempDir(), "/uploads").Save(context.Background(), "  ", "", nil)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestObjectKey(t *testing.T) {
	k := ObjectKey("resumes", ".PDF")
	assert.True(t, strings.HasPrefix(k, "resumes/"))
	assert.True(t, strings.HasSuffix(k, ".pdf"))
	assert.NotEqual(t, k, ObjectKey("resumes", "pdf"))
}
