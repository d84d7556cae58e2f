package assets

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogstore/internal/serviceerrors"
)

var assetNamePattern = regexp.MustCompile(`^\d+_tee\.jpg$`)

func TestDiskStore_SaveGeneratesTimestampedName(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)
	ctx := context.Background()

	name, err := store.Save(ctx, strings.NewReader("JPGBYTES"), "tee.jpg")
	require.NoError(t, err)
	assert.Regexp(t, assetNamePattern, name)

	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "JPGBYTES", string(content))
}

func TestDiskStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	store := NewDiskStore(dir)

	name, err := store.Save(context.Background(), strings.NewReader("JPGBYTES"), "tee.jpg")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}

func TestDiskStore_SaveSanitizesPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)

	name, err := store.Save(context.Background(), strings.NewReader("JPGBYTES"), "../../etc/evil.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_evil.png"), "got %q", name)
	assert.NotContains(t, name, "/")

	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}

func TestDiskStore_SaveEmptyNameFallsBack(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	name, err := store.Save(context.Background(), strings.NewReader("JPGBYTES"), "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_upload"), "got %q", name)
}

func TestDiskStore_ExistsAndOpen(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	ctx := context.Background()

	name, err := store.Save(ctx, strings.NewReader("JPGBYTES"), "tee.jpg")
	require.NoError(t, err)

	exists, err := store.Exists(ctx, name)
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := store.Open(ctx, name)
	require.NoError(t, err)
	defer reader.Close()
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "JPGBYTES", string(content))

	exists, err = store.Exists(ctx, "1700000000000_missing.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDiskStore_Delete(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	ctx := context.Background()

	name, err := store.Save(ctx, strings.NewReader("JPGBYTES"), "tee.jpg")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, name))

	exists, err := store.Exists(ctx, name)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDiskStore_DeleteMissingReturnsStorageError(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	err := store.Delete(context.Background(), "1700000000000_missing.jpg")
	assert.Error(t, err)
	assert.True(t, serviceerrors.IsStorage(err))
}

func TestDiskStore_ListSkipsTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)
	ctx := context.Background()

	name, err := store.Save(ctx, strings.NewReader("JPGBYTES"), "tee.jpg")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-abc"), []byte("partial"), 0o644))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{name}, names)
}

func TestDiskStore_ListMissingDirectory(t *testing.T) {
	store := NewDiskStore(filepath.Join(t.TempDir(), "never-created"))

	names, err := store.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, names)
}
