package uploads

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilename(t *testing.T) {
	name := NewFilename("My Photo.JPG")
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotEqual(t, NewFilename("a.png"), NewFilename("a.png"))
}

func TestDiskStore_SaveRemoveList(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := store.Save(ctx, "abc.jpg", "image/jpeg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc.jpg", ref)

	data, err := os.ReadFile(filepath.Join(dir, "uploads", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	files, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ref, files[0].Ref)
	assert.False(t, files[0].ModTime.IsZero())

	require.NoError(t, store.Remove(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, "uploads", "abc.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_RemoveAbsentIsNotAnError(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(context.Background(), "/uploads/gone.jpg"))
}

func TestDiskStore_RejectsNonUploadRefs(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	assert.Error(t, store.Remove(ctx, "/img/demo-image-1.jpg"))
	assert.Error(t, store.Remove(ctx, "/uploads/../escape.jpg"))
}

func TestDiskStore_SaveRejectsDuplicateName(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Save(ctx, "x.jpg", "image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "x.jpg", "image/jpeg", strings.NewReader("b"))
	assert.Error(t, err)
}
