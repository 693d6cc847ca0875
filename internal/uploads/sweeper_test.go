package uploads

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	files   []StoredFile
	removed []string
}

func (f *fakeStore) Save(context.Context, string, string, io.Reader) (string, error) {
	return "", nil
}

func (f *fakeStore) Remove(_ context.Context, ref string) error {
	f.removed = append(f.removed, ref)
	return nil
}

func (f *fakeStore) List(context.Context) ([]StoredFile, error) {
	return f.files, nil
}

type fakeRefs struct{ refs []string }

func (f fakeRefs) ImageRefs(context.Context) ([]string, error) {
	return f.refs, nil
}

func TestSweeper_Sweep(t *testing.T) {
	old := time.Now().Add(-2 * time.Hour)
	fresh := time.Now()

	store := &fakeStore{files: []StoredFile{
		{Ref: "/uploads/referenced.jpg", ModTime: old},
		{Ref: "/uploads/orphan-old.jpg", ModTime: old},
		{Ref: "/uploads/orphan-fresh.jpg", ModTime: fresh},
	}}
	refs := fakeRefs{refs: []string{"/uploads/referenced.jpg", "/img/demo-image-1.jpg"}}

	sw := NewSweeper(store, refs, nil)
	removed, err := sw.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"/uploads/orphan-old.jpg"}, store.removed,
		"only unreferenced files past the grace period are collected")
}

func TestSweeper_NothingToDo(t *testing.T) {
	store := &fakeStore{}
	sw := NewSweeper(store, fakeRefs{}, nil)

	removed, err := sw.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Empty(t, store.removed)
}
