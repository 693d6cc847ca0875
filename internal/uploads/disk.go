package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStore keeps uploads in a local directory, the way the site serves
// them from public/uploads.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid upload name: %q", name)
	}

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return RefPrefix + name, nil
}

func (s *DiskStore) Remove(_ context.Context, ref string) error {
	name, err := nameFromRef(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

func (s *DiskStore) List(_ context.Context) ([]StoredFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	out := make([]StoredFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue // removed between ReadDir and Info
			}
			return nil, fmt.Errorf("stat upload file: %w", err)
		}
		out = append(out, StoredFile{Ref: RefPrefix + e.Name(), ModTime: info.ModTime()})
	}
	return out, nil
}
