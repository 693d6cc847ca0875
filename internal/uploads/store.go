package uploads

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RefPrefix is the public path prefix every stored upload is addressed
// under, regardless of backend.
const RefPrefix = "/uploads/"

// StoredFile describes one stored upload, for the reconciliation sweep.
type StoredFile struct {
	Ref     string
	ModTime time.Time
}

// Store persists uploaded image files and addresses them by reference
// path ("/uploads/<name>").
type Store interface {
	// Save stores the file under the given name and returns its
	// reference path.
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	// Remove deletes the file behind ref. Removing an already-absent
	// file is not an error.
	Remove(ctx context.Context, ref string) error
	// List returns every stored upload.
	List(ctx context.Context) ([]StoredFile, error)
}

// NewFilename assigns a fresh unique name keeping the original
// extension.
func NewFilename(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}

// IsRef reports whether ref addresses a stored upload.
func IsRef(ref string) bool {
	return strings.HasPrefix(ref, RefPrefix)
}

// nameFromRef extracts the bare file name, rejecting anything that
// would escape the storage root.
func nameFromRef(ref string) (string, error) {
	if !IsRef(ref) {
		return "", fmt.Errorf("not an upload ref: %q", ref)
	}
	name := strings.TrimPrefix(ref, RefPrefix)
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid upload ref: %q", ref)
	}
	return name, nil
}
