package upload

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

// Store is the byte sink behind Service. Paths are slash separated and
// relative to the store root.
type Store interface {
	MkdirAll(ctx context.Context, dir string) error
	Write(ctx context.Context, path string, r io.Reader) (int64, error)
	Remove(ctx context.Context, path string) error
}

// DiskStore keeps uploads on a billy filesystem, normally the local disk.
type DiskStore struct {
	fs billy.Filesystem
}

// NewDiskStore roots a store at dir on the local disk.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{fs: osfs.New(dir)}
}

// NewMemoryStore keeps everything in memory. Used by tests and dry runs.
func NewMemoryStore() *DiskStore {
	return &DiskStore{fs: memfs.New()}
}

// Filesystem exposes the underlying billy filesystem for reads.
func (s *DiskStore) Filesystem() billy.Filesystem { return s.fs }

func (s *DiskStore) MkdirAll(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("disk: mkdirall %q: %w", dir, err)
	}
	return nil
}

// Write creates or truncates path and copies r into it.
func (s *DiskStore) Write(ctx context.Context, path string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(path)
	if err != nil {
		return 0, fmt.Errorf("disk: create %q: %w", path, err)
	}

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("disk: write %q: %w", path, err)
	}
	return n, nil
}

func (s *DiskStore) Remove(_ context.Context, path string) error {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disk: remove %q: %w", path, err)
	}
	return nil
}
