package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxFileSize       = 10 * 1024 * 1024 // 10 MB
	DefaultUploadRoot = "uploads"
)

// AllowedExtensions lists the accepted image extensions, lower case.
var AllowedExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}

// Service validates images and copies them into a Store.
// Simple: validate -> mkdir -> uuid name -> copy -> URL.
type Service struct {
	store      Store
	uploadRoot string
	baseURL    string
}

// NewService builds a Service. A nil store means a DiskStore rooted at
// cfg.UploadRoot.
func NewService(cfg Config, store Store) *Service {
	if cfg.UploadRoot == "" {
		cfg.UploadRoot = DefaultUploadRoot
	}
	if store == nil {
		store = NewDiskStore(cfg.UploadRoot)
	}
	return &Service{store: store, uploadRoot: cfg.UploadRoot, baseURL: cfg.PublicBaseURL}
}

// UploadOne stores a single image under subDirectory and returns its public URL.
// Validation errors are returned before anything touches the store.
func (s *Service) UploadOne(ctx context.Context, file File, subDirectory string) (string, error) {
	ext, err := Validate(file)
	if err != nil {
		return "", err
	}

	if err := s.ensureDir(ctx, subDirectory); err != nil {
		return "", err
	}

	filename := uuid.NewString() + "." + ext
	target := path.Join(subDirectory, filename)

	src, err := file.Open()
	if err != nil {
		return "", ioFailure("open upload stream", err)
	}
	defer src.Close()

	if _, err := s.store.Write(ctx, target, newCappedReader(src, MaxFileSize)); err != nil {
		// never leave a truncated image behind
		_ = s.store.Remove(context.WithoutCancel(ctx), target)
		if errors.Is(err, ErrFileTooLarge) {
			return "", invalidInput(ErrFileTooLarge)
		}
		return "", ioFailure("write "+path.Join(s.uploadRoot, target), err)
	}

	return s.URL(subDirectory, filename), nil
}

// UploadMany uploads every present, non-empty file in order. The first
// failure aborts the batch; files already written stay where they are.
func (s *Service) UploadMany(ctx context.Context, files []File, subDirectory string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		if f == nil || f.Size() == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, ioFailure("batch upload cancelled", err)
		}

		url, err := s.UploadOne(ctx, f, subDirectory)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// URL composes <base>/uploads/<sub>/<name> by plain substitution.
func (s *Service) URL(subDirectory, filename string) string {
	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, subDirectory, filename)
}

// ensureDir tolerates one failed attempt: two requests creating the same
// new directory may race on some filesystems.
func (s *Service) ensureDir(ctx context.Context, dir string) error {
	err := s.store.MkdirAll(ctx, dir)
	if err != nil && ctx.Err() == nil {
		err = s.store.MkdirAll(ctx, dir)
	}
	if err != nil {
		return ioFailure("create directory "+path.Join(s.uploadRoot, dir), err)
	}
	return nil
}

// Validate checks presence, declared size and extension, returning the
// lower-cased extension of an acceptable file.
func Validate(file File) (string, error) {
	if file == nil || file.Size() == 0 {
		return "", invalidInput(ErrEmptyFile)
	}
	if file.Size() > MaxFileSize {
		return "", invalidInput(ErrFileTooLarge)
	}

	ext := Extension(file.Filename())
	if !slices.Contains(AllowedExtensions, ext) {
		return "", invalidInput(ErrExtensionNotAllowed)
	}
	return ext, nil
}

// Extension returns the lower-cased text after the last dot, or "".
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// cappedReader fails with ErrFileTooLarge once more than limit bytes have
// been read, whatever size the client declared.
type cappedReader struct {
	r         io.Reader
	remaining int64
}

func newCappedReader(r io.Reader, limit int64) *cappedReader {
	return &cappedReader{r: r, remaining: limit}
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, ErrFileTooLarge
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, ErrFileTooLarge
	}
	return n, err
}
