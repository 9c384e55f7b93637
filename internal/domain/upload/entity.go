package upload

import (
	"io"
	"mime/multipart"
)

// File is an incoming upload as handed over by the transport layer.
// The stream returned by Open is read exactly once.
type File interface {
	Filename() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// Config is fixed at construction time.
type Config struct {
	UploadRoot    string // filesystem root, "uploads" when empty
	PublicBaseURL string // prefix of every returned URL
}

// formFile adapts a multipart part to File.
type formFile struct {
	header *multipart.FileHeader
}

// FromFileHeader wraps a multipart header. A nil header yields a nil File.
func FromFileHeader(fh *multipart.FileHeader) File {
	if fh == nil {
		return nil
	}
	return formFile{header: fh}
}

func (f formFile) Filename() string { return f.header.Filename }
func (f formFile) Size() int64      { return f.header.Size }

func (f formFile) Open() (io.ReadCloser, error) {
	return f.header.Open()
}
