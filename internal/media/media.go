// Package media stores uploaded game images on an afero filesystem.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// MaxFileSize is the largest accepted upload.
const MaxFileSize = 20 << 20

var (
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrTooLarge        = errors.New("file too large")
	ErrEmpty           = errors.New("file is empty")
)

// StoredFile describes a file written by Save.
type StoredFile struct {
	Path     string
	URL      string
	MimeType string
	Size     int64
}

// Storage writes files under a root of fs and builds their public URLs.
type Storage struct {
	fs        afero.Fs
	publicURL string
}

// NewStorage returns a Storage over fs. publicURL is the base the files are
// served from, e.g. "http://localhost:8080/uploads".
func NewStorage(fs afero.Fs, publicURL string) *Storage {
	return &Storage{fs: fs, publicURL: strings.TrimRight(publicURL, "/")}
}

// NewOsStorage stores files on disk below dir.
func NewOsStorage(dir, publicURL string) (*Storage, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return NewStorage(afero.NewBasePathFs(osFs, dir), publicURL), nil
}

// FileSystem exposes the stored files for http.FileServer / gin StaticFS.
func (s *Storage) FileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs)
}

// Save sniffs r, rejects anything that is not an image and writes it to
// dir/name. An existing file is never overwritten; a numeric suffix is added instead.
func (s *Storage) Save(dir, name string, r io.Reader) (*StoredFile, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data) > MaxFileSize {
		return nil, ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}

	dir = path.Clean("/" + dir)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	filePath, err := s.freePath(dir, CleanName(name, mtype.Extension()))
	if err != nil {
		return nil, err
	}
	if err := afero.WriteReader(s.fs, filePath, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("write %s: %w", filePath, err)
	}

	return &StoredFile{
		Path:     filePath,
		URL:      s.publicURL + filePath,
		MimeType: mtype.String(),
		Size:     int64(len(data)),
	}, nil
}

func (s *Storage) freePath(dir, name string) (string, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := path.Join(dir, name)
	for i := 1; ; i++ {
		exists, err := afero.Exists(s.fs, candidate)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = path.Join(dir, fmt.Sprintf("%s-%d%s", stem, i, ext))
	}
}

// CleanName strips directories and unsafe characters from an uploaded file
// name, falling back to "file" and to ext when it has no extension.
func CleanName(name, ext string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	cleaned := strings.TrimLeft(b.String(), ".")
	if cleaned == "" {
		cleaned = "file"
	}
	if path.Ext(cleaned) == "" {
		cleaned += ext
	}
	return cleaned
}
