package imaging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tanuki-quiz/internal/domain"

	"github.com/google/renameio/v2"
)

// FileStore reads and writes image files under the asset storage root.
type FileStore struct {
	root     string
	reserved map[string]struct{}
}

// NewFileStore creates the root and thumbnail directories if missing.
// Reserved names are never handed out to uploads.
func NewFileStore(root string, reserved ...string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(root, domain.ThumbnailDir), 0o755); err != nil {
		return nil, fmt.Errorf("create asset directories: %w", err)
	}
	r := map[string]struct{}{domain.ThumbnailDir: {}}
	for _, name := range reserved {
		r[name] = struct{}{}
	}
	return &FileStore{root: root, reserved: r}, nil
}

func (s *FileStore) Root() string { return s.root }

func (s *FileStore) OriginalPath(name string) string {
	return filepath.Join(s.root, name)
}

// ThumbnailPath is where the thumbnail of the original name lives.
func (s *FileStore) ThumbnailPath(name string) string {
	return filepath.Join(s.root, domain.ThumbnailDir, domain.ThumbnailName(name))
}

// ExistingNames lists every name in the root plus the reserved names.
func (s *FileStore) ExistingNames() (map[string]struct{}, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	names := make(map[string]struct{}, len(entries)+len(s.reserved))
	for name := range s.reserved {
		names[name] = struct{}{}
	}
	for _, e := range entries {
		names[e.Name()] = struct{}{}
	}
	return names, nil
}

// CreateOriginal writes data under name, failing with fs.ErrExist if the
// name is already taken. The file is never overwritten.
func (s *FileStore) CreateOriginal(name string, data []byte) error {
	f, err := os.OpenFile(s.OriginalPath(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteThumbnail atomically replaces the thumbnail for name.
func (s *FileStore) WriteThumbnail(name string, data []byte) error {
	return renameio.WriteFile(s.ThumbnailPath(name), data, 0o644)
}

func (s *FileStore) ReadOriginal(name string) ([]byte, error) {
	return os.ReadFile(s.OriginalPath(name))
}

// HasThumbnail reports whether a thumbnail file exists for name.
func (s *FileStore) HasThumbnail(name string) bool {
	info, err := os.Stat(s.ThumbnailPath(name))
	return err == nil && info.Mode().IsRegular()
}

// Remove deletes the original and thumbnail for name. Missing files are not
// an error.
func (s *FileStore) Remove(name string) error {
	var errs []error
	for _, p := range []string{s.OriginalPath(name), s.ThumbnailPath(name)} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
