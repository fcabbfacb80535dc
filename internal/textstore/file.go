package textstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
)

// FileStore keeps one file per article, named by the zero-padded id.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating text store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file holding article id.
func (s *FileStore) Path(id int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%08d.txt", id))
}

// Put writes to a temporary file and renames it into place so readers never
// observe a partial article.
func (s *FileStore) Put(_ context.Context, id int, text string) error {
	finalPath := s.Path(id)
	tmpPath := finalPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp text file: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing article %d: %w", id, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing article %d: %w", id, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming article %d: %w", id, err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, id int) (string, error) {
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperrors.Newf(apperrors.ErrArticleTextMissing, "article %d: %s", id, s.Path(id))
		}
		return "", fmt.Errorf("reading article %d: %w", id, err)
	}
	return string(data), nil
}
