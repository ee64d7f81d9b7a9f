package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dreamtides/battlecore/internal/engineerr"
)

// FileStore is a SaveStore backed by one file per user identifier under a
// root directory. Save writes to a temp file in the same directory and
// renames it over the final path, which is atomic on the same filesystem
// (§6.2 "the store guarantees atomic replace").
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if absent.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &engineerr.SaveStoreError{Code: "mkdir_failed", Message: err.Error()}
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(userID string) string {
	return filepath.Join(s.dir, userID+".json")
}

func (s *FileStore) Load(_ context.Context, userID string) ([]byte, error) {
	data, err := os.ReadFile(s.path(userID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, &engineerr.SaveStoreError{Code: "not_found", Message: fmt.Sprintf("no save for user %s", userID)}
	}
	if err != nil {
		return nil, &engineerr.SaveStoreError{Code: "read_failed", Message: err.Error()}
	}
	return data, nil
}

func (s *FileStore) Save(_ context.Context, userID string, data []byte) error {
	final := s.path(userID)
	temp := final + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return &engineerr.SaveStoreError{Code: "write_failed", Message: err.Error()}
	}
	if err := os.Rename(temp, final); err != nil {
		return &engineerr.SaveStoreError{Code: "rename_failed", Message: err.Error()}
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, userID string) error {
	if err := os.Remove(s.path(userID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &engineerr.SaveStoreError{Code: "delete_failed", Message: err.Error()}
	}
	return nil
}
