package state

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/imamik/dcdeploy/internal/util/naming"
)

// FileStore keeps ledgers as YAML files in a directory.
type FileStore struct {
	Dir string
}

// NewFileStore creates a store writing to dir. An empty dir means the working directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Save writes doc to a file named after its creation time.
func (s *FileStore) Save(_ context.Context, doc *Document) (string, error) {
	data, err := doc.Marshal()
	if err != nil {
		return "", err
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, naming.LedgerFile(doc.CreatedAt))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write ledger %s: %w", path, err)
	}
	return path, nil
}

// Load reads the ledger file at location.
func (s *FileStore) Load(_ context.Context, location string) (*Document, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read ledger %s: %w", location, err)
	}
	return Unmarshal(data)
}
