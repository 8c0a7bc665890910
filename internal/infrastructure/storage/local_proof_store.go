// Package storage persists payment proof files on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kosman/kosman-api/internal/application/usecase"
)

var _ usecase.ProofStore = (*LocalProofStore)(nil)

// LocalProofStore writes proof files under a base directory and returns the
// stored filename as the proof reference.
type LocalProofStore struct {
	dir string
}

// NewLocalProofStore builds the store and creates the base directory.
func NewLocalProofStore(dir string) (*LocalProofStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalProofStore{dir: dir}, nil
}

// Save writes the proof bytes. The filename embeds the bill id and a random
// suffix so repeated uploads never overwrite each other.
func (s *LocalProofStore) Save(_ context.Context, billID string, data []byte, ext string) (string, error) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "bin"
	}
	name := fmt.Sprintf("%s_%s.%s", billID, uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write proof file: %w", err)
	}
	return name, nil
}

// Path resolves a stored reference back to an absolute file path.
func (s *LocalProofStore) Path(reference string) string {
	return filepath.Join(s.dir, filepath.Base(reference))
}
