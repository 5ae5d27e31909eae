package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// FileTransport keeps the remote copy as a JSON document on disk
type FileTransport struct {
	path string
}

// NewFileTransport creates a transport writing to path
func NewFileTransport(path string) *FileTransport {
	return &FileTransport{path: path}
}

// Push writes the dataset to a temporary file and renames it into place
func (t *FileTransport) Push(ctx context.Context, data *entities.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.path), ".dataset-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", t.path, err)
	}
	return nil
}

// Pull reads the dataset back
func (t *FileTransport) Pull(ctx context.Context) (*entities.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(t.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.path, err)
	}
	var data entities.Dataset
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", t.path, err)
	}
	return &data, nil
}
