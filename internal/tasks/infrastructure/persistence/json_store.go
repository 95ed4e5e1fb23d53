package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
)

const corruptSuffix = ".corrupt"

// JSONStore keeps the task list in a single JSON document.
type JSONStore struct {
	dir  string
	path string
}

// NewJSONStore returns a store for dir/file, creating dir if needed.
func NewJSONStore(dir, file string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &PersistenceError{Op: "open", Path: dir, Err: err}
	}
	return &JSONStore{dir: dir, path: filepath.Join(dir, file)}, nil
}

// Path returns the document location.
func (s *JSONStore) Path() string {
	return s.path
}

// Save writes the whole list. The document is written to a temporary file in
// the same directory and renamed over the target, so readers never observe a
// partial write.
func (s *JSONStore) Save(ctx context.Context, m *task.Manager) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeJSON(NewDocument(m))
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	if err := writeAtomic(s.dir, s.path, data); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Load reads the list. A missing or empty file yields an empty list.
func (s *JSONStore) Load(ctx context.Context) (*task.Manager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return task.NewManager(), nil
		}
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	m, err := DecodeJSON(data)
	if err != nil {
		return nil, corrupt("load", s.path, err)
	}
	return m, nil
}

// Quarantine renames the document to "<path>.corrupt", replacing any earlier
// quarantined copy.
func (s *JSONStore) Quarantine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dest := s.path + corruptSuffix
	if err := os.Rename(s.path, dest); err != nil {
		return "", &PersistenceError{Op: "quarantine", Path: s.path, Err: err}
	}
	return dest, nil
}

// Close is a no-op.
func (s *JSONStore) Close() error {
	return nil
}

// EncodeJSON renders a document the way it is stored on disk.
func EncodeJSON(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeJSON validates and decodes a stored document. Blank input is an
// empty list.
func DecodeJSON(data []byte) (*task.Manager, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return task.NewManager(), nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return doc.Manager()
}

func writeAtomic(dir, path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
