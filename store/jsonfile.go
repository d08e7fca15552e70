package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// RecordStore appends finalized conversation records to a durable
// collection.
type RecordStore interface {
	Load(ctx context.Context) ([]json.RawMessage, error)
	Append(ctx context.Context, entry any) error
}

// JSONStore keeps records as a single JSON array file, rewritten whole on
// every append. An unparsable file is logged and treated as empty, so the
// next append discards the prior content rather than failing the
// conversation. Writes are not atomic; a crash mid-write can corrupt the
// file. Single-writer only.
type JSONStore struct {
	path   string
	logger *zap.Logger
}

// NewJSONStore creates a store backed by the array file at path. A nil
// logger is replaced with a no-op one.
func NewJSONStore(path string, logger *zap.Logger) *JSONStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONStore{
		path:   path,
		logger: logger.With(zap.String("component", "json_store"), zap.String("path", path)),
	}
}

// Load reads the current array. A missing file is an empty collection; a
// parse failure is logged as a warning and also treated as empty.
func (s *JSONStore) Load(_ context.Context) ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("record file unparsable, treating as empty", zap.Error(err))
		return nil, nil
	}
	return entries, nil
}

// Append reads the existing array, appends entry, and writes the whole array
// back with two-space indentation.
func (s *JSONStore) Append(ctx context.Context, entry any) error {
	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	entries = append(entries, raw)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create record dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}

	s.logger.Debug("record appended", zap.Int("total", len(entries)))
	return nil
}

var _ RecordStore = (*JSONStore)(nil)
