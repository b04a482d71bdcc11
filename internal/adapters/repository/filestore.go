package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/okian/dreamxi/internal/domain/model"
	"github.com/okian/dreamxi/pkg/logger"
	"github.com/okian/dreamxi/pkg/metrics"
)

// LoadRoster reads a roster file, choosing the parser from its extension.
func LoadRoster(_ context.Context, path string) (*model.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ParseCSV(f)
	case ".xlsx", ".xlsm":
		return ParseXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FileStore serves the roster parsed from a file. The snapshot is swapped
// atomically on reload and never mutated, so readers need no locking.
type FileStore struct {
	path    string
	current atomic.Pointer[model.Roster]
	logger  logger.Logger
}

// NewFileStore creates a store for path. Nothing is read until Reload.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStaticStore wraps an already built roster; Reload is a no-op.
func NewStaticStore(r *model.Roster) *FileStore {
	s := &FileStore{}
	s.current.Store(r)
	return s
}

// Path returns the source file path.
func (s *FileStore) Path() string { return s.path }

// Roster returns the current snapshot.
func (s *FileStore) Roster(_ context.Context) (*model.Roster, error) {
	r := s.current.Load()
	if r == nil {
		return nil, ErrNotLoaded
	}
	return r, nil
}

// Reload parses the file again and publishes the result on success.
func (s *FileStore) Reload(ctx context.Context) error {
	if s.path == "" {
		if s.current.Load() == nil {
			return ErrNotLoaded
		}
		return nil
	}

	start := time.Now()
	r, err := LoadRoster(ctx, s.path)
	if err != nil {
		metrics.RecordRosterReload(false)
		if s.logger != nil {
			s.logger.Warn(ctx, "roster reload failed", logger.String("path", s.path), logger.Error(err))
		}
		return err
	}
	s.current.Store(r)

	metrics.RecordRosterReload(true)
	metrics.UpdateRosterSize(r.Len(), len(r.Owners()), len(r.Days()))
	if s.logger != nil {
		s.logger.Info(ctx, "roster loaded",
			logger.String("path", s.path),
			logger.Int("players", r.Len()),
			logger.Int("owners", len(r.Owners())),
			logger.Int("days", len(r.Days())),
			logger.Duration("took", time.Since(start)),
		)
	}
	return nil
}
