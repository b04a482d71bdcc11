// Package repository loads the roster table and serves immutable snapshots of it.
package repository

import (
	"context"

	"github.com/okian/dreamxi/internal/domain/model"
)

// Store provides read access to the current roster snapshot.
type Store interface {
	// Roster returns the current snapshot. Callers must not modify it.
	// Returns ErrNotLoaded before the first successful load.
	Roster(ctx context.Context) (*model.Roster, error)

	// Reload re-reads the source. On failure the previous snapshot stays current.
	Reload(ctx context.Context) error
}
