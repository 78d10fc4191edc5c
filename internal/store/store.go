// Package store persists analysis snapshots: a report serialized to
// JSON together with summary columns, so past runs can be listed and
// compared without recomputing.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/glowlab/retention-cli/internal/config"
	"github.com/glowlab/retention-cli/internal/engine"
)

// Snapshot is one persisted analysis run.
type Snapshot struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Rows      int             `json:"rows"`
	Users     int             `json:"users"`
	Report    json.RawMessage `json:"report,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// DecodeReport unmarshals the snapshot's report payload.
func (s *Snapshot) DecodeReport() (*engine.Report, error) {
	var r engine.Report
	if err := json.Unmarshal(s.Report, &r); err != nil {
		return nil, eris.Wrapf(err, "store: decode report of snapshot %s", s.ID)
	}
	return &r, nil
}

// Store defines the snapshot persistence interface.
type Store interface {
	SaveSnapshot(ctx context.Context, source string, report *engine.Report) (*Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
	// ListSnapshots returns snapshot metadata newest first, without the
	// report payload. limit <= 0 means no limit.
	ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error)
	DeleteSnapshot(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}

// ErrNotFound is returned when a snapshot id does not exist.
var ErrNotFound = eris.New("store: snapshot not found")

// Open creates the configured store backend and runs migrations.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case "sqlite", "":
		s, err = NewSQLite(cfg.Path)
	case "postgres":
		s, err = NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
