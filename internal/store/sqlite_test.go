package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/engine"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleReport() *engine.Report {
	return &engine.Report{
		GeneratedAt: time.Now().UTC(),
		Rows:        42,
		Users:       7,
		CycleDays:   9.5,
	}
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	snap, err := s.SaveSnapshot(ctx, "data/", sampleReport())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, 42, snap.Rows)

	got, err := s.GetSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, "data/", got.Source)

	report, err := got.DecodeReport()
	require.NoError(t, err)
	assert.Equal(t, 42, report.Rows)
	assert.InDelta(t, 9.5, report.CycleDays, 1e-9)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSnapshot(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_LatestAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.SaveSnapshot(ctx, "a", sampleReport())
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.SaveSnapshot(ctx, "b", sampleReport())
	require.NoError(t, err)

	latest, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	snaps, err := s.ListSnapshots(ctx, 0)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, second.ID, snaps[0].ID)
	assert.Equal(t, first.ID, snaps[1].ID)
	// listing omits the payload
	assert.Nil(t, snaps[0].Report)

	limited, err := s.ListSnapshots(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	snap, err := s.SaveSnapshot(ctx, "a", sampleReport())
	require.NoError(t, err)

	require.NoError(t, s.DeleteSnapshot(ctx, snap.ID))
	assert.ErrorIs(t, s.DeleteSnapshot(ctx, snap.ID), ErrNotFound)
}
