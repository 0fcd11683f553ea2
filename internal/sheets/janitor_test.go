package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteAllOwned_ToleratesPerItemFailures(t *testing.T) {
	backend := newMemBackend()
	now := time.Now()
	backend.seed("s1", "Batch A", "", now)
	backend.seed("s2", "Batch B", "", now)
	backend.seed("s3", "Batch C", "", now)
	backend.deleteErr["s2"] = errors.New("insufficient permissions")

	report, err := NewJanitor(backend, 0, nil).DeleteAllOwned(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Found)
	assert.Equal(t, 2, report.Deleted)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "s2", report.Failed[0].ID)
	assert.Equal(t, 3, backend.count("delete"))

	remaining, err := backend.ListOwned(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "s2", remaining[0].ID)
}

func TestDeleteAllOwned_Empty(t *testing.T) {
	report, err := NewJanitor(newMemBackend(), 0, nil).DeleteAllOwned(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CleanupReport{}, report)
}

func TestDeleteAllOwned_StopsOnCancel(t *testing.T) {
	backend := newMemBackend()
	backend.seed("s1", "Batch A", "", time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewJanitor(backend, 0, nil).DeleteAllOwned(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Deleted)
}
