package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/substrate"
	"github.com/aretw0/substrate/pkg/adapters/memory"
	"github.com/aretw0/substrate/pkg/domain"
	"github.com/aretw0/substrate/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_StartGeneratesID(t *testing.T) {
	manager := session.NewManager(memory.NewStore(),
		session.WithIDGenerator(func() string { return "fixed-id" }))
	ctx := context.Background()

	id, err := manager.Start(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	_, err = manager.Start(ctx, "")
	assert.ErrorIs(t, err, domain.ErrSessionExists)
}

func TestManager_StartDefaultUUID(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	id, err := manager.Start(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, id, 36)
}

func TestManager_DesignerOptions(t *testing.T) {
	manager := session.NewManager(memory.NewStore(),
		session.WithDesignerOptions(substrate.WithGridSize(5)))
	ctx := context.Background()

	id, err := manager.Start(ctx, "small")
	require.NoError(t, err)

	snap, err := manager.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.GridSize)

	err = manager.Do(ctx, id, func(ctx context.Context, d *substrate.Designer) error {
		assert.Equal(t, "small", d.Name)
		return d.OnGridClick(ctx, 3, 0)
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
}

func TestManager_InvalidDesignerOptions(t *testing.T) {
	manager := session.NewManager(memory.NewStore(),
		session.WithDesignerOptions(substrate.WithGridSize(2)))
	_, err := manager.Start(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidGridSize)

	ids, err := manager.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestManager_NotFound(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := manager.View(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, manager.Delete(ctx, "missing"), domain.ErrSessionNotFound)
}

func TestManager_Hooks(t *testing.T) {
	var started, deleted []string
	manager := session.NewManager(memory.NewStore(), session.WithHooks(session.Hooks{
		OnStart:  func(_ context.Context, id string) { started = append(started, id) },
		OnDelete: func(_ context.Context, id string) { deleted = append(deleted, id) },
	}))
	ctx := context.Background()

	_, err := manager.Start(ctx, "a")
	require.NoError(t, err)
	_, err = manager.Start(ctx, "a")
	require.Error(t, err)
	require.NoError(t, manager.Delete(ctx, "a"))

	assert.Equal(t, []string{"a"}, started)
	assert.Equal(t, []string{"a"}, deleted)
}

func TestManager_CancelledContext(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := manager.Start(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

// Concurrent clicks on one session must never interleave: with serialized access,
// every pair of clicks from one goroutine lands as a select-then-connect.
func TestManager_SerializesClicks(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()
	id, err := manager.Start(ctx, "race-test")
	require.NoError(t, err)

	var wg sync.WaitGroup
	workers := 7
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			err := manager.Do(ctx, id, func(ctx context.Context, d *substrate.Designer) error {
				if err := d.OnGridClick(ctx, x-3, 0); err != nil {
					return err
				}
				return d.OnGridClick(ctx, x-3, 1)
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	snap, err := manager.View(ctx, id)
	require.NoError(t, err)
	assert.Len(t, snap.Connections, workers)
	assert.Equal(t, domain.Idle(), snap.Mode)
	assert.Len(t, snap.Hidden, 2*workers)
}
