package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/substrate"
	"github.com/aretw0/substrate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	newDesigner := func(t *testing.T) *substrate.Designer {
		d, err := substrate.New()
		require.NoError(t, err)
		return d
	}

	t.Run("Create and Get", func(t *testing.T) {
		d := newDesigner(t)
		require.NoError(t, d.OnGridClick(ctx, 1, 1))

		err := store.Create(ctx, sessionID, d)
		require.NoError(t, err, "Create should not return error")

		got, err := store.Get(ctx, sessionID)
		require.NoError(t, err, "Get should not return error")
		assert.Same(t, d, got, "Get must return the live designer")
		assert.True(t, got.IsSelected(1, 1))
	})

	t.Run("Create Duplicate", func(t *testing.T) {
		err := store.Create(ctx, sessionID, newDesigner(t))
		assert.ErrorIs(t, err, domain.ErrSessionExists)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Get(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Get after Delete should return ErrSessionNotFound")

		err = store.Delete(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Delete is not idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-b"
		id2 := sessionID + "-a"
		require.NoError(t, store.Create(ctx, id1, newDesigner(t)))
		require.NoError(t, store.Create(ctx, id2, newDesigner(t)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
		assert.IsNonDecreasing(t, sessions)
	})
}
