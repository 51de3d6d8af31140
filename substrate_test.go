package substrate_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/substrate"
	"github.com/aretw0/substrate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_GridSize(t *testing.T) {
	d, err := substrate.New()
	require.NoError(t, err)
	assert.Equal(t, 15, d.Space().Size())

	d, err = substrate.New(substrate.WithGridSize(5))
	require.NoError(t, err)
	assert.False(t, d.Space().IsValid(3, 0))

	_, err = substrate.New(substrate.WithGridSize(4))
	assert.ErrorIs(t, err, domain.ErrInvalidGridSize)
}

func TestDesigner_LifecycleHooks(t *testing.T) {
	var (
		clicks []domain.OutcomeKind
		nodes  []domain.NodeEvent
		conns  []domain.ConnectionEvent
		modes  []domain.ModeEvent
	)
	hooks := domain.LifecycleHooks{
		OnClick:            func(_ context.Context, e *domain.ClickEvent) { clicks = append(clicks, e.Outcome.Kind) },
		OnNodeToggle:       func(_ context.Context, e *domain.NodeEvent) { nodes = append(nodes, *e) },
		OnConnectionToggle: func(_ context.Context, e *domain.ConnectionEvent) { conns = append(conns, *e) },
		OnModeChange:       func(_ context.Context, e *domain.ModeEvent) { modes = append(modes, *e) },
	}

	d, err := substrate.New(substrate.WithLifecycleHooks(hooks), substrate.WithName("sess-1"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, d.OnArmPlacement(ctx, domain.RoleInput))
	require.NoError(t, d.OnArmPlacement(ctx, domain.RoleInput)) // no-op, no event
	require.NoError(t, d.OnGridClick(ctx, 0, 0))
	require.NoError(t, d.OnGridClick(ctx, 3, 2))
	require.NoError(t, d.OnGridClick(ctx, 0, 0))

	assert.Equal(t, []domain.OutcomeKind{
		domain.OutcomeNodeAdded,
		domain.OutcomeEndpointSelected,
		domain.OutcomeConnectionAdded,
	}, clicks)

	require.Len(t, nodes, 1)
	assert.Equal(t, domain.RoleInput, nodes[0].Role)
	assert.True(t, nodes[0].Added)
	assert.Equal(t, "sess-1", nodes[0].Session)
	assert.Equal(t, domain.EventNodeToggle, nodes[0].Type)
	assert.False(t, nodes[0].Timestamp.IsZero())

	require.Len(t, conns, 1)
	assert.Equal(t, domain.Connect(domain.C(3, 2), domain.C(0, 0)), conns[0].Connection)

	require.Len(t, modes, 4)
	assert.Equal(t, domain.Armed(domain.RoleInput), modes[0].To)
	assert.Equal(t, domain.Idle(), modes[1].To)
	assert.Equal(t, domain.Selected(domain.C(3, 2)), modes[2].To)
	assert.Equal(t, domain.Idle(), modes[3].To)
}

func TestDesigner_InvalidClickIsLoggedAndRejected(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	clicked := false
	d, err := substrate.New(
		substrate.WithLogger(logger),
		substrate.WithLifecycleHooks(domain.LifecycleHooks{
			OnClick: func(context.Context, *domain.ClickEvent) { clicked = true },
		}),
	)
	require.NoError(t, err)

	err = d.OnGridClick(context.Background(), -8, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
	assert.False(t, clicked, "rejected clicks emit no events")
	assert.Contains(t, buf.String(), "Click rejected")
	assert.Equal(t, domain.Idle(), d.Mode())

	err = d.OnArmPlacement(context.Background(), domain.Role(0))
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestDesigner_ReadAccessors(t *testing.T) {
	d, err := substrate.New()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, d.OnGridClick(ctx, 1, 1))
	assert.True(t, d.IsSelected(1, 1))
	assert.True(t, d.Cell(1, 1).Selected)
	_, armed := d.ArmedRole()
	assert.False(t, armed)

	require.NoError(t, d.OnArmPlacement(ctx, domain.RoleOutput))
	assert.False(t, d.IsSelected(1, 1), "arming abandons the selection")
	role, armed := d.ArmedRole()
	assert.True(t, armed)
	assert.Equal(t, domain.RoleOutput, role)

	require.NoError(t, d.OnGridClick(ctx, 2, 2))
	require.NoError(t, d.OnGridClick(ctx, 1, 1))
	require.NoError(t, d.OnGridClick(ctx, 2, 2))

	assert.Equal(t, []domain.Coord{domain.C(2, 2)}, d.Outputs())
	assert.Empty(t, d.Inputs())
	assert.Equal(t, []domain.Coord{domain.C(1, 1)}, d.Hidden())
	assert.Len(t, d.Connections(), 1)

	snap := d.Snapshot()
	assert.Equal(t, d.Hidden(), snap.Hidden)
	assert.Equal(t, d.Connections(), snap.Connections)
}
