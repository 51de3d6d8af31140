package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/substrate/pkg/adapters/memory"
	"github.com/aretw0/substrate/pkg/domain"
	"github.com/aretw0/substrate/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(session.NewManager(memory.NewStore()))
}

func TestTools_EditSession(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	created, err := s.handleCreateSession(ctx, req, createSessionArgs{SessionID: "agent"})
	require.NoError(t, err)
	assert.Equal(t, "agent", created.SessionID)
	assert.Equal(t, domain.Idle(), created.Snapshot.Mode)

	_, err = s.handleArm(ctx, req, armArgs{SessionID: "agent", Role: "output"})
	require.NoError(t, err)
	_, err = s.handleClick(ctx, req, clickArgs{SessionID: "agent", X: 2, Y: 2})
	require.NoError(t, err)
	_, err = s.handleClick(ctx, req, clickArgs{SessionID: "agent", X: -1, Y: 0})
	require.NoError(t, err)
	resp, err := s.handleClick(ctx, req, clickArgs{SessionID: "agent", X: 2, Y: 2})
	require.NoError(t, err)

	assert.Equal(t, []domain.Coord{domain.C(2, 2)}, resp.Snapshot.Outputs)
	assert.Equal(t, []domain.Coord{domain.C(-1, 0)}, resp.Snapshot.Hidden)

	got, err := s.handleGetSubstrate(ctx, req, sessionArgs{SessionID: "agent"})
	require.NoError(t, err)
	assert.Equal(t, resp, got)
}

func TestTools_Errors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleClick(ctx, req, clickArgs{SessionID: "missing"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = s.handleCreateSession(ctx, req, createSessionArgs{SessionID: "x"})
	require.NoError(t, err)

	_, err = s.handleClick(ctx, req, clickArgs{SessionID: "x", X: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)

	_, err = s.handleArm(ctx, req, armArgs{SessionID: "x", Role: "bias"})
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestResources(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleCreateSession(ctx, mcp.CallToolRequest{}, createSessionArgs{SessionID: "b"})
	require.NoError(t, err)
	_, err = s.handleCreateSession(ctx, mcp.CallToolRequest{}, createSessionArgs{SessionID: "a"})
	require.NoError(t, err)

	contents, err := s.readSessions(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text := contents[0].(mcp.TextResourceContents)
	assert.JSONEq(t, `["a","b"]`, text.Text)

	var req mcp.ReadResourceRequest
	req.Params.URI = "substrate://sessions/a"
	contents, err = s.readSession(ctx, req)
	require.NoError(t, err)
	text = contents[0].(mcp.TextResourceContents)
	assert.Equal(t, "substrate://sessions/a", text.URI)
	assert.Contains(t, text.Text, `"grid_size":15`)

	req.Params.URI = "substrate://sessions/zzz"
	_, err = s.readSession(ctx, req)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
