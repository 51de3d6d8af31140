package cli

import (
	"testing"

	"github.com/aretw0/substrate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"click 3 -2", Command{Kind: CmdClick, X: 3, Y: -2}},
		{"  C 0 0 ", Command{Kind: CmdClick}},
		{"input", Command{Kind: CmdArm, Role: domain.RoleInput}},
		{"out", Command{Kind: CmdArm, Role: domain.RoleOutput}},
		{"arm OUTPUT", Command{Kind: CmdArm, Role: domain.RoleOutput}},
		{"show", Command{Kind: CmdShow}},
		{"mermaid", Command{Kind: CmdGraph}},
		{"?", Command{Kind: CmdHelp}},
		{"exit", Command{Kind: CmdQuit}},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestParseCommand_Errors(t *testing.T) {
	_, err := ParseCommand("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)

	for _, line := range []string{"click 1", "click a 1", "click 1 b", "arm", "arm hidden", "input 1", "jump"} {
		_, err := ParseCommand(line)
		assert.Error(t, err, line)
	}

	_, err = ParseCommand("arm bias")
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestParseEvent(t *testing.T) {
	got, err := ParseEvent([]byte(`{"event":"click","x":0,"y":-7}`))
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CmdClick, X: 0, Y: -7}, got)

	got, err = ParseEvent([]byte(`{"event":"arm","role":"input"}`))
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CmdArm, Role: domain.RoleInput}, got)

	got, err = ParseEvent([]byte(`{"event":"show"}`))
	require.NoError(t, err)
	assert.Equal(t, CmdShow, got.Kind)
}

func TestParseEvent_Errors(t *testing.T) {
	tests := []struct {
		line string
		msg  string
	}{
		{`{"event":"click","x":1}`, "y is required"},
		{`{"event":"arm"}`, "role is required"},
		{`{"event":"jump"}`, "event must be one of"},
		{`{}`, "event is required"},
		{`not json`, "invalid event"},
		{`{"event":"arm","role":"bias"}`, "unknown node role"},
	}
	for _, tt := range tests {
		_, err := ParseEvent([]byte(tt.line))
		assert.ErrorContains(t, err, tt.msg, tt.line)
	}
}
