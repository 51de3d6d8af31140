package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/substrate"
	"github.com/aretw0/substrate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDesigner(t *testing.T) *substrate.Designer {
	t.Helper()
	d, err := substrate.New()
	require.NoError(t, err)
	return d
}

func TestEditor_TextMode(t *testing.T) {
	d := newDesigner(t)
	var out bytes.Buffer
	e := NewEditor(d, &out)

	script := strings.Join([]string{
		"input",
		"click 0 0",
		"",
		"c 3 2",
		"c 0 0",
		"click 9 9",
		"bogus",
		"help",
		"graph",
		"quit",
		"click 1 1", // never reached
	}, "\n")

	require.NoError(t, e.Run(context.Background(), strings.NewReader(script)))

	assert.Equal(t, []domain.Coord{domain.C(0, 0)}, d.Inputs())
	assert.Equal(t, []domain.Coord{domain.C(3, 2)}, d.Hidden())
	assert.False(t, d.IsSelected(1, 1))

	text := out.String()
	assert.Contains(t, text, ">>> Editing a 15x15 substrate.")
	assert.Contains(t, text, "Hidden (1): (3, 2)")
	assert.Contains(t, text, ">>> Error: invalid coordinate: (9, 9) outside [-7, 7]")
	assert.Contains(t, text, `>>> Error: unknown command "bogus"`)
	assert.Contains(t, text, "Commands:")
	assert.Contains(t, text, "p3_2 --- p0_0")
	assert.True(t, strings.HasSuffix(text, ">>> Bye!\n"))
}

func TestEditor_JSONMode(t *testing.T) {
	d := newDesigner(t)
	var out bytes.Buffer
	e := NewEditor(d, &out, WithJSON(true))

	input := `{"event":"arm","role":"output"}
{"event":"click","x":1,"y":1}
{"event":"click","x":1}

{"event":"show"}
`
	require.NoError(t, e.Run(context.Background(), strings.NewReader(input)))

	var replies []jsonReply
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var r jsonReply
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r), scanner.Text())
		replies = append(replies, r)
	}
	require.Len(t, replies, 4)

	assert.Equal(t, domain.Armed(domain.RoleOutput), replies[0].Snapshot.Mode)
	assert.Equal(t, []domain.Coord{domain.C(1, 1)}, replies[1].Snapshot.Outputs)
	assert.Nil(t, replies[2].Snapshot)
	assert.Equal(t, "y is required", replies[2].Error)
	assert.Equal(t, replies[1].Snapshot, replies[3].Snapshot)
}

func TestEditor_Cancel(t *testing.T) {
	d := newDesigner(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewEditor(d, io.Discard).Run(ctx, pr)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, IsInterrupted(err))
		assert.NoError(t, HandleExecutionError(err))
	case <-time.After(2 * time.Second):
		t.Fatal("editor did not stop on cancel")
	}
}

func TestEditor_Prompt(t *testing.T) {
	var out bytes.Buffer
	e := NewEditor(newDesigner(t), &out, WithPrompt(true))
	require.NoError(t, e.Run(context.Background(), strings.NewReader("show\n")))
	assert.Contains(t, out.String(), "Type 'help' for commands.\n> Mode: idle\n")
	assert.True(t, strings.HasSuffix(out.String(), "Connections (0): -\n> "))
}
