package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/substrate"
	"github.com/aretw0/substrate/internal/logging"
	"github.com/aretw0/substrate/internal/presentation/graph"
	"github.com/aretw0/substrate/internal/presentation/tui"
	"github.com/aretw0/substrate/pkg/domain"
)

// Editor drives one Designer from line-oriented input.
// In text mode it reads REPL commands and prints the lists after every change.
// In JSON mode it reads NDJSON events and answers each with one JSON line.
type Editor struct {
	designer  *substrate.Designer
	out       io.Writer
	presenter *tui.Presenter
	jsonMode  bool
	prompt    bool
	logger    *slog.Logger
}

// EditorOption configures the Editor.
type EditorOption func(*Editor)

// WithJSON switches the editor to NDJSON input and output.
func WithJSON(enabled bool) EditorOption {
	return func(e *Editor) { e.jsonMode = enabled }
}

// WithRichOutput renders the lists as styled markdown.
func WithRichOutput(enabled bool) EditorOption {
	return func(e *Editor) { e.presenter = tui.NewPresenter(e.out, enabled) }
}

// WithPrompt prints "> " before each read in text mode.
func WithPrompt(enabled bool) EditorOption {
	return func(e *Editor) { e.prompt = enabled }
}

// WithEditorLogger sets the editor's logger.
func WithEditorLogger(logger *slog.Logger) EditorOption {
	return func(e *Editor) { e.logger = logger }
}

// NewEditor creates an editor writing to out.
func NewEditor(d *substrate.Designer, out io.Writer, opts ...EditorOption) *Editor {
	e := &Editor{
		designer: d,
		out:      out,
		logger:   logging.NewNop(),
	}
	e.presenter = tui.NewPresenter(out, false)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run processes lines from in until EOF, a quit command or ctx cancellation.
// It returns nil on EOF and quit, and ctx.Err() when cancelled.
func (e *Editor) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	if !e.jsonMode {
		e.presenter.Message("Editing a %dx%d substrate. Type 'help' for commands.", e.designer.Space().Size(), e.designer.Space().Size())
	}

	for {
		if e.prompt && !e.jsonMode {
			fmt.Fprint(e.out, "> ")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("input error: %w", err)
				}
				return nil
			}
			var quit bool
			if e.jsonMode {
				quit = e.handleJSON(ctx, line)
			} else {
				quit = e.handleText(ctx, line)
			}
			if quit {
				return nil
			}
		}
	}
}

func (e *Editor) handleText(ctx context.Context, line string) bool {
	cmd, err := ParseCommand(line)
	if errors.Is(err, ErrEmptyCommand) {
		return false
	}
	if err != nil {
		e.presenter.Message("Error: %v", err)
		return false
	}

	switch cmd.Kind {
	case CmdQuit:
		e.presenter.Message("Bye!")
		return true
	case CmdHelp:
		fmt.Fprintln(e.out, helpText)
		return false
	case CmdGraph:
		fmt.Fprint(e.out, graph.GenerateMermaid(e.designer.Snapshot()))
		return false
	}

	if err := e.apply(ctx, cmd); err != nil {
		e.presenter.Message("Error: %v", err)
		return false
	}
	if err := e.presenter.Show(e.designer.Snapshot()); err != nil {
		e.logger.Error("Render failed", "err", err)
	}
	return false
}

type jsonReply struct {
	Snapshot *domain.Snapshot `json:"snapshot,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func (e *Editor) handleJSON(ctx context.Context, line string) bool {
	if len(line) == 0 {
		return false
	}
	reply := jsonReply{}
	cmd, err := ParseEvent([]byte(line))
	if err == nil {
		err = e.apply(ctx, cmd)
	}
	if err != nil {
		e.logger.Warn("Event rejected", "err", err)
		reply.Error = err.Error()
	} else {
		snap := e.designer.Snapshot()
		reply.Snapshot = &snap
	}
	if err := json.NewEncoder(e.out).Encode(reply); err != nil {
		e.logger.Error("Reply encode failed", "err", err)
	}
	return false
}

func (e *Editor) apply(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case CmdClick:
		return e.designer.OnGridClick(ctx, cmd.X, cmd.Y)
	case CmdArm:
		return e.designer.OnArmPlacement(ctx, cmd.Role)
	}
	return nil
}
