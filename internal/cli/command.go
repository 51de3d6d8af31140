package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/substrate/pkg/domain"
	"github.com/go-playground/validator/v10"
)

// CommandKind identifies an editor command.
type CommandKind int

const (
	CmdClick CommandKind = iota + 1
	CmdArm
	CmdShow
	CmdHelp
	CmdQuit
	CmdGraph
)

// Command is one parsed editor instruction.
type Command struct {
	Kind CommandKind
	X, Y int
	Role domain.Role
}

// ErrEmptyCommand is returned for blank lines.
var ErrEmptyCommand = errors.New("empty command")

const helpText = `Commands:
  click X Y | c X Y    click grid cell (X, Y)
  input | output       arm placement of an input or output node
  arm input|output     same as above
  show                 print the node and connection lists
  graph                print the substrate as a Mermaid flowchart
  help                 print this help
  quit | exit          leave the editor`

// ParseCommand parses a line of the text REPL.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "click", "c":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("usage: %s X Y", name)
		}
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("invalid X %q", args[0])
		}
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return Command{}, fmt.Errorf("invalid Y %q", args[1])
		}
		return Command{Kind: CmdClick, X: x, Y: y}, nil
	case "arm":
		if len(args) != 1 {
			return Command{}, errors.New("usage: arm input|output")
		}
		return armCommand(args[0])
	case "input", "in", "output", "out":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%s takes no arguments", name)
		}
		return armCommand(name)
	case "show", "ls":
		return Command{Kind: CmdShow}, nil
	case "graph", "mermaid":
		return Command{Kind: CmdGraph}, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "exit", "q":
		return Command{Kind: CmdQuit}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q (try help)", fields[0])
}

func armCommand(s string) (Command, error) {
	role, err := domain.ParseRole(s)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CmdArm, Role: role}, nil
}

// event is one NDJSON input line.
type event struct {
	Event string `json:"event" validate:"required,oneof=click arm show"`
	X     *int   `json:"x" validate:"required_if=Event click"`
	Y     *int   `json:"y" validate:"required_if=Event click"`
	Role  string `json:"role" validate:"required_if=Event arm"`
}

var validate = validator.New()

// ParseEvent parses one NDJSON line such as {"event":"click","x":0,"y":0}
// or {"event":"arm","role":"input"}.
func ParseEvent(line []byte) (Command, error) {
	var ev event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Command{}, fmt.Errorf("invalid event: %w", err)
	}
	if err := validate.Struct(ev); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "oneof" {
				return Command{}, fmt.Errorf("event must be one of: %s", fe.Param())
			}
			return Command{}, fmt.Errorf("%s is required", strings.ToLower(fe.Field()))
		}
		return Command{}, err
	}

	switch ev.Event {
	case "click":
		return Command{Kind: CmdClick, X: *ev.X, Y: *ev.Y}, nil
	case "arm":
		return armCommand(ev.Role)
	default:
		return Command{Kind: CmdShow}, nil
	}
}
