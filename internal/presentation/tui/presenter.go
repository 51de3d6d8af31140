package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/substrate/pkg/domain"
)

// Presenter prints snapshots as the four node and connection lists plus the mode.
type Presenter struct {
	out    io.Writer
	render func(string) (string, error) // nil for plain text
}

// NewPresenter returns a presenter writing to out.
// With rich set the lists are rendered as styled markdown.
func NewPresenter(out io.Writer, rich bool) *Presenter {
	p := &Presenter{out: out}
	if rich {
		p.render = NewRenderer()
	}
	return p
}

// Show prints snap.
func (p *Presenter) Show(snap domain.Snapshot) error {
	if p.render == nil {
		_, err := io.WriteString(p.out, Plain(snap))
		return err
	}
	text, err := p.render(Markdown(snap))
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.out, text)
	return err
}

// Message prints a standardized system message.
func (p *Presenter) Message(format string, args ...any) {
	fmt.Fprintf(p.out, ">>> %s\n", fmt.Sprintf(format, args...))
}

// Plain formats snap as one line per collection.
func Plain(snap domain.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mode: %s\n", snap.Mode)
	writePlain(&b, "Inputs", snap.Inputs)
	writePlain(&b, "Outputs", snap.Outputs)
	writePlain(&b, "Hidden", snap.Hidden)
	writePlain(&b, "Connections", snap.Connections)
	return b.String()
}

func writePlain[T fmt.Stringer](b *strings.Builder, title string, items []T) {
	fmt.Fprintf(b, "%s (%d): ", title, len(items))
	if len(items) == 0 {
		b.WriteString("-\n")
		return
	}
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(it.String())
	}
	b.WriteByte('\n')
}

// Markdown formats snap as a markdown document with one section per collection.
func Markdown(snap domain.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Substrate %dx%d\n\n", snap.GridSize, snap.GridSize)
	fmt.Fprintf(&b, "**Mode:** `%s`\n\n", snap.Mode)
	writeSection(&b, "Input Nodes", snap.Inputs)
	writeSection(&b, "Output Nodes", snap.Outputs)
	writeSection(&b, "Hidden Nodes", snap.Hidden)
	writeSection(&b, "Connections", snap.Connections)
	return b.String()
}

func writeSection[T fmt.Stringer](b *strings.Builder, title string, items []T) {
	fmt.Fprintf(b, "## %s (%d)\n\n", title, len(items))
	if len(items) == 0 {
		b.WriteString("_none_\n\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "- `%s`\n", it)
	}
	b.WriteByte('\n')
}
