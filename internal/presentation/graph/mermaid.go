package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/substrate/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the substrate topology.
// It applies semantic styling:
// - Input: ((Circle))
// - Output: [[Subroutine]]
// - Hidden: [Rectangle]
// A point registered as both input and output is drawn once, as an input.
// The pending endpoint, if any, is highlighted.
func GenerateMermaid(snap domain.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	seen := make(map[domain.Coord]bool)
	node := func(c domain.Coord, opener, closer, class string) {
		if seen[c] {
			return
		}
		seen[c] = true
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s:::%s\n", mermaidID(c), opener, c, closer, class)
	}

	for _, c := range snap.Inputs {
		node(c, "((", "))", "input")
	}
	for _, c := range snap.Outputs {
		node(c, "[[", "]]", "output")
	}
	for _, c := range snap.Hidden {
		node(c, "[", "]", "hidden")
	}
	endpoint, selected := snap.Mode.PendingEndpoint()
	if selected {
		node(endpoint, "[", "]", "hidden")
	}

	// Connections are undirected
	for _, conn := range snap.Connections {
		fmt.Fprintf(&sb, "    %s --- %s\n", mermaidID(conn.A), mermaidID(conn.B))
	}

	sb.WriteString("\n    %% Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef input fill:#c8e6c9,stroke:#2e7d32,color:#000;\n")
	sb.WriteString("    classDef output fill:#ffcdd2,stroke:#c62828,color:#000;\n")
	sb.WriteString("    classDef hidden fill:#e1f5fe,stroke:#01579b,color:#000;\n")
	if selected {
		sb.WriteString("    classDef selected stroke:#fbc02d,stroke-width:4px;\n")
		fmt.Fprintf(&sb, "    class %s selected;\n", mermaidID(endpoint))
	}

	return sb.String()
}

// mermaidID turns (3, -2) into p3_m2.
func mermaidID(c domain.Coord) string {
	s := fmt.Sprintf("p%d_%d", c.X, c.Y)
	return strings.ReplaceAll(s, "-", "m")
}
