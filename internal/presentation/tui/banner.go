package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`  ____        _         _             _`,
	` / ___| _   _| |__  ___| |_ _ __ __ _| |_ ___`,
	` \___ \| | | | '_ \/ __| __| '__/ _' | __/ _ \`,
	`  ___) | |_| | |_) \__ \ |_| | | (_| | ||  __/`,
	` |____/ \__,_|_.__/|___/\__|_|  \__,_|\__\___|`,
}

// Teal to indigo, one stop per line.
var bannerColors = []string{"#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa", "#818cf8"}

// PrintBanner writes the Substrate ASCII banner to w.
// Colors are dropped when w is not a color terminal.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).EnvColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, p.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
