package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner shown by the serve commands.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"              _                        _", "#818cf8"},
		{"   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _", "#a78bfa"},
		{"  / _` | | | | __/ _ \\| '_ ` _ \\ / _` | __/ _` |", "#c084fc"},
		{" | (_| | |_| | || (_) | | | | | | (_| | || (_| |", "#e879f9"},
		{"  \\__,_|\\__,_|\\__\\___/|_| |_| |_|\\__,_|\\__\\__,_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
