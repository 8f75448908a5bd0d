package automata

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Runner evaluates words read line by line against one automaton.
// This allows for easy testing and integration with different frontends (CLI, pipes).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner over the given IO.
func NewRunner(input io.Reader, output io.Writer) *Runner {
	return &Runner{
		Input:  input,
		Output: output,
	}
}

// Run reads words until EOF, "exit" or "quit", writing one verdict per word.
// An empty line is the empty word. Headless mode prints "<word>\t<true|false>" lines
// without prompts, for scripting.
func (r *Runner) Run(ctx context.Context, engine *Engine, id string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	a, err := engine.Automaton(ctx, id)
	if err != nil {
		return err
	}

	if !r.Headless {
		header := fmt.Sprintf("**%s**: type a word per line, `exit` to quit.", a.Name)
		fmt.Fprintln(r.Output, strings.TrimSpace(r.render(header)))
	}

	lineReader := bufio.NewReader(r.Input)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}

		text, err := lineReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("input error: %w", err)
		}
		if errors.Is(err, io.EOF) && text == "" {
			break
		}
		word := strings.TrimRight(text, "\r\n")

		if !r.Headless && (word == "exit" || word == "quit") {
			fmt.Fprintln(r.Output, "Bye!")
			break
		}

		traces, evalErr := engine.Evaluate(ctx, id, []string{word})
		if evalErr != nil {
			return evalErr
		}
		trace := traces[0]

		if r.Headless {
			fmt.Fprintf(r.Output, "%s\t%t\n", word, trace.Accepted)
		} else if trace.Accepted {
			fmt.Fprintln(r.Output, "accepted")
		} else {
			fmt.Fprintf(r.Output, "rejected (%s)\n", trace.Reason)
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}
	return nil
}

func (r *Runner) render(markdown string) string {
	if r.Renderer == nil {
		return markdown
	}
	rendered, err := r.Renderer(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
