package main

import (
	"strings"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <id|file>",
		Short: "Describe an automaton and check it",
		Long: `Prints the states, transitions and alphabet of an automaton, whether it is deterministic,
and, when a "<id>_words.txt" list sits next to the definition, the verdict for each of its words.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			eng, id, err := app.target(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := eng.Automaton(ctx, id)
			if err != nil {
				return err
			}
			_, conflicts, err := eng.IsDeterministic(ctx, id)
			if err != nil {
				return err
			}

			var sb strings.Builder
			sb.WriteString(tui.Describe(a))
			sb.WriteString("\n## Determinism\n\n")
			sb.WriteString(tui.Determinism(a.Name, conflicts))

			words, ok, err := app.wordsFor(id)
			if err != nil {
				return err
			}
			if ok {
				traces, err := eng.Evaluate(ctx, id, words)
				if err != nil {
					return err
				}
				sb.WriteString("\n")
				sb.WriteString(tui.Verdicts("Words", traces))
			}

			return render(cmd, sb.String())
		},
	}
}
