package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/spf13/cobra"
)

func newAcceptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accepts <id|file> [words...]",
		Short: "Decide which words an automaton accepts",
		Long: `Evaluates each word and prints its verdict. Words come from the arguments, from --words,
or from the "<id>_words.txt" list next to the definition. Use "" for the empty word.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wordsFile, _ := cmd.Flags().GetString("words")
			asJSON, _ := cmd.Flags().GetBool("json")

			app, err := setup(cmd)
			if err != nil {
				return err
			}
			eng, id, err := app.target(args[0])
			if err != nil {
				return err
			}

			words := args[1:]
			switch {
			case wordsFile != "":
				fromFile, err := file.ReadWords(wordsFile)
				if err != nil {
					return err
				}
				words = append(words, fromFile...)
			case len(words) == 0:
				conventional, ok, err := app.wordsFor(id)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no words given and no %s%s found", id, file.WordsSuffix)
				}
				words = conventional
			}

			traces, err := eng.Evaluate(cmd.Context(), id, words)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(traces)
			}
			return render(cmd, tui.Verdicts(id, traces))
		},
	}
	cmd.Flags().StringP("words", "w", "", "File with one word per line")
	cmd.Flags().Bool("json", false, "Print the evaluation traces as JSON")
	return cmd
}
