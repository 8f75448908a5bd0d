package main

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <id|file>",
		Short: "Export the automaton as a Mermaid diagram",
		Long: `Outputs a Mermaid flowchart (graph LR) of the automaton. With --word, the states visited while
reading the word are highlighted and the final set is coloured by the verdict.`,
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

			var trace *domain.Trace
			if cmd.Flags().Changed("word") {
				word, _ := cmd.Flags().GetString("word")
				traces, err := eng.Evaluate(cmd.Context(), id, []string{word})
				if err != nil {
					return err
				}
				trace = &traces[0]
			}

			out, err := eng.Graph(cmd.Context(), id, trace)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("word", "", "Overlay the evaluation of this word")
	return cmd
}
