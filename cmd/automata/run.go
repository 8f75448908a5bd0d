package main

import (
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <id|file>",
		Short: "Evaluate words typed on standard input",
		Long:  `Reads one word per line and prints its verdict until EOF or "exit". An empty line is the empty word.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headless, _ := cmd.Flags().GetBool("headless")

			app, err := setup(cmd)
			if err != nil {
				return err
			}
			eng, id, err := app.target(args[0])
			if err != nil {
				return err
			}

			runner := automata.NewRunner(cmd.InOrStdin(), cmd.OutOrStdout())
			runner.Headless = headless
			if f, ok := cmd.OutOrStdout().(*os.File); ok && tui.IsTerminal(f) {
				runner.Renderer = tui.NewRenderer()
			}
			return runner.Run(cmd.Context(), eng, id)
		},
	}
	cmd.Flags().Bool("headless", false, "Print \"<word>\\t<true|false>\" lines without prompts")
	return cmd
}
