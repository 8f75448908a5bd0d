package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <id|file>",
		Short: "Tell whether an automaton is deterministic",
		Long:  `Lists every state with two or more transitions on the same symbol. Epsilon counts as a symbol.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")

			app, err := setup(cmd)
			if err != nil {
				return err
			}
			eng, id, err := app.target(args[0])
			if err != nil {
				return err
			}

			ok, conflicts, err := eng.IsDeterministic(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := render(cmd, tui.Determinism(id, conflicts)); err != nil {
				return err
			}
			if strict && !ok {
				return fmt.Errorf("%s is not deterministic", id)
			}
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "Exit with an error when the automaton is not deterministic")
	return cmd
}
