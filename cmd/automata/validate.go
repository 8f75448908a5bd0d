package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/internal/validator"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [id|file]",
		Short: "Check definitions for structural problems",
		Long: `Loads one definition, or all of them, and reports missing initial or final states,
states unreachable from the initial state and states that cannot reach a final state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")

			app, err := setup(cmd)
			if err != nil {
				return err
			}

			var reports []validator.Report
			if len(args) == 1 {
				eng, id, err := app.target(args[0])
				if err != nil {
					return err
				}
				report, err := eng.Validate(cmd.Context(), id)
				if err != nil {
					report = validator.Invalid(id, err)
				}
				reports = append(reports, report)
			} else {
				eng, err := app.engine()
				if err != nil {
					return err
				}
				ids, err := eng.List()
				if err != nil {
					return err
				}
				for _, id := range ids {
					report, err := eng.Validate(cmd.Context(), id)
					if err != nil {
						report = validator.Invalid(id, err)
					}
					reports = append(reports, report)
				}
			}

			if err := render(cmd, tui.Validation(reports)); err != nil {
				return err
			}

			failed := 0
			for _, r := range reports {
				for _, issue := range r.Issues {
					if strict || issue.Kind == validator.KindInvalid {
						failed++
						break
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("validation failed for %d of %d definitions", failed, len(reports))
			}
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "Treat warnings (unreachable or dead states) as failures")
	return cmd
}
