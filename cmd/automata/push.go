package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/spf13/cobra"
)

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Store a definition in the configured source",
		Long: `Parses a definition file and saves it under --id (default: the file name without extension).
Only the file and redis sources are writable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				id = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if _, err := compiler.NewParser().Parse(id, data); err != nil {
				return fmt.Errorf("refusing to push an invalid definition: %w", err)
			}

			app, err := setup(cmd)
			if err != nil {
				return err
			}
			eng, err := app.engine()
			if err != nil {
				return err
			}
			if app.store == nil {
				return fmt.Errorf("source %q is read-only; use --source file or --source redis", app.cfg.Source)
			}
			if err := app.store.Save(cmd.Context(), id, data); err != nil {
				return err
			}
			eng.Reload(id)

			app.logger.Info("definition stored", "id", id, "source", app.cfg.Source)
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().String("id", "", "ID to store the definition under")
	return cmd
}
