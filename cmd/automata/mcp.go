package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the definitions to AI agents as MCP tools: list_automata, describe_automaton,
is_deterministic and accepts.

Supported transports:
- stdio (default): standard input and output, for local process integration.
- sse: server-sent events over HTTP, for remote agents.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, _ := cmd.Flags().GetString("transport")
			addr, _ := cmd.Flags().GetString("addr")

			app, err := setup(cmd)
			if err != nil {
				return err
			}
			eng, err := app.engine()
			if err != nil {
				return err
			}
			srv := mcp.NewServer(eng, automata.Version)

			switch transport {
			case "stdio":
				// Stdout carries JSON-RPC; logs go to stderr through app.logger.
				app.logger.Info("starting MCP server", "transport", transport)
				return srv.ServeStdio()
			case "sse":
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				app.logger.Info("starting MCP server", "transport", transport, "addr", addr)
				if err := srv.ServeSSE(ctx, addr, "http://localhost"+addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				app.logger.Info("MCP server stopped")
				return nil
			default:
				return fmt.Errorf("unknown transport %q: supported are stdio and sse", transport)
			}
		},
	}
	cmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	cmd.Flags().String("addr", ":8081", "Address to listen on (sse only)")
	return cmd
}
