package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Exposes the definitions over a JSON API: listing, determinism checks, validation,
Mermaid graphs, word evaluation, server-sent verdict events and Prometheus metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")

			app, err := setup(cmd)
			if err != nil {
				return err
			}
			addr := app.cfg.HTTP.Addr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			streams := httpAdapter.NewStreamManager()
			hooks := []domain.LifecycleHooks{streams.Hooks()}
			handlerOpts := []httpAdapter.Option{
				httpAdapter.WithStreams(streams),
				httpAdapter.WithVersion(automata.Version),
				httpAdapter.WithLogger(app.logger),
			}
			if app.cfg.HTTP.Metrics {
				reg := prometheus.NewRegistry()
				metrics, err := observability.NewMetrics(reg)
				if err != nil {
					return err
				}
				hooks = append(hooks, metrics.Hooks())
				handlerOpts = append(handlerOpts, httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
			}

			eng, err := app.engine(automata.WithLifecycleHooks(observability.Combine(hooks...)))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				changes, err := eng.Watch(ctx)
				if err != nil {
					return fmt.Errorf("cannot watch %s: %w", app.cfg.Dir, err)
				}
				go func() {
					for id := range changes {
						app.logger.Info("definition changed", "id", id)
						eng.Reload(id)
					}
				}()
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpAdapter.NewHandler(eng, handlerOpts...),
				ReadHeaderTimeout: 10 * time.Second,
			}

			if f, ok := cmd.ErrOrStderr().(*os.File); ok && tui.IsTerminal(f) {
				tui.PrintBanner(f)
			}

			serverErrors := make(chan error, 1)
			go func() {
				app.logger.Info("starting automata server", "addr", addr, "source", app.cfg.Source, "dir", app.cfg.Dir)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				app.logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					app.logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
					return srv.Close()
				}
				app.logger.Info("server stopped")
				return nil
			}
		},
	}
	cmd.Flags().String("addr", "", "Address to listen on (default from config, \":8080\")")
	cmd.Flags().Bool("watch", false, "Reload definitions when their files change (loam source only)")
	return cmd
}
