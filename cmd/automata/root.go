package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "automata",
		Short: "automata checks and runs finite automata with epsilon transitions",
		Long: `automata loads finite automata from text, YAML, JSON or Markdown definitions,
tells whether they are deterministic and decides which words they accept.`,
		SilenceUsage: true,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the definitions (default from config, then \".\")")
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("source", "", "Definition source: loam, file or redis (default from config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (default from config)")

	rootCmd.AddCommand(
		newInspectCmd(),
		newCheckCmd(),
		newAcceptsCmd(),
		newRunCmd(),
		newGraphCmd(),
		newValidateCmd(),
		newListCmd(),
		newPushCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the per-invocation state shared by the commands.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  ports.DefinitionStore
}

// setup reads the config file and applies flag overrides.
func setup(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Dir = dir
	}
	if source, _ := cmd.Flags().GetString("source"); source != "" {
		cfg.Source = config.Source(source)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logging.NewWithWriter(cmd.ErrOrStderr(), level)}, nil
}

// engine opens the configured source.
func (a *app) engine(opts ...automata.Option) (*automata.Engine, error) {
	opts = append([]automata.Option{automata.WithLogger(a.logger)}, opts...)

	switch a.cfg.Source {
	case config.SourceFile:
		a.store = file.NewLoader(a.cfg.Dir)
		return automata.New(a.cfg.Dir, append(opts, automata.WithLoader(a.store))...)
	case config.SourceRedis:
		a.store = redis.New(a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB, redis.WithPrefix(a.cfg.Redis.Prefix))
		return automata.New("", append(opts, automata.WithLoader(a.store))...)
	default:
		return automata.New(a.cfg.Dir, opts...)
	}
}

// target opens the engine for a command argument, which is either a definition ID
// or the path of a definition file. It returns the ID to use with the engine.
func (a *app) target(arg string, opts ...automata.Option) (*automata.Engine, string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() && filepath.Ext(arg) != "" {
		dir := filepath.Dir(arg)
		id := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		opts = append([]automata.Option{automata.WithLogger(a.logger)}, opts...)
		eng, err := automata.New(dir, append(opts, automata.WithLoader(file.NewLoader(dir)))...)
		if err != nil {
			return nil, "", err
		}
		a.cfg.Dir = dir
		return eng, id, nil
	}

	eng, err := a.engine(opts...)
	return eng, arg, err
}

// wordsFor returns the conventional word list of id ("<id>_words.txt"), if any.
func (a *app) wordsFor(id string) ([]string, bool, error) {
	words, err := file.NewLoader(a.cfg.Dir).Words(id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return words, true, nil
}

// render formats markdown for terminals and writes it verbatim otherwise.
func render(cmd *cobra.Command, markdown string) error {
	out := cmd.OutOrStdout()
	renderer := tui.Plain
	if f, ok := out.(*os.File); ok {
		renderer = tui.RendererFor(f)
	}
	rendered, err := renderer(markdown)
	if err != nil {
		rendered = markdown
	}
	_, err = io.WriteString(out, rendered)
	return err
}
