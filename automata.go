package automata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/validator"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Engine is the high-level entry point for the automata library.
// It loads definitions by ID, compiles each one once and answers
// determinism and membership questions about them.
//
// Compiled automata are frozen and cached, so an Engine is safe for concurrent use.
type Engine struct {
	runtime *runtime.Engine
	loader  ports.DefinitionLoader
	parser  *compiler.Parser
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Name    string

	pinned map[string]*domain.Automaton

	mu    sync.RWMutex
	cache map[string]*domain.Automaton
}

var _ ports.Catalog = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom DefinitionLoader, bypassing the default Loam initialization.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDefinition registers an automaton built in code (see pkg/dsl) under its name.
// Registered automata shadow loader definitions with the same ID.
func WithDefinition(a *domain.Automaton) Option {
	return func(e *Engine) {
		if e.pinned == nil {
			e.pinned = make(map[string]*domain.Automaton)
		}
		e.pinned[a.Name] = a.Freeze()
	}
}

// New initializes a new Engine.
// By default, it reads definitions from a Loam repository at dir.
// If WithLoader or WithDefinition is provided, dir can be empty and Loam is skipped.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		parser: compiler.NewParser(),
		cache:  make(map[string]*domain.Automaton),
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil && dir != "" {
		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)

		loader, err := loamAdapter.Open(absPath)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	} else if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.loader == nil && len(eng.pinned) == 0 {
		return nil, fmt.Errorf("dir is required when no custom loader or definition is provided")
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("catalog", eng.Name)
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)

	return eng, nil
}

// List returns the IDs of every available automaton, sorted.
func (e *Engine) List() ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for id := range e.pinned {
		seen[id] = true
		ids = append(ids, id)
	}
	if e.loader != nil {
		loaded, err := e.loader.ListDefinitions()
		if err != nil {
			return nil, err
		}
		for _, id := range loaded {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Automaton returns the compiled automaton for id, loading it on first use.
func (e *Engine) Automaton(ctx context.Context, id string) (*domain.Automaton, error) {
	if a, ok := e.pinned[id]; ok {
		return a, nil
	}

	e.mu.RLock()
	a, ok := e.cache[id]
	e.mu.RUnlock()
	if ok {
		return a, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.loader == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, id)
	}

	a, err := e.compile(id)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("automaton loaded", "id", id, "states", len(a.States()), "transitions", len(a.Transitions()))

	e.mu.Lock()
	defer e.mu.Unlock()
	// Another goroutine may have won the race; keep a single instance.
	if existing, ok := e.cache[id]; ok {
		return existing, nil
	}
	e.cache[id] = a
	return a, nil
}

// compilingLoader is implemented by loaders that compile definitions themselves (Loam honours a "format" key).
type compilingLoader interface {
	Parse(id string) (*domain.Automaton, error)
}

func (e *Engine) compile(id string) (*domain.Automaton, error) {
	if c, ok := e.loader.(compilingLoader); ok {
		a, err := c.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load automaton %s: %w", id, err)
		}
		return a, nil
	}

	data, err := e.loader.GetDefinition(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load automaton %s: %w", id, err)
	}
	a, err := e.parser.Parse(id, data)
	if err != nil {
		return nil, fmt.Errorf("failed to load automaton %s: %w", id, err)
	}
	return a, nil
}

// IsDeterministic checks id and returns the conflicts that make it non-deterministic.
func (e *Engine) IsDeterministic(ctx context.Context, id string) (bool, []domain.Conflict, error) {
	a, err := e.Automaton(ctx, id)
	if err != nil {
		return false, nil, err
	}
	conflicts := e.runtime.Conflicts(ctx, a)
	return len(conflicts) == 0, conflicts, nil
}

// Accepts reports whether id accepts word.
func (e *Engine) Accepts(ctx context.Context, id string, word string) (bool, error) {
	a, err := e.Automaton(ctx, id)
	if err != nil {
		return false, err
	}
	return e.runtime.Accepts(ctx, a, word), nil
}

// Evaluate runs each word through id, in order.
// It stops early with ctx.Err() when the context is cancelled.
func (e *Engine) Evaluate(ctx context.Context, id string, words []string) ([]domain.Trace, error) {
	a, err := e.Automaton(ctx, id)
	if err != nil {
		return nil, err
	}
	traces := make([]domain.Trace, 0, len(words))
	for _, w := range words {
		if err := ctx.Err(); err != nil {
			return traces, err
		}
		traces = append(traces, e.runtime.Evaluate(ctx, a, w))
	}
	return traces, nil
}

// Validate reports structural issues of id (unreachable or dead states, missing initial state).
func (e *Engine) Validate(ctx context.Context, id string) (validator.Report, error) {
	a, err := e.Automaton(ctx, id)
	if err != nil {
		return validator.Report{Automaton: id}, err
	}
	return validator.Validate(a), nil
}

// Graph renders id as a Mermaid flowchart. A non-nil trace is overlaid on it.
func (e *Engine) Graph(ctx context.Context, id string, trace *domain.Trace) (string, error) {
	a, err := e.Automaton(ctx, id)
	if err != nil {
		return "", err
	}
	var overlay *graph.GraphOverlay
	if trace != nil {
		overlay = graph.NewOverlay(*trace)
	}
	return graph.GenerateMermaid(a, overlay), nil
}

// Reload drops cached automata so that they are compiled again on next use.
// Without IDs, the whole cache is dropped.
func (e *Engine) Reload(ids ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(ids) == 0 {
		e.cache = make(map[string]*domain.Automaton)
		return
	}
	for _, id := range ids {
		delete(e.cache, id)
	}
}

// Watch returns a channel that signals when a definition changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying DefinitionLoader used by the engine.
func (e *Engine) Loader() ports.DefinitionLoader {
	return e.loader
}
