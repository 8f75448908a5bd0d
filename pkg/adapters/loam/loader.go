package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts the Loam library to the DefinitionLoader interface.
//
// A definition is either described by the document metadata (frontmatter,
// JSON or YAML keys) or written in the document body. When the body holds a
// fenced code block, only the first block is used, so prose can surround it.
type Loader struct {
	Repo *loam.TypedRepository[DefinitionMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[DefinitionMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	repo, err := loam.Init(path, loam.WithStrict(true), loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam repository at %s: %w", path, err)
	}
	return New(loam.NewTypedRepository[DefinitionMetadata](repo)), nil
}

// GetDefinition retrieves a definition from the Loam repository.
// Loam resolves the extension, so "even" finds even.md or even.yaml.
func (l *Loader) GetDefinition(id string) ([]byte, error) {
	ctx := context.Background()

	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: loam get failed for %s: %w", domain.ErrDefinitionNotFound, id, err)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	meta := doc.Data
	if meta.HasDefinition() {
		if meta.Name == "" {
			meta.Name = normalizeID(meta.ID, doc.ID)
		}
		data, err := meta.Document.Marshal()
		if err != nil {
			return nil, fmt.Errorf("failed to marshal definition %s: %w", id, err)
		}
		return data, nil
	}

	body := strings.TrimSpace(extractBlock(doc.Content))
	if body == "" {
		return nil, fmt.Errorf("definition %s has neither states in its metadata nor a body", id)
	}
	return []byte(body + "\n"), nil
}

// ListDefinitions lists all definitions in the repository.
func (l *Loader) ListDefinitions() ([]string, error) {
	ctx := context.Background()
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		id := normalizeID(doc.Data.ID, doc.ID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

// Watch emits the ID of every definition that changes on disk.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

// Parse loads id and compiles it, honouring the "format" metadata key.
func (l *Loader) Parse(id string) (*domain.Automaton, error) {
	data, err := l.GetDefinition(id)
	if err != nil {
		return nil, err
	}
	p := compiler.NewParser()
	if compiler.Format(strings.ToLower(l.format(id))) == compiler.FormatText {
		return p.ParseText(id, data)
	}
	return p.Parse(id, data)
}

func (l *Loader) format(id string) string {
	doc, err := l.Repo.Get(context.Background(), id)
	if err != nil {
		return ""
	}
	return doc.Data.Format
}

// extractBlock returns the first fenced code block of a markdown body, or the body itself.
func extractBlock(content string) string {
	const fence = "```"
	start := strings.Index(content, fence)
	if start < 0 {
		return content
	}
	rest := content[start+len(fence):]
	// Skip the info string ("```automaton").
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return content
	}
	rest = rest[nl+1:]
	end := strings.Index(rest, fence)
	if end < 0 {
		return rest
	}
	return rest[:end]
}

func normalizeID(metaID, docID string) string {
	if metaID != "" {
		return trimExtension(metaID)
	}
	return trimExtension(docID)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// IsNotFound reports whether err means the definition does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrDefinitionNotFound)
}
