package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
)

// Extensions lists the definition file extensions, in lookup priority order.
var Extensions = []string{".fa", ".txt", ".yaml", ".yml", ".json"}

// WordsSuffix marks word list files ("name_words.txt"); they are never definitions.
const WordsSuffix = "_words.txt"

// Loader implements ports.DefinitionStore over a directory tree.
// IDs are slash-separated paths relative to BasePath, without extension.
type Loader struct {
	BasePath string
}

// NewLoader creates a Loader rooted at basePath (default: current directory).
func NewLoader(basePath string) *Loader {
	if basePath == "" {
		basePath = "."
	}
	return &Loader{BasePath: basePath}
}

// GetDefinition reads the first existing "<id><ext>" file.
func (l *Loader) GetDefinition(id string) ([]byte, error) {
	path, err := l.resolve(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", id, err)
	}
	return data, nil
}

// Path returns the file backing id.
func (l *Loader) Path(id string) (string, error) {
	return l.resolve(id)
}

// ErrInvalidID is returned for IDs that are empty or escape BasePath.
var ErrInvalidID = errors.New("invalid definition id")

func checkID(id string) error {
	if id == "" || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func (l *Loader) resolve(id string) (string, error) {
	if err := checkID(id); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDefinitionNotFound, err)
	}
	base := filepath.Join(l.BasePath, filepath.FromSlash(id))
	for _, ext := range Extensions {
		path := base + ext
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, id)
}

// ListDefinitions walks BasePath and returns every definition ID.
// Two files mapping to the same ID (a.fa and a.yaml) are reported as a collision.
func (l *Loader) ListDefinitions() ([]string, error) {
	seen := make(map[string]string)
	err := filepath.WalkDir(l.BasePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != l.BasePath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDefinitionFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(l.BasePath, path)
		if err != nil {
			return err
		}
		id := trimExtension(rel)
		if existing, ok := seen[id]; ok {
			return fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, rel)
		}
		seen[id] = rel
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Save writes data to "<id>.fa" or "<id>.yaml" depending on its syntax,
// removing any other file previously backing id.
func (l *Loader) Save(ctx context.Context, id string, data []byte) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := l.Delete(ctx, id); err != nil {
		return err
	}

	ext := ".fa"
	if compiler.Detect(data) == compiler.FormatYAML {
		ext = ".yaml"
	}
	path := filepath.Join(l.BasePath, filepath.FromSlash(id)) + ext
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to ensure definition directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write definition file: %w", err)
	}
	return nil
}

// Delete removes every file backing id.
func (l *Loader) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	base := filepath.Join(l.BasePath, filepath.FromSlash(id))
	for _, ext := range Extensions {
		if err := os.Remove(base + ext); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete definition file: %w", err)
		}
	}
	return nil
}

func isDefinitionFile(name string) bool {
	if strings.HasSuffix(name, WordsSuffix) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

func trimExtension(path string) string {
	return filepath.ToSlash(strings.TrimSuffix(path, filepath.Ext(path)))
}
