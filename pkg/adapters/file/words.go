package file

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadWords reads one word per line. Duplicates are dropped, keeping the first occurrence.
// A blank line stands for the empty word; a trailing newline does not.
func ReadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	seen := make(map[string]bool)
	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimRight(scanner.Text(), "\r")
		if seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// WordsPath returns the conventional word list of a definition: "<id>_words.txt".
func (l *Loader) WordsPath(id string) string {
	return filepath.Join(l.BasePath, filepath.FromSlash(id)) + WordsSuffix
}

// Words reads the conventional word list of a definition.
func (l *Loader) Words(id string) ([]string, error) {
	return ReadWords(l.WordsPath(id))
}
