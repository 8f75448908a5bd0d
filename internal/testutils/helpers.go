package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo initializes a Loam repository in a fresh temporary directory.
// It returns the absolute path of the directory and the repository.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteFiles writes each file (slash-separated path relative to dir), creating parent directories.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// Definitions used across packages.
const (
	// EvenA accepts words over {a} with an even number of a.
	EvenA = "states\nq0:I:F\nq1\ntransitions\nq0->q1[label=a]\nq1->q0[label=a]\nL\n"

	// AB accepts (ab)* and is non-deterministic on q0.
	AB = "states\nq0:I:F\nq1\nq2\ntransitions\nq0->q1[label=a]\nq0->q2[label=a]\nq1->q0[label=b]\nL\n"
)
