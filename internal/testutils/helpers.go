// Package testutils holds fixtures shared by the package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a strict Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	opts = append([]loam.Option{loam.WithStrict(true)}, opts...)
	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteFiles seeds dir with the given files, creating parent directories as needed.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// Flipper inverts the cells left of the head and halts on the first 0 it reaches.
func Flipper() domain.MachineConfig {
	return domain.MachineConfig{
		Name: "flipper",
		States: []domain.State{{
			Name: "A",
			Zero: domain.Transition{Write: domain.One, Move: domain.MoveLeft, Next: domain.HaltName},
			One:  domain.Transition{Write: domain.Zero, Move: domain.MoveLeft, Next: "A"},
		}},
		TapeLength: 8,
	}
}

// BusyBeaver is the two-state, two-symbol busy beaver.
func BusyBeaver() domain.MachineConfig {
	return domain.MachineConfig{
		Name: "busy-beaver",
		States: []domain.State{
			{Name: "A", Zero: domain.Transition{Write: domain.One, Move: domain.MoveRight, Next: "B"}, One: domain.Transition{Write: domain.One, Move: domain.MoveLeft, Next: "B"}},
			{Name: "B", Zero: domain.Transition{Write: domain.One, Move: domain.MoveLeft, Next: "A"}, One: domain.Transition{Write: domain.One, Move: domain.MoveRight, Next: domain.HaltName}},
		},
		TapeLength: 6,
	}
}
