package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandStructure(t *testing.T) {
	cmd := newRootCommand()
	require.Equal(t, "twoec", cmd.Use)

	for _, name := range []string{"tree", "path"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, sub.Name())
	}
}

func TestPersistentFlagDefaults(t *testing.T) {
	pf := newRootCommand().PersistentFlags()

	verbose := pf.Lookup("verbose")
	require.NotNil(t, verbose)
	require.Equal(t, "v", verbose.Shorthand)
	require.Equal(t, "false", verbose.DefValue)

	require.Equal(t, "true", pf.Lookup("short-circuit").DefValue)
	require.Equal(t, "true", pf.Lookup("parallel").DefValue)
	require.Equal(t, "o", pf.Lookup("output").Shorthand)
}

func TestPathDepthFlagsAreLocal(t *testing.T) {
	cmd := newRootCommand()

	pathCmd, _, err := cmd.Find([]string{"path"})
	require.NoError(t, err)
	require.NotNil(t, pathCmd.Flags().Lookup("max-depth"))
	require.NotNil(t, pathCmd.Flags().Lookup("initial-depth"))

	treeCmd, _, err := cmd.Find([]string{"tree"})
	require.NoError(t, err)
	require.Nil(t, treeCmd.Flags().Lookup("max-depth"))
}

func TestTreeCommandRunsSelection(t *testing.T) {
	dir := t.TempDir()
	selPath := filepath.Join(dir, "selection.yaml")
	require.NoError(t, os.WriteFile(selPath, []byte("leaves: [C3]\ninner: [Large]\n"), 0o644))

	out := filepath.Join(dir, "proofs")
	cmd := newRootCommand()
	cmd.SetArgs([]string{"tree", "--selection", selPath, "--output", out})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(out, "proof_C3.txt"))
	require.NoError(t, err)
}

func TestTreeCommandRejectsBadRate(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"tree", "--denominator", "0"})
	err := cmd.Execute()
	require.ErrorContains(t, err, "out of range")
}

func TestPathCommandRejectsBadDepth(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"path", "--max-depth", "0"})
	err := cmd.Execute()
	require.ErrorContains(t, err, "out of range")
}

func TestSelectionFileErrorsSurface(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"tree", "--selection", filepath.Join(t.TempDir(), "missing.yaml")})
	err := cmd.Execute()
	require.ErrorContains(t, err, "read selection file")
}
