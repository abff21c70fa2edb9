package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "bayesflow "+version+"\n", out)
}

func TestEstimateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
estimator: expectation
function: identity
n: 10
target: {kind: normal, mu: [1, -1], sigma: [0.3, 0.5]}
`), 0o600))

	out, err := execute(t, "estimate", "--config", path, "--n", "20000", "--seed", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "estimator: expectation")
	assert.Contains(t, out, "samples:   20000")
	assert.Contains(t, out, "shape:     [2]")
	assert.Contains(t, out, "reference: [1 -1]")
}

func TestEstimateCommand_RequiresConfig(t *testing.T) {
	_, err := execute(t, "estimate")
	assert.Error(t, err)
}

func TestEstimateCommand_BadLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "estimate", "--config", "unused.yaml")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", level.String())
}
