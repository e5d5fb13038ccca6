package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCleanCircuit(t *testing.T) {
	out, err := executeCommand("validate", filepath.Join("testdata", "gated-lamp.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "3 wires")
	assert.Contains(t, out, "1 transistors")
}

func TestValidateReportsAllDefects(t *testing.T) {
	out, err := executeCommand("--format", "json", "validate", filepath.Join("testdata", "bad-circuit.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidCircuit, resp.Error.Code)

	details, ok := resp.Error.Details.([]interface{})
	require.True(t, ok)
	// Zero-length wire, off-grid node, unknown node kind.
	assert.Len(t, details, 3)
}

func TestValidateMissingFile(t *testing.T) {
	_, err := executeCommand("validate", filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
