package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidFiles(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		filepath.Join("testdata", "card.yaml"),
		filepath.Join("testdata", "button_plain.json"),
	})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "✓ "+filepath.Join("testdata", "card.yaml")+" (6 nodes)")
	assert.Contains(t, out, "✓ "+filepath.Join("testdata", "button_plain.json")+" (1 nodes)")
}

func TestValidateValidFilesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "card.yaml")})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	require.Len(t, resp.Data.Files, 1)
	assert.Equal(t, 6, resp.Data.Files[0].Nodes)
}

func TestValidateMissingArgs(t *testing.T) {
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestValidateNonExistentFile(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/tree.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "tree file not found")
}

func TestValidateUnknownTag(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "unknown_tag.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed for 1 file(s)")
	assert.Contains(t, buf.String(), "✗ "+filepath.Join("testdata", "unknown_tag.yaml"))
	assert.Contains(t, buf.String(), "tag")
}

func TestValidateDuplicateIDsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		filepath.Join("testdata", "card.yaml"),
		filepath.Join("testdata", "duplicate_ids.json"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidTree, resp.Error.Code)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Files, 2)
	assert.True(t, resp.Data.Files[0].Valid)
	assert.False(t, resp.Data.Files[1].Valid)
	require.Len(t, resp.Data.Files[1].Errors, 1)
	assert.Equal(t, "0.children.0.id", resp.Data.Files[1].Errors[0].Path)
	assert.Contains(t, resp.Data.Files[1].Errors[0].Message, `duplicate id "a"`)
}

func TestValidatePrintSchema(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--schema"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "#Node")
	assert.Contains(t, buf.String(), `"button"`)
}
