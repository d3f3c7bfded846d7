package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLibraryCmd(t *testing.T, format, db string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewLibraryCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetArgs(append(args, "--db", db))
	err := cmd.Execute()
	return buf.String(), err
}

// saveComponent saves a testdata tree and returns the new component id.
func saveComponent(t *testing.T, db, name, fixture string) string {
	t.Helper()
	out, err := runLibraryCmd(t, "json", db, "save", name, filepath.Join("testdata", fixture))
	require.NoError(t, err)

	var resp struct {
		Data ComponentSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.True(t, strings.HasPrefix(resp.Data.ID, "cmp-"), resp.Data.ID)
	return resp.Data.ID
}

func TestLibrarySaveAndList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")

	out, err := runLibraryCmd(t, "text", db, "save", "Tarjeta", filepath.Join("testdata", "card.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, `Saved "Tarjeta" as cmp-`)

	saveComponent(t, db, "Botón", "button.yaml")

	out, err = runLibraryCmd(t, "json", db, "list")
	require.NoError(t, err)

	var resp struct {
		Data []ComponentSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Botón", resp.Data[0].Name, "newest first")
	assert.Equal(t, int64(2), resp.Data[0].Seq)
	assert.Equal(t, 1, resp.Data[0].Nodes)
	assert.Equal(t, "Tarjeta", resp.Data[1].Name)
	assert.Equal(t, 6, resp.Data[1].Nodes)
}

func TestLibraryListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")

	out, err := runLibraryCmd(t, "text", db, "list")
	require.NoError(t, err)
	assert.Equal(t, "No components.\n", out)
}

func TestLibrarySaveBlankName(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")

	_, err := runLibraryCmd(t, "text", db, "save", "   ", filepath.Join("testdata", "card.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLibrarySaveInvalidTree(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")

	_, err := runLibraryCmd(t, "text", db, "save", "Roto", filepath.Join("testdata", "unknown_tag.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestLibraryShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")
	id := saveComponent(t, db, "Botón", "button_plain.json")

	out, err := runLibraryCmd(t, "text", db, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Botón ("+id+")")
	assert.Contains(t, out, "<button>Continuar</button>")

	out, err = runLibraryCmd(t, "json", db, "show", id)
	require.NoError(t, err)

	var resp struct {
		Data ComponentDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, id, resp.Data.ID)
	assert.Equal(t, "<button>Continuar</button>", resp.Data.Markup)
	require.Len(t, resp.Data.Tree, 1)
	assert.Equal(t, "cta", resp.Data.Tree[0].ID)
}

func TestLibraryShowMissing(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")

	out, err := runLibraryCmd(t, "text", db, "show", "cmp-missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "component not found: cmp-missing")
}

func TestLibraryFind(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")
	id := saveComponent(t, db, "Tarjeta", "card.yaml")
	saveComponent(t, db, "Botón", "button.yaml")

	out, err := runLibraryCmd(t, "json", db, "find", filepath.Join("testdata", "card.yaml"))
	require.NoError(t, err)

	var resp struct {
		Data []ComponentSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, id, resp.Data[0].ID)

	out, err = runLibraryCmd(t, "text", db, "find", filepath.Join("testdata", "button_plain.json"))
	require.NoError(t, err)
	assert.Equal(t, "No components.\n", out)
}

func TestLibraryDelete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")
	id := saveComponent(t, db, "Tarjeta", "card.yaml")

	out, err := runLibraryCmd(t, "text", db, "delete", id)
	require.NoError(t, err)
	assert.Equal(t, "Deleted "+id+"\n", out)

	out, err = runLibraryCmd(t, "json", db, "delete", id)
	require.NoError(t, err)

	var resp struct {
		Data struct {
			ID      string `json:"id"`
			Removed bool   `json:"removed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, id, resp.Data.ID)
	assert.False(t, resp.Data.Removed)
}

func TestLibraryLayoutDefault(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")

	out, err := runLibraryCmd(t, "text", db, "layout")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<div class="min-h-screen bg-slate-50 p-6">`))
	assert.Contains(t, out, "Mi sitio web")
	assert.Contains(t, out, "<aside")
	assert.Contains(t, out, "<li>Dashboard</li>")
}

func TestLibraryLayoutFileWithComponents(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")
	id := saveComponent(t, db, "Botón", "button_plain.json")

	out, err := runLibraryCmd(t, "json", db, "layout", filepath.Join("testdata", "layout.yaml"), "--content", id, "--content", "cmp-missing")
	require.NoError(t, err)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	page := resp.Data["markup"]
	assert.Contains(t, page, `<h2 class="text-lg font-semibold">Tienda</h2>`)
	assert.Contains(t, page, "Hasta pronto")
	assert.NotContains(t, page, "<aside")
	assert.Contains(t, page, "<button>Continuar</button>\n")
	assert.Contains(t, page, "Contenido principal", "unset fields keep defaults")
}

func TestLibraryLayoutPreview(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")

	out, err := runLibraryCmd(t, "text", db, "layout", "--preview")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
}

func TestLibraryLayoutUnknownField(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")
	path := filepath.Join(t.TempDir(), "layout.yaml")
	writeFile(t, path, "header_titel: Tienda\n")

	out, err := runLibraryCmd(t, "text", db, "layout", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "failed to load layout")
}

func TestLoadLayoutEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	writeFile(t, path, "")

	l, err := loadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, "Mi sitio web", l.HeaderTitle)
}
