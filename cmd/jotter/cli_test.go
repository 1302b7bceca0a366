package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/jotter/internal/config"
	"github.com/hpungsan/jotter/internal/db"
	"github.com/hpungsan/jotter/internal/logger"
	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/ops"
)

// setupTestApp opens a store on a temporary base dir.
func setupTestApp(t *testing.T) *app {
	t.Helper()
	baseDir := t.TempDir()
	database, err := db.Init(baseDir)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	a, err := openApp(context.Background(), database, config.DefaultConfig(), logger.NewNop(), baseDir)
	require.NoError(t, err)
	return a
}

// runCLI runs the app with stdin replaced by a pipe holding stdin and returns stdout.
func runCLI(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	oldStdin := os.Stdin
	stdinR, stdinW, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = stdinR
	go func() {
		_, _ = stdinW.WriteString(stdin)
		stdinW.Close()
	}()

	runErr := newCLIApp(a).Run(append([]string{"jotter"}, args...))

	os.Stdin = oldStdin
	stdinR.Close()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), runErr
}

func createViaCLI(t *testing.T, a *app, content string, args ...string) note.Note {
	t.Helper()
	out, err := runCLI(t, a, content, append([]string{"create"}, args...)...)
	require.NoError(t, err)

	var output ops.CreateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output), "output: %s", out)
	return output.Note
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"1700000000000", 1700000000000, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCLICreate(t *testing.T) {
	a := setupTestApp(t)

	n := createViaCLI(t, a, "<p>from stdin</p>\n", "--title=Groceries", "--category=Personal")

	assert.Equal(t, "Groceries", n.Title)
	assert.Equal(t, "Personal", n.Category)
	assert.Equal(t, note.Content("<p>from stdin</p>"), n.Content)
	assert.Len(t, a.st.Notes(), 1)
}

func TestCLICreate_UnknownCategory(t *testing.T) {
	a := setupTestApp(t)

	_, err := runCLI(t, a, "", "create", "--category=Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[INVALID_REQUEST]")
}

func TestCLIUpdate_KeepsUnsetFields(t *testing.T) {
	a := setupTestApp(t)
	n := createViaCLI(t, a, "original body", "--title=Draft", "--category=Ideas")
	id := strconv.FormatInt(n.ID, 10)

	_, err := runCLI(t, a, "", "update", "--title=Final", id)
	require.NoError(t, err)

	got, ok := a.st.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, "Ideas", got.Category)
	assert.Equal(t, note.Content("original body"), got.Content)

	_, err = runCLI(t, a, "new body", "update", id)
	require.NoError(t, err)
	got, _ = a.st.Get(n.ID)
	assert.Equal(t, note.Content("new body"), got.Content)
}

func TestCLIUpdate_NotFound(t *testing.T) {
	a := setupTestApp(t)

	_, err := runCLI(t, a, "", "update", "--title=x", "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[NOT_FOUND]")
}

func TestCLIDelete(t *testing.T) {
	a := setupTestApp(t)
	n := createViaCLI(t, a, "", "--title=bye")
	id := strconv.FormatInt(n.ID, 10)

	t.Run("without --yes", func(t *testing.T) {
		_, err := runCLI(t, a, "", "delete", id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "[INVALID_REQUEST]")
		assert.Len(t, a.st.Notes(), 1)
	})

	t.Run("with --yes", func(t *testing.T) {
		out, err := runCLI(t, a, "", "delete", "--yes", id)
		require.NoError(t, err)

		var output ops.DeleteOutput
		require.NoError(t, json.Unmarshal([]byte(out), &output))
		assert.True(t, output.Deleted)
		assert.Empty(t, a.st.Notes())
	})
}

func TestCLIPinShowView(t *testing.T) {
	a := setupTestApp(t)
	first := createViaCLI(t, a, "apples", "--title=A", "--category=Study")
	second := createViaCLI(t, a, "bananas", "--title=B")

	_, err := runCLI(t, a, "", "pin", strconv.FormatInt(first.ID, 10))
	require.NoError(t, err)

	out, err := runCLI(t, a, "", "show", strconv.FormatInt(first.ID, 10))
	require.NoError(t, err)
	var shown ops.GetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.True(t, shown.IsPinned)

	out, err = runCLI(t, a, "", "view")
	require.NoError(t, err)
	var all ops.ViewOutput
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	require.Len(t, all.Items, 2)
	assert.Equal(t, first.ID, all.Items[0].ID, "pinned note first")
	assert.Equal(t, second.ID, all.Items[1].ID)

	out, err = runCLI(t, a, "", "view", "--filter=category:Study", "--query=APPLE")
	require.NoError(t, err)
	var filtered ops.ViewOutput
	require.NoError(t, json.Unmarshal([]byte(out), &filtered))
	assert.Equal(t, "Study Notes", filtered.Title)
	assert.Equal(t, 1, filtered.Count)

	_, err = runCLI(t, a, "", "view", "--filter=nope")
	require.Error(t, err)
}

func TestCLICategory(t *testing.T) {
	a := setupTestApp(t)

	out, err := runCLI(t, a, "", "category", "add", "Side", "Projects")
	require.NoError(t, err)
	var added ops.AddCategoryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, "Side Projects", added.Name)

	_, err = runCLI(t, a, "", "category", "add", "Ideas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[DUPLICATE_CATEGORY]")

	out, err = runCLI(t, a, "", "category", "list")
	require.NoError(t, err)
	var list ops.ListCategoriesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list.Items, 5)
}

func TestCLITheme(t *testing.T) {
	a := setupTestApp(t)

	out, err := runCLI(t, a, "", "theme")
	require.NoError(t, err)
	assert.Contains(t, out, `"light"`)

	out, err = runCLI(t, a, "", "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, `"dark"`)
	assert.Equal(t, note.ThemeDark, a.st.Theme())

	_, err = runCLI(t, a, "", "theme", "blue")
	require.Error(t, err)
}

func TestCLIExport(t *testing.T) {
	a := setupTestApp(t)
	n := createViaCLI(t, a, "<p>line one</p><p>line two</p>", "--title=Minutes")
	id := strconv.FormatInt(n.ID, 10)

	out, err := runCLI(t, a, "", "export", id)
	require.NoError(t, err)
	var output ops.ExportOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))

	data, err := os.ReadFile(output.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Minutes\n"))
	assert.Contains(t, string(data), "line one\nline two")

	out, err = runCLI(t, a, "", "export", "--stdout", "--raw", id)
	require.NoError(t, err)
	assert.Contains(t, out, "<p>line one</p>")
}

func TestCLIMissingID(t *testing.T) {
	a := setupTestApp(t)

	for _, cmd := range []string{"update", "delete", "pin", "show", "export"} {
		t.Run(cmd, func(t *testing.T) {
			_, err := runCLI(t, a, "", cmd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "note id is required")
		})
	}
}
