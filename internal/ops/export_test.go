package ops

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/jotter/internal/db"
	"github.com/hpungsan/jotter/internal/errors"
)

func TestExport_WritesPlainText(t *testing.T) {
	ctx := context.Background()
	st, baseDir := newTestStore(t)
	created, err := Create(ctx, st, CreateInput{
		Title:   "Launch / Plan",
		Content: "<h1>Goals</h1><p>Ship&nbsp;it</p>",
	})
	require.NoError(t, err)

	out, err := Export(ctx, st, ExportInput{ID: created.Note.ID, Dir: db.ExportsDir(baseDir)})
	require.NoError(t, err)

	assert.Equal(t, db.ExportsDir(baseDir), filepath.Dir(out.Path))
	assert.True(t, strings.HasPrefix(out.Filename, "Launch-Plan-"), "filename = %q", out.Filename)
	assert.True(t, strings.HasSuffix(out.Filename, ".txt"))

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "Launch / Plan\nLast edited: "), "text = %q", text)
	assert.Contains(t, text, "Goals\nShip it")
	assert.NotContains(t, text, "<h1>")
	assert.Equal(t, len(data), out.Bytes)

	// No temp files left behind
	entries, err := os.ReadDir(db.ExportsDir(baseDir))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExport_Raw(t *testing.T) {
	ctx := context.Background()
	st, baseDir := newTestStore(t)
	created, err := Create(ctx, st, CreateInput{Title: "raw", Content: "<b>bold</b>"})
	require.NoError(t, err)

	out, err := Export(ctx, st, ExportInput{ID: created.Note.ID, Dir: db.ExportsDir(baseDir), Raw: true})
	require.NoError(t, err)

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<b>bold</b>")
}

func TestExport_NotFound(t *testing.T) {
	st, baseDir := newTestStore(t)

	_, err := Export(context.Background(), st, ExportInput{ID: 99, Dir: db.ExportsDir(baseDir)})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestExport_DirValidation(t *testing.T) {
	ctx := context.Background()
	st, baseDir := newTestStore(t)
	created, err := Create(ctx, st, CreateInput{Title: "x"})
	require.NoError(t, err)

	_, err = Export(ctx, st, ExportInput{ID: created.Note.ID})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "empty dir")

	_, err = Export(ctx, st, ExportInput{ID: created.Note.ID, Dir: filepath.Join(baseDir, "missing")})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "missing dir")

	link := filepath.Join(baseDir, "link")
	require.NoError(t, os.Symlink(db.ExportsDir(baseDir), link))
	_, err = Export(ctx, st, ExportInput{ID: created.Note.ID, Dir: link})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "symlinked dir")
}

func TestExport_Cancelled(t *testing.T) {
	st, baseDir := newTestStore(t)
	created, err := Create(context.Background(), st, CreateInput{Title: "x"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Export(ctx, st, ExportInput{ID: created.Note.ID, Dir: db.ExportsDir(baseDir)})
	assert.True(t, errors.Is(err, errors.ErrCancelled))
}

func TestRenderExport_SameAsFile(t *testing.T) {
	st, _ := newTestStore(t)
	created, err := Create(context.Background(), st, CreateInput{Title: "mem", Content: "<p>one</p>"})
	require.NoError(t, err)

	artifact, err := RenderExport(st, created.Note.ID, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(artifact.Filename, "mem-"))
	assert.True(t, strings.HasSuffix(string(artifact.Body), "one\n"))
}

func TestSanitizeForFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Weekly Review", "Weekly-Review"},
		{"../../etc/passwd", "etc-passwd"},
		{"a:b*c?d", "a-b-c-d"},
		{"null\x00byte", "nullbyte"},
		{"   ", "note"},
		{"...", "note"},
		{strings.Repeat("x", 100), strings.Repeat("x", maxFilenameTitle)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeForFilename(tt.in))
		})
	}
}

func TestContainsTraversal(t *testing.T) {
	assert.True(t, containsTraversal("/tmp/../etc"))
	assert.True(t, containsTraversal(`C:\x\..\y`))
	assert.False(t, containsTraversal("/tmp/a..b"))
}
