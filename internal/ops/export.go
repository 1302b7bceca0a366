package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/jotter/internal/errors"
	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/store"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	ID  int64
	Dir string // exports directory, usually db.ExportsDir(baseDir)

	// Raw keeps the stored markup instead of the plain-text rendering
	Raw bool
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	ID       int64  `json:"id"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Bytes    int    `json:"bytes"`
}

// ExportArtifact is an export rendered in memory, for surfaces that stream it.
type ExportArtifact struct {
	Filename string
	Body     []byte
}

// RenderExport builds the text artifact for one note without writing it anywhere.
func RenderExport(st *store.Store, id int64, raw bool) (*ExportArtifact, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	n, ok := st.Get(id)
	if !ok {
		return nil, errors.NewNotFound(id)
	}

	record := note.ToExportRecord(n, !raw)
	return &ExportArtifact{
		Filename: exportFilename(n.Title),
		Body:     []byte(record.Text()),
	}, nil
}

// Export writes one note as a text artifact into the exports directory.
func Export(ctx context.Context, st *store.Store, input ExportInput) (*ExportOutput, error) {
	if input.Dir == "" {
		return nil, errors.NewInvalidRequest("exports directory is required")
	}
	if err := validateExportDir(input.Dir); err != nil {
		return nil, err
	}

	artifact, err := RenderExport(st, input.ID, input.Raw)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, errors.NewCancelled("export")
	default:
	}

	exportPath := filepath.Join(input.Dir, artifact.Filename)
	if err := writeFileAtomic(exportPath, artifact.Body); err != nil {
		return nil, err
	}

	return &ExportOutput{
		ID:       input.ID,
		Path:     exportPath,
		Filename: artifact.Filename,
		Bytes:    len(artifact.Body),
	}, nil
}

// exportFilename returns <sanitized-title>-<ulid>.txt.
func exportFilename(title string) string {
	return fmt.Sprintf("%s-%s.txt", SanitizeForFilename(title), ulid.Make().String())
}

// writeFileAtomic writes to a temp file then renames it into place.
// The destination is left untouched on failure.
func writeFileAtomic(path string, data []byte) error {
	tempPath := path + "." + ulid.Make().String() + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewInternal(err)
	}

	// Close before rename (required on Windows).
	if err := file.Close(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	if err := os.Rename(tempPath, path); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(path); statErr == nil {
				return errors.NewInvalidRequest("export destination already exists")
			}
		}
		return errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return nil
}
