package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/jotter/internal/errors"
	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/store"
)

// ThemeInput contains parameters for the SetTheme operation.
type ThemeInput struct {
	Theme string // light | dark | toggle
}

// ThemeOutput contains the result of the SetTheme operation.
type ThemeOutput struct {
	Theme note.Theme `json:"theme"`
}

// SetTheme stores the theme preference, or flips it for "toggle".
func SetTheme(ctx context.Context, st *store.Store, input ThemeInput) (*ThemeOutput, error) {
	if strings.EqualFold(strings.TrimSpace(input.Theme), "toggle") {
		t, err := st.ToggleTheme(ctx)
		if err != nil {
			return nil, err
		}
		return &ThemeOutput{Theme: t}, nil
	}

	t, ok := note.ParseTheme(input.Theme)
	if !ok {
		return nil, errors.NewInvalidRequest("theme must be one of: light, dark, toggle")
	}
	if err := st.SetTheme(ctx, t); err != nil {
		return nil, err
	}
	return &ThemeOutput{Theme: t}, nil
}
