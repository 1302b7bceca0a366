package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/jotter/internal/config"
	"github.com/hpungsan/jotter/internal/errors"
	"github.com/hpungsan/jotter/internal/ops"
	"github.com/hpungsan/jotter/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	st         *store.Store
	cfg        *config.Config
	exportsDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, cfg *config.Config, exportsDir string) *Handlers {
	return &Handlers{st: st, cfg: cfg, exportsDir: exportsDir}
}

// CreateRequest represents the arguments for note_create.
type CreateRequest struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	Category string `json:"category,omitempty"`
}

// UpdateRequest represents the arguments for note_update.
type UpdateRequest struct {
	ID       int64  `json:"id"`
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	Category string `json:"category,omitempty"`
}

// DeleteRequest represents the arguments for note_delete.
type DeleteRequest struct {
	ID      int64 `json:"id"`
	Confirm bool  `json:"confirm"`
}

// IDRequest represents the arguments for tools addressing one note.
type IDRequest struct {
	ID int64 `json:"id"`
}

// ViewRequest represents the arguments for note_view.
type ViewRequest struct {
	Filter         string `json:"filter,omitempty"`
	Query          string `json:"query,omitempty"`
	IncludeContent bool   `json:"include_content,omitempty"`
}

// ExportRequest represents the arguments for note_export.
type ExportRequest struct {
	ID  int64 `json:"id"`
	Raw bool  `json:"raw,omitempty"`
}

// CategoryAddRequest represents the arguments for category_add.
type CategoryAddRequest struct {
	Name string `json:"name"`
}

// ThemeRequest represents the arguments for theme_set.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// HandleCreate handles the note_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Create(ctx, h.st, ops.CreateInput{
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleUpdate handles the note_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Update(ctx, h.st, ops.UpdateInput{
		ID:       input.ID,
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the note_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.st, ops.DeleteInput{ID: input.ID, Confirm: input.Confirm})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePin handles the note_pin tool call.
func (h *Handlers) HandlePin(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.TogglePin(ctx, h.st, ops.TogglePinInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGet handles the note_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Get(h.st, ops.GetInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleView handles the note_view tool call.
func (h *Handlers) HandleView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ViewRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.View(h.st, ops.ViewInput{
		Filter:         input.Filter,
		Query:          input.Query,
		IncludeContent: input.IncludeContent,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the note_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(ctx, h.st, ops.ExportInput{
		ID:  input.ID,
		Dir: h.exportsDir,
		Raw: input.Raw,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCategoryAdd handles the category_add tool call.
func (h *Handlers) HandleCategoryAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategoryAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddCategory(ctx, h.st, ops.AddCategoryInput{Name: input.Name})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCategoryList handles the category_list tool call.
func (h *Handlers) HandleCategoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.ListCategories(h.st))
}

// HandleThemeSet handles the theme_set tool call.
func (h *Handlers) HandleThemeSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ThemeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SetTheme(ctx, h.st, ops.ThemeInput{Theme: input.Theme})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult creates an MCP error result from any error.
// Only JotError messages reach the client; anything else is reported as INTERNAL.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var jErr *errors.JotError
	if stderrors.As(err, &jErr) {
		errorObj := map[string]any{
			"code":    jErr.Code,
			"message": jErr.Message,
			"status":  jErr.Status,
		}
		// Internal details may carry paths or SQL errors
		if jErr.Code != errors.ErrInternal && jErr.Details != nil {
			errorObj["details"] = jErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
