package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var createToolDef = mcp.NewTool("note_create",
	mcp.WithDescription("Create a note. Blank title becomes \"Untitled Note\"; blank category files it as Uncategorized."),
	mcp.WithString("title", mcp.Description("Note title")),
	mcp.WithString("content", mcp.Description("Rich-text content (HTML or markdown), stored verbatim")),
	mcp.WithString("category", mcp.Description("Existing category name")),
)

var updateToolDef = mcp.NewTool("note_update",
	mcp.WithDescription("Replace title, content and category of a note. Unknown ids report updated=false."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("content", mcp.Description("New content")),
	mcp.WithString("category", mcp.Description("New category")),
)

var deleteToolDef = mcp.NewTool("note_delete",
	mcp.WithDescription("Permanently delete a note. Requires confirm=true."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true")),
)

var pinToolDef = mcp.NewTool("note_pin",
	mcp.WithDescription("Toggle the pinned flag of a note."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
)

var getToolDef = mcp.NewTool("note_get",
	mcp.WithDescription("Fetch a single note with its content."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
)

var viewToolDef = mcp.NewTool("note_view",
	mcp.WithDescription("List notes through a filter and optional search query."),
	mcp.WithString("filter", mcp.Description("all | pinned | recent | category:<name> (default all)")),
	mcp.WithString("query", mcp.Description("Case-insensitive substring over title and content")),
	mcp.WithBoolean("include_content", mcp.Description("Include full notes, not only summaries")),
)

var exportToolDef = mcp.NewTool("note_export",
	mcp.WithDescription("Write a note as a plain text file into the exports directory."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	mcp.WithBoolean("raw", mcp.Description("Keep the stored markup instead of plain text")),
)

var categoryAddToolDef = mcp.NewTool("category_add",
	mcp.WithDescription("Add a category. Names are case-sensitive and must be unique."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Category name")),
)

var categoryListToolDef = mcp.NewTool("category_list",
	mcp.WithDescription("List categories in order with note counts."),
)

var themeSetToolDef = mcp.NewTool("theme_set",
	mcp.WithDescription("Set the UI theme."),
	mcp.WithString("theme", mcp.Required(), mcp.Enum("light", "dark", "toggle")),
)
