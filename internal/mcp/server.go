package mcp

import (
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/jotter/internal/config"
	"github.com/hpungsan/jotter/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"note_create": {
		def:     createToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreate },
	},
	"note_update": {
		def:     updateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUpdate },
	},
	"note_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"note_pin": {
		def:     pinToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePin },
	},
	"note_get": {
		def:     getToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGet },
	},
	"note_view": {
		def:     viewToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleView },
	},
	"note_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"category_add": {
		def:     categoryAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryAdd },
	},
	"category_list": {
		def:     categoryListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryList },
	},
	"theme_set": {
		def:     themeSetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleThemeSet },
	},
}

// AllToolNames returns all valid tool names, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Jotter tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(st *store.Store, cfg *config.Config, exportsDir, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"jotter",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(st, cfg, exportsDir)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(st *store.Store, cfg *config.Config, exportsDir, version string) error {
	s := NewServer(st, cfg, exportsDir, version)
	return server.ServeStdio(s)
}
