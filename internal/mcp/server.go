// Package mcp exposes library operations as MCP tools over stdio.
package mcp

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/hpungsan/promptlib/internal/config"
	"github.com/hpungsan/promptlib/internal/logging"
	"github.com/hpungsan/promptlib/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"library_stats": {
		def:     libraryStatsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStats },
	},
	"library_validate": {
		def:     libraryValidateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleValidate },
	},
	"library_export": {
		def:     libraryExportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"library_import": {
		def:     libraryImportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleImport },
	},
	"category_list": {
		def:     categoryListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryList },
	},
	"category_create": {
		def:     categoryCreateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryCreate },
	},
	"category_rename": {
		def:     categoryRenameToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryRename },
	},
	"category_delete": {
		def:     categoryDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryDelete },
	},
	"prompt_list": {
		def:     promptListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePromptList },
	},
	"prompt_get": {
		def:     promptGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePromptGet },
	},
	"prompt_create": {
		def:     promptCreateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePromptCreate },
	},
	"prompt_update": {
		def:     promptUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePromptUpdate },
	},
	"prompt_delete": {
		def:     promptDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePromptDelete },
	},
	"checkpoint_list": {
		def:     checkpointListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCheckpointList },
	},
	"checkpoint_get": {
		def:     checkpointGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCheckpointGet },
	},
	"checkpoint_save": {
		def:     checkpointSaveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCheckpointSave },
	},
	"checkpoint_update": {
		def:     checkpointUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCheckpointUpdate },
	},
	"checkpoint_delete": {
		def:     checkpointDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCheckpointDelete },
	},
}

// AllToolNames returns all valid tool names, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDisabledTools returns the unknown tool names in names.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates an MCP server with the library tools registered.
// Tools listed in cfg.DisabledTools are skipped.
func NewServer(s *store.Store, cfg *config.Config, log *zap.Logger, version string) *server.MCPServer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log = logging.OrNop(log)

	srv := server.NewMCPServer(
		"promptlib",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(s, cfg, log)

	if unknown := ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		log.Warn("unknown tools in disabled_tools", zap.Strings("tools", unknown))
	}
	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		srv.AddTool(entry.def, entry.handler(h))
	}

	return srv
}

// Run starts the MCP server using stdio transport.
func Run(s *store.Store, cfg *config.Config, log *zap.Logger, version string) error {
	return server.ServeStdio(NewServer(s, cfg, log, version))
}
