package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Names follow the "type_action" pattern.

var libraryStatsToolDef = mcp.NewTool("library_stats",
	mcp.WithDescription("Report collection counts and where the library is stored."),
)

var libraryValidateToolDef = mcp.NewTool("library_validate",
	mcp.WithDescription("Check a JSON file against the library import rules without importing it. "+
		"Export envelopes are unwrapped first."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path to a .json file in the exports directory or an allowed path")),
)

var libraryExportToolDef = mcp.NewTool("library_export",
	mcp.WithDescription("Write the whole library to a JSON export envelope {meta, data}."),
	mcp.WithString("path", mcp.Description("Destination .json file. Default: exports/promptlib-<timestamp>.json in the data directory")),
)

var libraryImportToolDef = mcp.NewTool("library_import",
	mcp.WithDescription("Replace the whole library with the document in a JSON file (bare library or export envelope). "+
		"The current library is snapshotted first."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path to a .json file in the exports directory or an allowed path")),
)

var categoryListToolDef = mcp.NewTool("category_list",
	mcp.WithDescription("List categories with the number of items in each. Prompt and checkpoint categories are separate."),
	mcp.WithString("kind", mcp.Enum("prompt", "checkpoint"), mcp.Description("Category namespace (default: prompt)")),
)

var categoryCreateToolDef = mcp.NewTool("category_create",
	mcp.WithDescription("Create a category."),
	mcp.WithString("kind", mcp.Enum("prompt", "checkpoint"), mcp.Description("Category namespace (default: prompt)")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
)

var categoryRenameToolDef = mcp.NewTool("category_rename",
	mcp.WithDescription("Rename a category. Its id and the items in it are unchanged."),
	mcp.WithString("kind", mcp.Enum("prompt", "checkpoint"), mcp.Description("Category namespace (default: prompt)")),
	mcp.WithString("id", mcp.Required(), mcp.Description("Category id")),
	mcp.WithString("name", mcp.Required(), mcp.Description("New display name")),
)

var categoryDeleteToolDef = mcp.NewTool("category_delete",
	mcp.WithDescription("Delete an empty category. Fails with CATEGORY_IN_USE while any item references it."),
	mcp.WithString("kind", mcp.Enum("prompt", "checkpoint"), mcp.Description("Category namespace (default: prompt)")),
	mcp.WithString("id", mcp.Required(), mcp.Description("Category id")),
)

var promptListToolDef = mcp.NewTool("prompt_list",
	mcp.WithDescription("List prompt titles, optionally within one category."),
	mcp.WithString("category_id", mcp.Description("Prompt category id; omit for all prompts")),
)

var promptGetToolDef = mcp.NewTool("prompt_get",
	mcp.WithDescription("Get a prompt including its body."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Prompt id")),
)

var promptCreateToolDef = mcp.NewTool("prompt_create",
	mcp.WithDescription("Create a prompt."),
	mcp.WithString("category_id", mcp.Description("Prompt category id (default: first category)")),
	mcp.WithString("title", mcp.Description("Title (default: \"New prompt\")")),
	mcp.WithString("body", mcp.Description("Prompt text")),
)

var promptUpdateToolDef = mcp.NewTool("prompt_update",
	mcp.WithDescription("Update a prompt. Omitted fields are unchanged; a blank title keeps the current one."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Prompt id")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("body", mcp.Description("New body")),
	mcp.WithString("category_id", mcp.Description("Move to this prompt category")),
)

var promptDeleteToolDef = mcp.NewTool("prompt_delete",
	mcp.WithDescription("Delete a prompt."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Prompt id")),
)

var checkpointListToolDef = mcp.NewTool("checkpoint_list",
	mcp.WithDescription("List checkpoints, optionally within one checkpoint category."),
	mcp.WithString("category_id", mcp.Description("Checkpoint category id; omit for all checkpoints")),
)

var checkpointGetToolDef = mcp.NewTool("checkpoint_get",
	mcp.WithDescription("Get a checkpoint including its body."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Checkpoint id")),
)

var checkpointSaveToolDef = mcp.NewTool("checkpoint_save",
	mcp.WithDescription("Save a new checkpoint stamped with the current time."),
	mcp.WithString("category_id", mcp.Description("Checkpoint category id (default: first checkpoint category)")),
	mcp.WithString("title", mcp.Description("Title (default: \"New checkpoint\")")),
	mcp.WithString("description", mcp.Description("Short description")),
	mcp.WithString("body", mcp.Description("Checkpoint text")),
)

var checkpointUpdateToolDef = mcp.NewTool("checkpoint_update",
	mcp.WithDescription("Update a checkpoint and refresh its savedAt. Omitted fields are unchanged."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Checkpoint id")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("description", mcp.Description("New description")),
	mcp.WithString("body", mcp.Description("New body")),
	mcp.WithString("category_id", mcp.Description("Move to this checkpoint category")),
)

var checkpointDeleteToolDef = mcp.NewTool("checkpoint_delete",
	mcp.WithDescription("Delete a checkpoint."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Checkpoint id")),
)
