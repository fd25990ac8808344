package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/promptlib/internal/config"
	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/ops"
	"github.com/hpungsan/promptlib/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store *store.Store
	cfg   *config.Config
	log   *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(s *store.Store, cfg *config.Config, log *zap.Logger) *Handlers {
	return &Handlers{store: s, cfg: cfg, log: log}
}

// Request types for each tool

// PathRequest represents the arguments for validate, export and import.
type PathRequest struct {
	Path string `json:"path"`
}

// CategoryRequest represents the arguments for the category tools.
type CategoryRequest struct {
	Kind string `json:"kind,omitempty"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ListRequest represents the arguments for prompt_list and checkpoint_list.
type ListRequest struct {
	CategoryID string `json:"category_id,omitempty"`
}

// IDRequest represents the arguments for get and delete tools.
type IDRequest struct {
	ID string `json:"id"`
}

// PromptCreateRequest represents the arguments for prompt_create.
type PromptCreateRequest struct {
	CategoryID string `json:"category_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Body       string `json:"body,omitempty"`
}

// PromptUpdateRequest represents the arguments for prompt_update.
type PromptUpdateRequest struct {
	ID         string  `json:"id"`
	Title      *string `json:"title,omitempty"`
	Body       *string `json:"body,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
}

// CheckpointSaveRequest represents the arguments for checkpoint_save.
type CheckpointSaveRequest struct {
	CategoryID  string `json:"category_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Body        string `json:"body,omitempty"`
}

// CheckpointUpdateRequest represents the arguments for checkpoint_update.
type CheckpointUpdateRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Body        *string `json:"body,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
}

// Handler implementations

// HandleStats handles the library_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Stats(h.store)
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleValidate handles the library_validate tool call.
func (h *Handlers) HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PathRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}
	if err := ops.ValidatePath(input.Path, ops.PathCheckRead, h.store.Paths().ExportsDir, h.cfg); err != nil {
		return h.errorResult(req, err), nil
	}

	result, err := ops.Validate(ops.ValidateInput{Path: input.Path})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleExport handles the library_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PathRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.store, h.cfg, ops.ExportInput{Path: input.Path, Restricted: true})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleImport handles the library_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PathRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Import(h.store, h.cfg, ops.ImportInput{Path: input.Path, Restricted: true})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleCategoryList handles the category_list tool call.
func (h *Handlers) HandleCategoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategoryRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListCategories(h.store, ops.ListCategoriesInput{Kind: input.Kind})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleCategoryCreate handles the category_create tool call.
func (h *Handlers) HandleCategoryCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategoryRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddCategory(h.store, ops.AddCategoryInput{Kind: input.Kind, Name: input.Name})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleCategoryRename handles the category_rename tool call.
func (h *Handlers) HandleCategoryRename(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategoryRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RenameCategory(h.store, ops.RenameCategoryInput{Kind: input.Kind, ID: input.ID, Name: input.Name})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleCategoryDelete handles the category_delete tool call.
func (h *Handlers) HandleCategoryDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategoryRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteCategory(h.store, ops.DeleteCategoryInput{Kind: input.Kind, ID: input.ID})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandlePromptList handles the prompt_list tool call.
func (h *Handlers) HandlePromptList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListPrompts(h.store, ops.ListPromptsInput{CategoryID: input.CategoryID})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandlePromptGet handles the prompt_get tool call.
func (h *Handlers) HandlePromptGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetPrompt(h.store, ops.GetPromptInput{ID: input.ID})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandlePromptCreate handles the prompt_create tool call.
func (h *Handlers) HandlePromptCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PromptCreateRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CreatePrompt(h.store, ops.CreatePromptInput{
		CategoryID: input.CategoryID,
		Title:      input.Title,
		Body:       input.Body,
	})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandlePromptUpdate handles the prompt_update tool call.
func (h *Handlers) HandlePromptUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PromptUpdateRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdatePrompt(h.store, ops.UpdatePromptInput{
		ID:         input.ID,
		Title:      input.Title,
		Body:       input.Body,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandlePromptDelete handles the prompt_delete tool call.
func (h *Handlers) HandlePromptDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeletePrompt(h.store, ops.DeletePromptInput{ID: input.ID})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleCheckpointList handles the checkpoint_list tool call.
func (h *Handlers) HandleCheckpointList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListCheckpoints(h.store, ops.ListCheckpointsInput{CategoryID: input.CategoryID})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleCheckpointGet handles the checkpoint_get tool call.
func (h *Handlers) HandleCheckpointGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetCheckpoint(h.store, ops.GetCheckpointInput{ID: input.ID})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleCheckpointSave handles the checkpoint_save tool call.
func (h *Handlers) HandleCheckpointSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CheckpointSaveRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SaveCheckpoint(h.store, ops.SaveCheckpointInput{
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
	})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleCheckpointUpdate handles the checkpoint_update tool call.
func (h *Handlers) HandleCheckpointUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CheckpointUpdateRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateCheckpoint(h.store, ops.UpdateCheckpointInput{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// HandleCheckpointDelete handles the checkpoint_delete tool call.
func (h *Handlers) HandleCheckpointDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return h.errorResult(req, errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteCheckpoint(h.store, ops.DeleteCheckpointInput{ID: input.ID})
	if err != nil {
		return h.errorResult(req, err), nil
	}
	return successResult(result)
}

// decode unmarshals MCP request arguments into a typed struct.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("unmarshal args: %w", err)
	}
	return result, nil
}

// Result helpers

// errorResult logs a failed call and wraps err as an MCP error result.
func (h *Handlers) errorResult(req mcp.CallToolRequest, err error) *mcp.CallToolResult {
	if h.log != nil {
		h.log.Debug("tool call failed", zap.String("tool", req.Params.Name), zap.Error(err))
	}
	return errorResult(err)
}

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var lErr *errors.LibError
	if stderrors.As(err, &lErr) {
		errorObj := map[string]any{
			"code":    lErr.Code,
			"message": lErr.Message,
			"status":  lErr.Status,
		}
		if lErr.Code != errors.ErrInternal && lErr.Details != nil {
			errorObj["details"] = lErr.Details
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
