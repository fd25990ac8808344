package library

import (
	"fmt"
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
)

// Validate checks that doc, a value produced by decoding JSON into any, has the
// shape of a library document. It returns nil when the document is usable and
// otherwise a VALIDATION_ERROR naming the first failing field. doc is never
// modified.
func Validate(doc any) error {
	if reason := check(doc); reason != "" {
		return errors.NewValidation(reason)
	}
	return nil
}

// ValidateLibrary runs Validate against the JSON form of a typed document.
func ValidateLibrary(l *Library) error {
	if l == nil {
		return errors.NewValidation("Root must be an object.")
	}
	raw, err := ToValue(l)
	if err != nil {
		return errors.NewInternal(err)
	}
	return Validate(raw)
}

func check(doc any) string {
	obj, ok := doc.(map[string]any)
	if !ok {
		return "Root must be an object."
	}
	categories, ok := obj["categories"].([]any)
	if !ok {
		return `Missing "categories" array.`
	}
	prompts, ok := obj["prompts"].([]any)
	if !ok {
		return `Missing "prompts" array.`
	}

	catIDs, reason := checkCategories(categories, "Category")
	if reason != "" {
		return reason
	}

	promptIDs := make(map[string]bool, len(prompts))
	for _, entry := range prompts {
		item, ok := entry.(map[string]any)
		if !ok {
			return "Prompt entries must be objects."
		}
		id, ok := nonEmptyString(item["id"])
		if !ok {
			return "Each prompt must have a non-empty string id."
		}
		if promptIDs[id] {
			return fmt.Sprintf("Duplicate prompt id: %s", id)
		}
		promptIDs[id] = true
		if categoryID, ok := item["categoryId"].(string); !ok || !catIDs[categoryID] {
			return fmt.Sprintf("Prompt '%s' references missing categoryId '%s'.", display(item["title"]), display(item["categoryId"]))
		}
		if _, ok := nonEmptyString(item["title"]); !ok {
			return "Each prompt must have a non-empty string title."
		}
		if _, ok := item["body"].(string); !ok {
			return "Each prompt must have a string body."
		}
	}

	checkpointCategories := categories
	if v, present := obj["checkpointCategories"]; present {
		checkpointCategories, ok = v.([]any)
		if !ok {
			return `Missing "checkpointCategories" array.`
		}
	}
	cpCatIDs, reason := checkCategories(checkpointCategories, "Checkpoint category")
	if reason != "" {
		return reason
	}

	var checkpoints []any
	if v, present := obj["checkpoints"]; present {
		checkpoints, ok = v.([]any)
		if !ok {
			return "Checkpoints must be an array when provided."
		}
	}

	checkpointIDs := make(map[string]bool, len(checkpoints))
	for _, entry := range checkpoints {
		cp, ok := entry.(map[string]any)
		if !ok {
			return "Checkpoint entries must be objects."
		}
		id, ok := nonEmptyString(cp["id"])
		if !ok {
			return "Each checkpoint must have a non-empty string id."
		}
		if checkpointIDs[id] {
			return fmt.Sprintf("Duplicate checkpoint id: %s", id)
		}
		checkpointIDs[id] = true
		if categoryID, ok := cp["categoryId"].(string); !ok || !cpCatIDs[categoryID] {
			return fmt.Sprintf("Checkpoint '%s' references missing categoryId '%s'.", display(cp["title"]), display(cp["categoryId"]))
		}
		if _, ok := nonEmptyString(cp["title"]); !ok {
			return "Each checkpoint must have a non-empty string title."
		}
		if _, ok := cp["description"].(string); !ok {
			return "Each checkpoint must have a string description."
		}
		if _, ok := cp["body"].(string); !ok {
			return "Each checkpoint must have a string body."
		}
		if _, ok := nonEmptyString(cp["savedAt"]); !ok {
			return "Each checkpoint must have a savedAt ISO string."
		}
	}

	return ""
}

// checkCategories is shared by both category namespaces; label only changes
// the wording of the failure message.
func checkCategories(entries []any, label string) (map[string]bool, string) {
	lower := strings.ToLower(label)
	ids := make(map[string]bool, len(entries))
	for _, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Sprintf("%s entries must be objects.", label)
		}
		id, ok := nonEmptyString(item["id"])
		if !ok {
			return nil, fmt.Sprintf("Each %s must have a non-empty string id.", lower)
		}
		if _, ok := nonEmptyString(item["name"]); !ok {
			return nil, fmt.Sprintf("Each %s must have a non-empty string name.", lower)
		}
		if ids[id] {
			return nil, fmt.Sprintf("Duplicate %s id: %s", lower, id)
		}
		ids[id] = true
	}
	return ids, ""
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func display(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
