// Package ops implements the library operations shared by the CLI, MCP and
// web front ends. Each operation takes a *store.Store and an XxxInput and
// returns an XxxOutput.
package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
)

// Pagination limits
const (
	DefaultSnapshotLimit = 20
	MaxSnapshotLimit     = 100
)

// Default titles for new items.
const (
	DefaultPromptTitle     = "New prompt"
	DefaultCheckpointTitle = "New checkpoint"
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit" yaml:"limit"`
	Offset  int  `json:"offset" yaml:"offset"`
	HasMore bool `json:"has_more" yaml:"has_more"`
	Total   int  `json:"total" yaml:"total"`
}

// ParseKind validates a category namespace name. Empty means prompt.
func ParseKind(s string) (library.Kind, error) {
	kind, ok := library.ParseKind(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return "", errors.NewInvalidRequest("kind must be prompt or checkpoint")
	}
	return kind, nil
}

// categoryLabel names a category of kind in errors.
func categoryLabel(kind library.Kind) string {
	if kind == library.KindCheckpoint {
		return "checkpoint category"
	}
	return "category"
}

// cleanBody drops trailing newlines the way editors leave them.
func cleanBody(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// keepTitle returns the trimmed title, or old when it is blank.
func keepTitle(title *string, old string) string {
	if title == nil {
		return old
	}
	if t := strings.TrimSpace(*title); t != "" {
		return t
	}
	return old
}

// resolveCategory picks categoryID, or the first category of kind when it is
// empty, and checks that it exists.
func resolveCategory(l *library.Library, kind library.Kind, categoryID string) (string, error) {
	categoryID = strings.TrimSpace(categoryID)
	cats := l.CategorySet(kind)
	if categoryID == "" {
		if len(cats) == 0 {
			return "", errors.NewInvalidRequest("create at least one " + categoryLabel(kind) + " first")
		}
		return cats[0].ID, nil
	}
	if l.FindCategory(kind, categoryID) < 0 {
		return "", errors.NewNotFound(categoryLabel(kind), categoryID)
	}
	return categoryID, nil
}
