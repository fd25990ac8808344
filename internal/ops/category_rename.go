package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// RenameCategoryInput contains parameters for the RenameCategory operation.
type RenameCategoryInput struct {
	Kind string
	ID   string
	Name string
}

// RenameCategoryOutput contains the result of the RenameCategory operation.
type RenameCategoryOutput struct {
	Kind    library.Kind `json:"kind" yaml:"kind"`
	ID      string       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	OldName string       `json:"old_name" yaml:"old_name"`
}

// RenameCategory changes a category's display name. Its id, and therefore
// every reference to it, is unchanged.
func RenameCategory(s *store.Store, input RenameCategoryInput) (*RenameCategoryOutput, error) {
	kind, err := ParseKind(input.Kind)
	if err != nil {
		return nil, err
	}
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewInvalidRequest("name must not be empty")
	}

	out := &RenameCategoryOutput{Kind: kind, ID: id, Name: name}
	err = s.Update(func(l *library.Library) error {
		idx := l.FindCategory(kind, id)
		if idx < 0 {
			return errors.NewNotFound(categoryLabel(kind), id)
		}
		cats := l.CategorySet(kind)
		out.OldName = cats[idx].Name
		cats[idx].Name = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
