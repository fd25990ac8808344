package ops

import (
	"slices"
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// DeleteCategoryInput contains parameters for the DeleteCategory operation.
type DeleteCategoryInput struct {
	Kind string
	ID   string
}

// DeleteCategoryOutput contains the result of the DeleteCategory operation.
type DeleteCategoryOutput struct {
	Deleted bool         `json:"deleted" yaml:"deleted"`
	Kind    library.Kind `json:"kind" yaml:"kind"`
	ID      string       `json:"id" yaml:"id"`
}

// DeleteCategory removes an empty category. A category that any prompt (or,
// for the checkpoint namespace, any checkpoint) still references is rejected
// with CATEGORY_IN_USE and nothing changes.
func DeleteCategory(s *store.Store, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	kind, err := ParseKind(input.Kind)
	if err != nil {
		return nil, err
	}
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	err = s.Update(func(l *library.Library) error {
		idx := l.FindCategory(kind, id)
		if idx < 0 {
			return errors.NewNotFound(categoryLabel(kind), id)
		}
		if refs := l.CategoryRefs(kind, id); refs > 0 {
			return errors.NewCategoryInUse(string(kind), id, refs)
		}
		cats := l.CategorySet(kind)
		l.SetCategorySet(kind, slices.Delete(cats, idx, idx+1))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &DeleteCategoryOutput{Deleted: true, Kind: kind, ID: id}, nil
}
