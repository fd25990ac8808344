package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// AddCategoryInput contains parameters for the AddCategory operation.
type AddCategoryInput struct {
	Kind string
	Name string // required, trimmed
}

// AddCategoryOutput contains the result of the AddCategory operation.
type AddCategoryOutput struct {
	Kind library.Kind `json:"kind" yaml:"kind"`
	ID   string       `json:"id" yaml:"id"`
	Name string       `json:"name" yaml:"name"`
}

// AddCategory appends a new category to one namespace.
func AddCategory(s *store.Store, input AddCategoryInput) (*AddCategoryOutput, error) {
	kind, err := ParseKind(input.Kind)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewInvalidRequest("name must not be empty")
	}

	cat := library.Category{ID: library.NewID(library.CategoryPrefix(kind)), Name: name}
	err = s.Update(func(l *library.Library) error {
		l.SetCategorySet(kind, append(l.CategorySet(kind), cat))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddCategoryOutput{Kind: kind, ID: cat.ID, Name: cat.Name}, nil
}
