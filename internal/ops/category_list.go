package ops

import (
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// ListCategoriesInput contains parameters for the ListCategories operation.
type ListCategoriesInput struct {
	Kind string // prompt (default) or checkpoint
}

// CategorySummary is a category with the number of items filed under it.
type CategorySummary struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Items int    `json:"items" yaml:"items"`
}

// ListCategoriesOutput contains the result of the ListCategories operation.
type ListCategoriesOutput struct {
	Kind  library.Kind      `json:"kind" yaml:"kind"`
	Items []CategorySummary `json:"items" yaml:"items"`
}

// ListCategories returns the categories of one namespace in document order.
func ListCategories(s *store.Store, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	kind, err := ParseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	out := &ListCategoriesOutput{Kind: kind, Items: []CategorySummary{}}
	_ = s.View(func(l *library.Library) error {
		for _, c := range l.CategorySet(kind) {
			out.Items = append(out.Items, CategorySummary{
				ID:    c.ID,
				Name:  c.Name,
				Items: l.CategoryRefs(kind, c.ID),
			})
		}
		return nil
	})
	return out, nil
}
