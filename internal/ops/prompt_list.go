package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
	"github.com/hpungsan/promptlib/internal/textstat"
)

// ListPromptsInput contains parameters for the ListPrompts operation.
type ListPromptsInput struct {
	CategoryID string // optional; empty lists every prompt
}

// PromptSummary is a prompt without its body.
type PromptSummary struct {
	ID         string `json:"id" yaml:"id"`
	CategoryID string `json:"categoryId" yaml:"categoryId"`
	Title      string `json:"title" yaml:"title"`
	BodyChars  int    `json:"body_chars" yaml:"body_chars"`
	Tokens     int    `json:"tokens_estimate" yaml:"tokens_estimate"`
}

// ListPromptsOutput contains the result of the ListPrompts operation.
type ListPromptsOutput struct {
	CategoryID string          `json:"categoryId,omitempty" yaml:"categoryId,omitempty"`
	Items      []PromptSummary `json:"items" yaml:"items"`
}

// ListPrompts returns prompt summaries in document order.
func ListPrompts(s *store.Store, input ListPromptsInput) (*ListPromptsOutput, error) {
	categoryID := strings.TrimSpace(input.CategoryID)
	out := &ListPromptsOutput{CategoryID: categoryID, Items: []PromptSummary{}}

	err := s.View(func(l *library.Library) error {
		if categoryID != "" && l.FindCategory(library.KindPrompt, categoryID) < 0 {
			return errors.NewNotFound("category", categoryID)
		}
		for _, p := range l.PromptsIn(categoryID) {
			out.Items = append(out.Items, PromptSummary{
				ID:         p.ID,
				CategoryID: p.CategoryID,
				Title:      p.Title,
				BodyChars:  textstat.CountChars(p.Body),
				Tokens:     textstat.EstimateTokens(p.Body),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
