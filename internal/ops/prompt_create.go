package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// CreatePromptInput contains parameters for the CreatePrompt operation.
type CreatePromptInput struct {
	CategoryID string // optional, defaults to the first prompt category
	Title      string // optional, defaults to "New prompt"
	Body       string
}

// CreatePromptOutput contains the result of the CreatePrompt operation.
type CreatePromptOutput struct {
	ID         string `json:"id" yaml:"id"`
	CategoryID string `json:"categoryId" yaml:"categoryId"`
	Title      string `json:"title" yaml:"title"`
}

// CreatePrompt appends a prompt to the library.
func CreatePrompt(s *store.Store, input CreatePromptInput) (*CreatePromptOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = DefaultPromptTitle
	}
	p := library.Prompt{
		ID:    library.NewID(library.PrefixPrompt),
		Title: title,
		Body:  cleanBody(input.Body),
	}

	err := s.Update(func(l *library.Library) error {
		categoryID, err := resolveCategory(l, library.KindPrompt, input.CategoryID)
		if err != nil {
			return err
		}
		p.CategoryID = categoryID
		l.Prompts = append(l.Prompts, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreatePromptOutput{ID: p.ID, CategoryID: p.CategoryID, Title: p.Title}, nil
}
