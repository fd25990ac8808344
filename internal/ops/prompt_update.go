package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// UpdatePromptInput contains parameters for the UpdatePrompt operation.
// Nil fields are left unchanged.
type UpdatePromptInput struct {
	ID         string
	Title      *string // blank keeps the current title
	Body       *string
	CategoryID *string // moves the prompt
}

// UpdatePromptOutput contains the result of the UpdatePrompt operation.
type UpdatePromptOutput struct {
	ID         string `json:"id" yaml:"id"`
	CategoryID string `json:"categoryId" yaml:"categoryId"`
	Title      string `json:"title" yaml:"title"`
}

// UpdatePrompt edits a prompt in place.
func UpdatePrompt(s *store.Store, input UpdatePromptInput) (*UpdatePromptOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	if input.Title == nil && input.Body == nil && input.CategoryID == nil {
		return nil, errors.NewInvalidRequest("nothing to update")
	}

	var out UpdatePromptOutput
	err := s.Update(func(l *library.Library) error {
		idx := l.FindPrompt(id)
		if idx < 0 {
			return errors.NewNotFound("prompt", id)
		}
		p := &l.Prompts[idx]
		if input.CategoryID != nil && strings.TrimSpace(*input.CategoryID) != "" {
			cid, err := resolveCategory(l, library.KindPrompt, *input.CategoryID)
			if err != nil {
				return err
			}
			p.CategoryID = cid
		}
		p.Title = keepTitle(input.Title, p.Title)
		if input.Body != nil {
			p.Body = cleanBody(*input.Body)
		}
		out = UpdatePromptOutput{ID: p.ID, CategoryID: p.CategoryID, Title: p.Title}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
