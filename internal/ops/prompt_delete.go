package ops

import (
	"slices"
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// DeletePromptInput contains parameters for the DeletePrompt operation.
type DeletePromptInput struct {
	ID string
}

// DeletePromptOutput contains the result of the DeletePrompt operation.
type DeletePromptOutput struct {
	Deleted bool   `json:"deleted" yaml:"deleted"`
	ID      string `json:"id" yaml:"id"`
}

// DeletePrompt removes a prompt.
func DeletePrompt(s *store.Store, input DeletePromptInput) (*DeletePromptOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	err := s.Update(func(l *library.Library) error {
		idx := l.FindPrompt(id)
		if idx < 0 {
			return errors.NewNotFound("prompt", id)
		}
		l.Prompts = slices.Delete(l.Prompts, idx, idx+1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &DeletePromptOutput{Deleted: true, ID: id}, nil
}
