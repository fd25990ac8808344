package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
	"github.com/hpungsan/promptlib/internal/textstat"
)

// GetPromptInput contains parameters for the GetPrompt operation.
type GetPromptInput struct {
	ID string
}

// GetPromptOutput is a full prompt plus its category name and body stats.
type GetPromptOutput struct {
	library.Prompt `yaml:",inline"`
	CategoryName   string         `json:"category_name" yaml:"category_name"`
	Stats          textstat.Stats `json:"stats" yaml:"stats"`
}

// GetPrompt returns one prompt by id.
func GetPrompt(s *store.Store, input GetPromptInput) (*GetPromptOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	var out *GetPromptOutput
	err := s.View(func(l *library.Library) error {
		idx := l.FindPrompt(id)
		if idx < 0 {
			return errors.NewNotFound("prompt", id)
		}
		p := l.Prompts[idx]
		out = &GetPromptOutput{Prompt: p, Stats: textstat.Describe(p.Body)}
		if ci := l.FindCategory(library.KindPrompt, p.CategoryID); ci >= 0 {
			out.CategoryName = l.Categories[ci].Name
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
