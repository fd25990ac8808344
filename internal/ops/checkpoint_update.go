package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// UpdateCheckpointInput contains parameters for the UpdateCheckpoint operation.
// Nil fields are left unchanged; savedAt is always refreshed.
type UpdateCheckpointInput struct {
	ID          string
	Title       *string // blank keeps the current title
	Description *string
	Body        *string
	CategoryID  *string
}

// UpdateCheckpointOutput contains the result of the UpdateCheckpoint operation.
type UpdateCheckpointOutput struct {
	ID         string `json:"id" yaml:"id"`
	CategoryID string `json:"categoryId" yaml:"categoryId"`
	Title      string `json:"title" yaml:"title"`
	SavedAt    string `json:"savedAt" yaml:"savedAt"`
}

// UpdateCheckpoint edits a checkpoint in place and re-stamps savedAt.
func UpdateCheckpoint(s *store.Store, input UpdateCheckpointInput) (*UpdateCheckpointOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	var out UpdateCheckpointOutput
	err := s.Update(func(l *library.Library) error {
		idx := l.FindCheckpoint(id)
		if idx < 0 {
			return errors.NewNotFound("checkpoint", id)
		}
		c := &l.Checkpoints[idx]
		if input.CategoryID != nil && strings.TrimSpace(*input.CategoryID) != "" {
			cid, err := resolveCategory(l, library.KindCheckpoint, *input.CategoryID)
			if err != nil {
				return err
			}
			c.CategoryID = cid
		}
		c.Title = keepTitle(input.Title, c.Title)
		if input.Description != nil {
			c.Description = strings.TrimSpace(*input.Description)
		}
		if input.Body != nil {
			c.Body = cleanBody(*input.Body)
		}
		c.SavedAt = library.Now()
		out = UpdateCheckpointOutput{ID: c.ID, CategoryID: c.CategoryID, Title: c.Title, SavedAt: c.SavedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
