package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// SaveCheckpointInput contains parameters for the SaveCheckpoint operation.
type SaveCheckpointInput struct {
	CategoryID  string // optional, defaults to the first checkpoint category
	Title       string // optional, defaults to "New checkpoint"
	Description string
	Body        string
}

// SaveCheckpointOutput contains the result of the SaveCheckpoint operation.
type SaveCheckpointOutput struct {
	ID         string `json:"id" yaml:"id"`
	CategoryID string `json:"categoryId" yaml:"categoryId"`
	Title      string `json:"title" yaml:"title"`
	SavedAt    string `json:"savedAt" yaml:"savedAt"`
}

// SaveCheckpoint records a new checkpoint stamped with the current time.
func SaveCheckpoint(s *store.Store, input SaveCheckpointInput) (*SaveCheckpointOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = DefaultCheckpointTitle
	}
	c := library.Checkpoint{
		ID:          library.NewID(library.PrefixCheckpoint),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Body:        cleanBody(input.Body),
		SavedAt:     library.Now(),
	}

	err := s.Update(func(l *library.Library) error {
		categoryID, err := resolveCategory(l, library.KindCheckpoint, input.CategoryID)
		if err != nil {
			return err
		}
		c.CategoryID = categoryID
		l.Checkpoints = append(l.Checkpoints, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SaveCheckpointOutput{ID: c.ID, CategoryID: c.CategoryID, Title: c.Title, SavedAt: c.SavedAt}, nil
}
