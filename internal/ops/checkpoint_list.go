package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// ListCheckpointsInput contains parameters for the ListCheckpoints operation.
type ListCheckpointsInput struct {
	CategoryID string // optional; empty lists every checkpoint
}

// CheckpointSummary is a checkpoint without its body.
type CheckpointSummary struct {
	ID          string `json:"id" yaml:"id"`
	CategoryID  string `json:"categoryId" yaml:"categoryId"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	SavedAt     string `json:"savedAt" yaml:"savedAt"`
}

// ListCheckpointsOutput contains the result of the ListCheckpoints operation.
type ListCheckpointsOutput struct {
	CategoryID string              `json:"categoryId,omitempty" yaml:"categoryId,omitempty"`
	Items      []CheckpointSummary `json:"items" yaml:"items"`
}

// ListCheckpoints returns checkpoint summaries in document order.
func ListCheckpoints(s *store.Store, input ListCheckpointsInput) (*ListCheckpointsOutput, error) {
	categoryID := strings.TrimSpace(input.CategoryID)
	out := &ListCheckpointsOutput{CategoryID: categoryID, Items: []CheckpointSummary{}}

	err := s.View(func(l *library.Library) error {
		if categoryID != "" && l.FindCategory(library.KindCheckpoint, categoryID) < 0 {
			return errors.NewNotFound("checkpoint category", categoryID)
		}
		for _, c := range l.CheckpointsIn(categoryID) {
			out.Items = append(out.Items, CheckpointSummary{
				ID:          c.ID,
				CategoryID:  c.CategoryID,
				Title:       c.Title,
				Description: c.Description,
				SavedAt:     c.SavedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
