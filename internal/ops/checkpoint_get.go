package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
	"github.com/hpungsan/promptlib/internal/textstat"
)

// GetCheckpointInput contains parameters for the GetCheckpoint operation.
type GetCheckpointInput struct {
	ID string
}

// GetCheckpointOutput is a full checkpoint plus its category name and body stats.
type GetCheckpointOutput struct {
	library.Checkpoint `yaml:",inline"`
	CategoryName       string         `json:"category_name" yaml:"category_name"`
	Stats              textstat.Stats `json:"stats" yaml:"stats"`
}

// GetCheckpoint returns one checkpoint by id.
func GetCheckpoint(s *store.Store, input GetCheckpointInput) (*GetCheckpointOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	var out *GetCheckpointOutput
	err := s.View(func(l *library.Library) error {
		idx := l.FindCheckpoint(id)
		if idx < 0 {
			return errors.NewNotFound("checkpoint", id)
		}
		c := l.Checkpoints[idx]
		out = &GetCheckpointOutput{Checkpoint: c, Stats: textstat.Describe(c.Body)}
		if ci := l.FindCategory(library.KindCheckpoint, c.CategoryID); ci >= 0 {
			out.CategoryName = l.CheckpointCategories[ci].Name
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
