package ops

import (
	"slices"
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// DeleteCheckpointInput contains parameters for the DeleteCheckpoint operation.
type DeleteCheckpointInput struct {
	ID string
}

// DeleteCheckpointOutput contains the result of the DeleteCheckpoint operation.
type DeleteCheckpointOutput struct {
	Deleted bool   `json:"deleted" yaml:"deleted"`
	ID      string `json:"id" yaml:"id"`
}

// DeleteCheckpoint removes a checkpoint.
func DeleteCheckpoint(s *store.Store, input DeleteCheckpointInput) (*DeleteCheckpointOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	err := s.Update(func(l *library.Library) error {
		idx := l.FindCheckpoint(id)
		if idx < 0 {
			return errors.NewNotFound("checkpoint", id)
		}
		l.Checkpoints = slices.Delete(l.Checkpoints, idx, idx+1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &DeleteCheckpointOutput{Deleted: true, ID: id}, nil
}
