package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/db"
	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/store"
)

// ListSnapshotsInput contains parameters for the ListSnapshots operation.
type ListSnapshotsInput struct {
	Limit  int // default: 20, max: 100
	Offset int
}

// ListSnapshotsOutput contains the result of the ListSnapshots operation.
type ListSnapshotsOutput struct {
	Items      []db.Snapshot `json:"items" yaml:"items"`
	Pagination Pagination    `json:"pagination" yaml:"pagination"`
}

// ListSnapshots returns snapshot metadata, newest first.
func ListSnapshots(s *store.Store, input ListSnapshotsInput) (*ListSnapshotsOutput, error) {
	journal, err := requireJournal(s)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSnapshotLimit
	}
	if limit > MaxSnapshotLimit {
		limit = MaxSnapshotLimit
	}
	offset := max(input.Offset, 0)

	items, err := journal.List(limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []db.Snapshot{}
	}
	total, err := journal.Count()
	if err != nil {
		return nil, err
	}

	return &ListSnapshotsOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}

// RestoreSnapshotInput contains parameters for the RestoreSnapshot operation.
type RestoreSnapshotInput struct {
	ID string
}

// RestoreSnapshotOutput contains the result of the RestoreSnapshot operation.
type RestoreSnapshotOutput struct {
	RestoredID          string `json:"restored_id" yaml:"restored_id"`
	store.ReplaceResult `yaml:",inline"`
}

// RestoreSnapshot replaces the library with a snapshot's content. The
// content goes through the same checks as an import, so a snapshot of an
// unreadable file fails with PARSE_ERROR or VALIDATION_ERROR.
func RestoreSnapshot(s *store.Store, input RestoreSnapshotInput) (*RestoreSnapshotOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	journal, err := requireJournal(s)
	if err != nil {
		return nil, err
	}

	snap, err := journal.Get(id)
	if err != nil {
		return nil, err
	}
	lib, err := store.DecodeDocument([]byte(snap.Content), "snapshot "+id)
	if err != nil {
		return nil, err
	}
	res, err := s.Replace(db.ReasonRestore, id, lib)
	if err != nil {
		return nil, err
	}
	return &RestoreSnapshotOutput{RestoredID: id, ReplaceResult: *res}, nil
}

func requireJournal(s *store.Store) (store.Journal, error) {
	journal := s.Journal()
	if journal == nil {
		return nil, errors.NewInvalidRequest("snapshot journal is not available")
	}
	return journal, nil
}
