package ops

import (
	"strings"

	"github.com/hpungsan/promptlib/internal/db"
	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// Reset modes.
const (
	ResetSample = "sample"
	ResetClear  = "clear"
)

// ResetInput contains parameters for the Reset operation.
type ResetInput struct {
	Mode string // sample (default) or clear
}

// ResetOutput contains the result of the Reset operation.
type ResetOutput struct {
	Mode                string `json:"mode" yaml:"mode"`
	store.ReplaceResult `yaml:",inline"`
}

// Reset replaces the library with the seed or an empty document. The
// current document is snapshotted first when a journal is configured.
func Reset(s *store.Store, input ResetInput) (*ResetOutput, error) {
	mode := strings.ToLower(strings.TrimSpace(input.Mode))
	var next *library.Library
	switch mode {
	case "", ResetSample:
		mode = ResetSample
		next = library.Seed()
	case ResetClear:
		next = library.Empty()
	default:
		return nil, errors.NewInvalidRequest("mode must be sample or clear")
	}

	res, err := s.Replace(db.ReasonReset, mode, next)
	if err != nil {
		return nil, err
	}
	return &ResetOutput{Mode: mode, ReplaceResult: *res}, nil
}
