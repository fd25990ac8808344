package ops

import (
	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

// ValidateInput contains parameters for the Validate operation.
type ValidateInput struct {
	Path string
}

// ValidateOutput contains the result of the Validate operation.
type ValidateOutput struct {
	Path   string          `json:"path" yaml:"path"`
	Valid  bool            `json:"valid" yaml:"valid"`
	Code   string          `json:"code,omitempty" yaml:"code,omitempty"`
	Reason string          `json:"reason,omitempty" yaml:"reason,omitempty"`
	Counts *library.Counts `json:"counts,omitempty" yaml:"counts,omitempty"`
}

// Validate checks a file against the import rules without importing it.
// Parse and shape failures are reported in the output, not as errors.
func Validate(input ValidateInput) (*ValidateOutput, error) {
	lib, err := store.ReadCandidate(input.Path)
	if err != nil {
		if errors.Is(err, errors.ErrParse) || errors.Is(err, errors.ErrValidation) {
			lErr := err.(*errors.LibError)
			return &ValidateOutput{
				Path:   input.Path,
				Valid:  false,
				Code:   string(lErr.Code),
				Reason: lErr.Message,
			}, nil
		}
		return nil, err
	}
	counts := lib.Counts()
	return &ValidateOutput{Path: input.Path, Valid: true, Counts: &counts}, nil
}
