package studio

import "errors"

var (
	// ErrEmptyConcept rejects a batch whose concept is blank.
	ErrEmptyConcept = errors.New("studio: concept is required")
	// ErrInvalidCount rejects a batch size outside 1..MaxBatch.
	ErrInvalidCount = errors.New("studio: count must be between 1 and 4")
	// ErrBatchFailed means every generation of a batch came back empty.
	ErrBatchFailed = errors.New("studio: no designs were generated, please try again")
	// ErrDesignBusy means another operation holds the design.
	ErrDesignBusy = errors.New("studio: design is busy")
	// ErrInvalidView rejects a view the operation cannot target.
	ErrInvalidView = errors.New("studio: invalid view")
)
