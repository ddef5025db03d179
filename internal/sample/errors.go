package sample

import "errors"

// Data-shape errors.
var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing column")

	// ErrEmptyHeader is returned when a dataset is built without any column.
	ErrEmptyHeader = errors.New("dataset header is empty")

	// ErrRaggedRow is returned when a row carries more non-empty cells than the header has columns.
	ErrRaggedRow = errors.New("row is wider than header")
)
