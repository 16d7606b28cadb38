package dataset

import "errors"

var (
	// ErrUnsupported indicates a file format the loader does not read.
	ErrUnsupported = errors.New("unsupported dataset format")
	// ErrUnknownColumn is returned by CheckColumns.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrSheetNotFound is returned when a named XLSX sheet is missing.
	ErrSheetNotFound = errors.New("sheet not found")
)
