package netgraph

import (
	"errors"
	"fmt"
)

var (
	// ErrSeriesLength is matched by the InputError Pearson returns for
	// series of different lengths.
	ErrSeriesLength     = errors.New("series must have the same length")
	ErrUnknownLayout    = errors.New("unknown layout mode")
	ErrUnknownNodeSize  = errors.New("unknown node size")
	ErrUnknownGraphType = errors.New("unknown graph type")
)

// InputError reports a caller contract violation. Data-quality problems
// (blank or non-numeric cells) never produce one.
type InputError struct {
	Op  string
	Err error
	Msg string
}

func (e *InputError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Msg)
}

func (e *InputError) Unwrap() error { return e.Err }
