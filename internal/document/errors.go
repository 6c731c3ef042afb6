package document

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is the sentinel matched by every MalformedInputError.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError reports a raw input that could not be decoded, or that
// decoded to something other than a keyed structure.
type MalformedInputError struct {
	Source string // input identifier, usually the uploaded file name
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	src := e.Source
	if src == "" {
		src = "document"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", src, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", src, e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformedInput) match any MalformedInputError.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// Malformed builds a MalformedInputError.
func Malformed(source, reason string, err error) *MalformedInputError {
	return &MalformedInputError{Source: source, Reason: reason, Err: err}
}
