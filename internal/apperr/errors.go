// Package apperr defines sentinel errors shared across service layers.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnknownSet        = errors.New("unknown question set")
	ErrUnsupportedSource = errors.New("unsupported source type")
	ErrInvalidStatus     = errors.New("invalid status")
)
