package engine

import "errors"

var (
	// ErrInvalidImage marks an image that cannot be placed: unreadable
	// data or a zero-area natural size.
	ErrInvalidImage = errors.New("invalid image")

	// ErrUnsupportedFitMode marks a fit mode token outside
	// contain/cover/stretch.
	ErrUnsupportedFitMode = errors.New("unsupported fit mode")
)
