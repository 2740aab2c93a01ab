package btp

import (
	"errors"
	"fmt"
)

var (
	ErrBadSignature            = errors.New("invalid BTP signature")
	ErrTruncated               = errors.New("texture data out of container bounds")
	ErrInvalidDimensions       = errors.New("invalid texture dimensions")
	ErrMissingPalette          = errors.New("texture palette missing")
	ErrPaletteIndexOutOfBounds = errors.New("pixel index outside palette")
)

// PageError reports a texture page that could not be decoded.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("texture page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }
