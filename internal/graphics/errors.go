package graphics

import (
	"errors"
	"fmt"
)

// ErrAllocation reports a pixel buffer that could not be allocated, either
// because its declared size exceeds the configured limit or the geometry is
// invalid. It is fatal to the render loop.
var ErrAllocation = errors.New("pixel buffer allocation failed")

// DecodeError reports page bytes that are not a decodable image. The render
// loop shows a message for the page and keeps going.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode page: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a pixel buffer the graphics encoder rejected.
type EncodeError struct {
	Mode Mode
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s output: %v", e.Mode, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
