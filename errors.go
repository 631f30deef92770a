package mpff

import "errors"

// Decode error kinds. Errors returned by this package wrap exactly one of these,
// use errors.Is to inspect the kind.
var (
	ErrTruncatedInput         = errors.New("mpff: truncated input")
	ErrBadMagic               = errors.New("mpff: bad magic number")
	ErrInvalidHeaderSize      = errors.New("mpff: invalid header size")
	ErrHeaderLargerThanFile   = errors.New("mpff: declared file size is not larger than header size")
	ErrUnsupportedDepth       = errors.New("mpff: unsupported bit depth")
	ErrInvalidDimensions      = errors.New("mpff: invalid dimensions")
	ErrTruncatedPixelData     = errors.New("mpff: truncated pixel data")
	ErrBufferAllocationFailed = errors.New("mpff: buffer allocation failed")
)
