package mpff

import (
	"errors"
	"fmt"
)

// Frame is a writable packed pixel plane.
type Frame struct {
	Width  int
	Height int
	Format PixelFormat
	// Linesize is the distance in bytes between the starts of consecutive rows,
	// it may exceed the number of bytes holding pixels.
	Linesize    int
	Pix         []byte
	KeyFrame    bool
	PictureType PictureType
}

// Row returns the Linesize-wide slice of row y.
func (f *Frame) Row(y int) []byte {
	start := y * f.Linesize
	end := start + f.Linesize
	if end > len(f.Pix) {
		end = len(f.Pix)
	}
	return f.Pix[start:end]
}

// FrameProvider supplies destination buffers to the decoder.
type FrameProvider interface {
	AcquireFrame(width, height int, format PixelFormat) (*Frame, error)
}

// FrameProviderFunc adapts a function to FrameProvider.
type FrameProviderFunc func(width, height int, format PixelFormat) (*Frame, error)

// AcquireFrame calls f.
func (f FrameProviderFunc) AcquireFrame(width, height int, format PixelFormat) (*Frame, error) {
	return f(width, height, format)
}

// AllocProvider allocates a fresh frame on every call.
// Rows are padded to 4 bytes like stored MPFF rows.
type AllocProvider struct {
	// Align rounds Linesize further up to a multiple of Align when greater than 1.
	Align int
}

// AcquireFrame allocates a zeroed frame.
func (p AllocProvider) AcquireFrame(width, height int, format PixelFormat) (*Frame, error) {
	if format != PixelFormatBGR24 {
		return nil, fmt.Errorf("unsupported pixel format %s", format)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New("invalid frame dimensions")
	}
	linesize := (width*bytesPerPixel + 3) &^ 3
	if p.Align > 1 {
		linesize = (linesize + p.Align - 1) / p.Align * p.Align
	}
	return &Frame{
		Width:    width,
		Height:   height,
		Format:   format,
		Linesize: linesize,
		Pix:      make([]byte, linesize*height),
	}, nil
}
