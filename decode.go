package mpff

import "fmt"

// Decode validates an MPFF image held entirely in data and copies its rows into
// a frame acquired from provider. When provider is nil, DecodeOptions.Provider is used.
//
// Stored rows are flipped for bottom-up images so that row 0 of the frame is
// always the visual top. Only RowStride bytes are written per row, padding beyond
// that in the frame is left as provided.
func Decode(data []byte, provider FrameProvider, opts ...func(o *DecodeOptions)) (*DecodedFrame, error) {
	opt := decodeOptions(opts)
	if provider == nil {
		provider = opt.Provider
	}

	_, desc, err := parseHeader(data, &opt)
	if err != nil {
		return nil, err
	}

	width, height := int(desc.Width), int(desc.Height)
	stride := int(desc.RowStride)

	frame, err := provider.AcquireFrame(width, height, desc.PixelFormat)
	if err != nil {
		opt.Logger.Error("get buffer failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrBufferAllocationFailed, err)
	}
	if err := checkFrame(frame, height, stride); err != nil {
		opt.Logger.Error("get buffer failed", "error", err)
		return nil, err
	}

	copyRows(frame, data[desc.DataOffset:], height, stride, desc.ScanDirection)

	frame.PictureType = PictureTypeI
	frame.KeyFrame = true

	return &DecodedFrame{
		Frame:      frame,
		Descriptor: *desc,
		Consumed:   len(data),
	}, nil
}

func checkFrame(frame *Frame, height, stride int) error {
	if frame == nil {
		return fmt.Errorf("%w: provider returned no frame", ErrBufferAllocationFailed)
	}
	if frame.Linesize < stride {
		return fmt.Errorf("%w: linesize %d is less than row stride %d", ErrBufferAllocationFailed, frame.Linesize, stride)
	}
	if need := (height-1)*frame.Linesize + stride; len(frame.Pix) < need {
		return fmt.Errorf("%w: frame holds %d bytes, need %d", ErrBufferAllocationFailed, len(frame.Pix), need)
	}
	return nil
}

// copyRows copies height rows of stride bytes from src into frame.
// File row i lands in frame row height-1-i for bottom-up images.
func copyRows(frame *Frame, src []byte, height, stride int, scan ScanDirection) {
	for i := 0; i < height; i++ {
		y := i
		if scan == BottomUp {
			y = height - 1 - i
		}
		off := y * frame.Linesize
		copy(frame.Pix[off:off+stride], src[i*stride:(i+1)*stride])
	}
}
