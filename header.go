package mpff

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
)

type byteCursor struct {
	buf []byte
	pos int
}

func (c *byteCursor) u32() (uint32, bool) {
	if len(c.buf)-c.pos < 4 {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, true
}

func (c *byteCursor) u16() (uint16, bool) {
	if len(c.buf)-c.pos < 2 {
		return 0, false
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, true
}

// ParseHeader reads and validates the MPFF headers without touching pixel data
// beyond checking that enough of it is present.
func ParseHeader(data []byte, opts ...func(o *DecodeOptions)) (*RawHeader, *ImageDescriptor, error) {
	opt := decodeOptions(opts)
	return parseHeader(data, &opt)
}

func parseHeader(data []byte, opt *DecodeOptions) (*RawHeader, *ImageDescriptor, error) {
	log := opt.Logger
	size := len(data)

	if size < fileHeaderLen {
		log.Error("buf size too small", "size", size)
		return nil, nil, fmt.Errorf("%w: buf size too small (%d)", ErrTruncatedInput, size)
	}

	var h RawHeader
	copy(h.Magic[:], data[:4])
	if h.Magic != magic {
		log.Error("bad magic number", "magic", fmt.Sprintf("%q", h.Magic[:]))
		return nil, nil, fmt.Errorf("%w: %q", ErrBadMagic, h.Magic[:])
	}

	c := byteCursor{buf: data, pos: 4}
	h.FileSize, _ = c.u32()
	h.HeaderSize, _ = c.u32()
	ihsize, ok := c.u32()
	if !ok {
		log.Error("info header size missing", "size", size)
		return nil, nil, fmt.Errorf("%w: info header size missing (%d bytes)", ErrTruncatedInput, size)
	}
	h.InfoHeaderSize = ihsize

	fsize := uint64(h.FileSize)
	hsize := uint64(h.HeaderSize)
	if uint64(size) < fsize {
		log.Warn("not enough data, trying to decode anyway", "declared", fsize, "actual", size)
		fsize = uint64(size)
	}

	if uint64(h.InfoHeaderSize)+fileHeaderLen > hsize {
		log.Error("invalid header size", "headerSize", hsize, "infoHeaderSize", h.InfoHeaderSize)
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidHeaderSize, hsize)
	}

	// Some producers set the file size to a header size, use the real size instead.
	if fsize == fileHeaderLen || fsize == uint64(h.InfoHeaderSize)+fileHeaderLen {
		fsize = uint64(size - fileSizeSlack)
	}

	if fsize <= hsize {
		log.Error("declared file size is less than header size", "fileSize", fsize, "headerSize", hsize)
		return nil, nil, fmt.Errorf("%w: %d <= %d", ErrHeaderLargerThanFile, fsize, hsize)
	}

	if size < headerFieldsLen {
		log.Error("geometry fields missing", "size", size)
		return nil, nil, fmt.Errorf("%w: geometry missing (%d bytes)", ErrTruncatedInput, size)
	}
	w, _ := c.u32()
	ht, _ := c.u32()
	h.Depth, _ = c.u16()
	h.Width, h.Height = int32(w), int32(ht)

	desc, err := describe(&h, opt)
	if err != nil {
		log.Error("invalid geometry", "width", h.Width, "height", h.Height, "depth", h.Depth, "error", err)
		return nil, nil, err
	}
	desc.FileSize = uint32(fsize)

	need := hsize + uint64(desc.Height)*uint64(desc.RowStride)
	if need > uint64(size) {
		log.Error("not enough pixel data", "need", need, "size", size)
		return nil, nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedPixelData, need, size)
	}

	log.Debug("mpff header",
		slog.Int("width", int(desc.Width)),
		slog.Int("height", int(desc.Height)),
		slog.Int("depth", int(desc.Depth)),
		slog.Int("stride", int(desc.RowStride)),
		slog.String("scan", desc.ScanDirection.String()),
	)

	return &h, desc, nil
}

func describe(h *RawHeader, opt *DecodeOptions) (*ImageDescriptor, error) {
	if h.Depth != supportedDepth {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedDepth, h.Depth)
	}

	height := int64(h.Height)
	scan := TopDown
	if height > 0 {
		scan = BottomUp
	} else {
		height = -height
	}
	if h.Width <= 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, h.Width, h.Height)
	}
	if opt.MaxPixels > 0 && int64(h.Width)*height > opt.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimensions, h.Width, height, opt.MaxPixels)
	}

	stride := RowStride(uint32(h.Width), h.Depth)
	if stride > math.MaxInt32 {
		return nil, fmt.Errorf("%w: row stride %d too large", ErrInvalidDimensions, stride)
	}

	return &ImageDescriptor{
		Width:         uint32(h.Width),
		Height:        uint32(height),
		Depth:         h.Depth,
		PixelFormat:   PixelFormatBGR24,
		RowStride:     uint32(stride),
		ScanDirection: scan,
		DataOffset:    h.HeaderSize,
	}, nil
}
