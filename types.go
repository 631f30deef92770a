package mpff

import "log/slog"

// PixelFormat identifies the layout of a decoded pixel plane.
type PixelFormat int

const (
	// PixelFormatNone is an unset pixel format.
	PixelFormatNone PixelFormat = iota
	// PixelFormatBGR24 is packed 8-bit blue, green, red.
	PixelFormatBGR24
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatBGR24:
		return "bgr24"
	default:
		return "none"
	}
}

// ScanDirection tells whether stored row 0 is the visual top or bottom of the image.
type ScanDirection int

const (
	// TopDown means stored row 0 is the visual top.
	TopDown ScanDirection = iota
	// BottomUp means stored row 0 is the visual bottom.
	BottomUp
)

func (d ScanDirection) String() string {
	if d == BottomUp {
		return "bottom-up"
	}
	return "top-down"
}

// PictureType mirrors the picture type set on decoded frames.
type PictureType int

const (
	PictureTypeNone PictureType = iota
	// PictureTypeI is an intra frame, decodable on its own.
	PictureTypeI
)

// RawHeader holds the header fields as they appear on the wire.
type RawHeader struct {
	Magic          [4]byte
	FileSize       uint32
	HeaderSize     uint32
	InfoHeaderSize uint32
	Width          int32
	Height         int32
	Depth          uint16
}

// ImageDescriptor is the validated geometry derived from a RawHeader.
type ImageDescriptor struct {
	Width         uint32        `json:"width"`
	Height        uint32        `json:"height"`
	Depth         uint16        `json:"depth"`
	PixelFormat   PixelFormat   `json:"pixelFormat"`
	RowStride     uint32        `json:"rowStride"`
	ScanDirection ScanDirection `json:"scanDirection"`
	// FileSize is the effective file size after clamping and header-only fixups.
	FileSize uint32 `json:"fileSize"`
	// DataOffset is the absolute offset of the first pixel row.
	DataOffset uint32 `json:"dataOffset"`
}

// DecodedFrame is the result of a successful Decode.
type DecodedFrame struct {
	Frame      *Frame
	Descriptor ImageDescriptor
	// Consumed is the number of input bytes consumed, always the full input.
	Consumed int
}

// DecodeOptions controls MPFF decoding.
type DecodeOptions struct {
	// Logger receives diagnostics, slog.Default() is used when nil.
	Logger *slog.Logger
	// MaxPixels bounds width*height when positive, there is no limit by default.
	MaxPixels int64
	// Provider is used when Decode is called with a nil FrameProvider.
	Provider FrameProvider
}

func decodeOptions(opts []func(o *DecodeOptions)) DecodeOptions {
	opt := DecodeOptions{}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Provider == nil {
		opt.Provider = AllocProvider{}
	}
	return opt
}

// RowStride returns the stored row length in bytes for the given width and depth,
// rounded up to a multiple of 4.
func RowStride(width uint32, depth uint16) uint64 {
	return ((uint64(width)*uint64(depth) + 31) / 8) &^ 3
}
