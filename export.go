package mpff

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ExportOptions controls ExportFile.
type ExportOptions struct {
	Decode []func(o *DecodeOptions)
	// Width and Height resize the image before encoding when either is non-zero.
	Width, Height uint
	Interpolation Interpolation
}

// EncodeTIFF writes img as a deflate-compressed TIFF.
func EncodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// EncodeBMP writes img as an uncompressed BMP.
func EncodeBMP(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncoderForPath returns an encoder chosen by the extension of path.
func EncoderForPath(path string) (func(w io.Writer, img image.Image) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return EncodeTIFF, nil
	case ".bmp":
		return EncodeBMP, nil
	case ".png":
		return EncodePNG, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}

// Export decodes an MPFF image from data and writes it to w with enc.
func Export(w io.Writer, data []byte, enc func(w io.Writer, img image.Image) error, opts ...func(o *ExportOptions)) error {
	opt := ExportOptions{Interpolation: InterpolationLanczos3}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	res, err := Decode(data, nil, opt.Decode...)
	if err != nil {
		return err
	}
	var img image.Image
	img, err = NewBGR(res.Frame)
	if err != nil {
		return err
	}
	if opt.Width != 0 || opt.Height != 0 {
		img, err = Resize(img, opt.Width, opt.Height, opt.Interpolation)
		if err != nil {
			return fmt.Errorf("resize: %w", err)
		}
	}
	return enc(w, img)
}

// ExportFile reads an MPFF image from inPath and writes it to outPath in the
// format implied by the outPath extension. Nothing is written when decoding fails.
func ExportFile(inPath, outPath string, opts ...func(o *ExportOptions)) error {
	enc, err := EncoderForPath(outPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Clean(inPath))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Export(&buf, data, enc, opts...); err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(outPath), buf.Bytes(), 0o644)
}
