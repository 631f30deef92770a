package mpff

import (
	"errors"
	"image"
	"image/color"
	"io"
)

// BGR is an image.Image view over a decoded BGR24 frame.
type BGR struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewBGR wraps f without copying its pixels.
func NewBGR(f *Frame) (*BGR, error) {
	if f == nil || f.Format != PixelFormatBGR24 {
		return nil, errors.New("frame is not bgr24")
	}
	return &BGR{
		Pix:    f.Pix,
		Stride: f.Linesize,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}, nil
}

// ColorModel implements image.Image.
func (p *BGR) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (p *BGR) Bounds() image.Rectangle { return p.Rect }

// At implements image.Image.
func (p *BGR) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

// RGBAAt returns the pixel at (x, y) as opaque color.RGBA.
func (p *BGR) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return color.RGBA{R: s[2], G: s[1], B: s[0], A: 0xff}
}

// PixOffset returns the index of the first byte of pixel (x, y) in Pix.
func (p *BGR) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*bytesPerPixel
}

// ToRGBA converts the view to a newly allocated *image.RGBA.
func (p *BGR) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, p.Rect.Dx(), p.Rect.Dy()))
	for y := 0; y < p.Rect.Dy(); y++ {
		src := p.Pix[y*p.Stride:]
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < p.Rect.Dx(); x++ {
			row[x*4] = src[x*3+2]
			row[x*4+1] = src[x*3+1]
			row[x*4+2] = src[x*3]
			row[x*4+3] = 0xff
		}
	}
	return dst
}

// DecodeImage reads a whole MPFF image from r.
func DecodeImage(r io.Reader, opts ...func(o *DecodeOptions)) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	res, err := Decode(data, nil, opts...)
	if err != nil {
		return nil, err
	}
	return NewBGR(res.Frame)
}

// DecodeConfig returns the dimensions and color model of an MPFF image in r.
func DecodeConfig(r io.Reader, opts ...func(o *DecodeOptions)) (image.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}
	_, desc, err := ParseHeader(data, opts...)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      int(desc.Width),
		Height:     int(desc.Height),
	}, nil
}
