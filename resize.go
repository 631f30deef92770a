package mpff

import (
	"errors"
	"image"

	"github.com/nfnt/resize"
)

// Interpolation selects the resampling filter.
type Interpolation int

const (
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest Interpolation = iota
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

var interpolationNames = map[string]Interpolation{
	"nearest":  InterpolationNearest,
	"bilinear": InterpolationBilinear,
	"bicubic":  InterpolationBicubic,
	"mitchell": InterpolationMitchellNetravali,
	"lanczos2": InterpolationLanczos2,
	"lanczos3": InterpolationLanczos3,
}

// ParseInterpolation resolves a name like "lanczos3" to an Interpolation.
func ParseInterpolation(name string) (Interpolation, error) {
	interp, ok := interpolationNames[name]
	if !ok {
		return 0, errors.New("unknown interpolation " + name)
	}
	return interp, nil
}

func (i Interpolation) filter() resize.InterpolationFunction {
	switch i {
	case InterpolationBilinear:
		return resize.Bilinear
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// Resize scales img to width x height. A zero dimension is derived from the
// other one preserving the aspect ratio.
func Resize(img image.Image, width, height uint, interp Interpolation) (image.Image, error) {
	if width == 0 && height == 0 {
		return nil, errors.New("invalid target dimensions")
	}
	return resize.Resize(width, height, rgbaSource(img), interp.filter()), nil
}

// Thumbnail downscales img to fit within maxWidth x maxHeight preserving the
// aspect ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxWidth, maxHeight uint, interp Interpolation) (image.Image, error) {
	if maxWidth == 0 || maxHeight == 0 {
		return nil, errors.New("invalid target dimensions")
	}
	return resize.Thumbnail(maxWidth, maxHeight, rgbaSource(img), interp.filter()), nil
}

// rgbaSource converts BGR views so that resize takes its fast RGBA path.
func rgbaSource(img image.Image) image.Image {
	if p, ok := img.(*BGR); ok {
		return p.ToRGBA()
	}
	return img
}
