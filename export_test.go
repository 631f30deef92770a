package mpff

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestExportBMP(t *testing.T) {
	data := testImage{width: 5, height: 3}.build()
	src, err := DecodeImage(bytes.NewReader(data), quiet)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var buf bytes.Buffer
	if err := Export(&buf, data, EncodeBMP, func(o *ExportOptions) {
		o.Decode = append(o.Decode, quiet)
	}); err != nil {
		t.Fatalf("export: %v", err)
	}

	got, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("bmp decode: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds mismatch: got %v want %v", got.Bounds(), src.Bounds())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			g := color.RGBAModel.Convert(got.At(x, y))
			w := color.RGBAModel.Convert(src.At(x, y))
			if g != w {
				t.Fatalf("pixel (%d,%d): got %v want %v", x, y, g, w)
			}
		}
	}
}

func TestExportFileTIFF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.mpff")
	out := filepath.Join(dir, "out.tiff")
	if err := os.WriteFile(in, testImage{width: 8, height: -4}.build(), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := ExportFile(in, out, func(o *ExportOptions) {
		o.Decode = append(o.Decode, quiet)
		o.Width = 4
	}); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		t.Fatalf("tiff decode: %v", err)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 4, 2); got != want {
		t.Fatalf("bounds mismatch: got %v want %v", got, want)
	}
}

func TestEncoderForPath(t *testing.T) {
	for _, p := range []string{"a.png", "a.PNG", "a.bmp", "a.tif", "a.tiff"} {
		if _, err := EncoderForPath(p); err != nil {
			t.Errorf("%s: %v", p, err)
		}
	}
	if _, err := EncoderForPath("a.jpg"); err == nil {
		t.Fatalf("expected error for jpg")
	}
}

func TestExportPropagatesDecodeError(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, []byte("MPFX0000000000000000000000"), EncodePNG, func(o *ExportOptions) {
		o.Decode = append(o.Decode, quiet)
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output on error")
	}
}

func TestExportFileBadInputWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.mpff")
	out := filepath.Join(dir, "out.png")
	if err := os.WriteFile(in, testImage{width: 4, height: 2, trim: 1}.build(), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	err := ExportFile(in, out, func(o *ExportOptions) {
		o.Decode = append(o.Decode, quiet)
	})
	if !errors.Is(err, ErrTruncatedPixelData) {
		t.Fatalf("expected ErrTruncatedPixelData, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output file created on decode error: %v", err)
	}
}
