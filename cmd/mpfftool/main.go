package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/vearutop/mpff"
	"github.com/zeebo/blake3"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "info":
		if err := runInfo(os.Args[2:]); err != nil {
			fail(err)
		}
	case "convert":
		if err := runConvert(os.Args[2:]); err != nil {
			fail(err)
		}
	case "thumb":
		if err := runThumb(os.Args[2:]); err != nil {
			fail(err)
		}
	case "detect":
		if err := runDetect(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: mpfftool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  info    -in input.mpff [-json] [-v]")
	fmt.Fprintln(os.Stderr, "  convert -in input.mpff -out output.(png|tiff|bmp) [-v]")
	fmt.Fprintln(os.Stderr, "  thumb   -in input.mpff -out output.(png|tiff|bmp) -w 128 [-h 0] [-interp lanczos3] [-v]")
	fmt.Fprintln(os.Stderr, "  detect  -in input")
	fmt.Fprintln(os.Stderr, "Input may be compressed with zstd (.zst) or xz (.xz).")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	inPath := fs.String("in", "", "input MPFF image")
	asJSON := fs.Bool("json", false, "print JSON")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	data, err := readInput(*inPath)
	if err != nil {
		return err
	}
	logger := newLogger(*verbose)
	res, err := mpff.Decode(data, nil, func(o *mpff.DecodeOptions) {
		o.Logger = logger
	})
	if err != nil {
		return err
	}
	info := imageInfo{
		ImageDescriptor: res.Descriptor,
		Scan:            res.Descriptor.ScanDirection.String(),
		Format:          res.Descriptor.PixelFormat.String(),
		PixelDigest:     pixelDigest(res),
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintf(os.Stdout, "size:   %dx%d\n", info.Width, info.Height)
	fmt.Fprintf(os.Stdout, "depth:  %d (%s)\n", info.Depth, info.Format)
	fmt.Fprintf(os.Stdout, "stride: %d\n", info.RowStride)
	fmt.Fprintf(os.Stdout, "scan:   %s\n", info.Scan)
	fmt.Fprintf(os.Stdout, "file:   %d bytes, pixels at %d\n", info.FileSize, info.DataOffset)
	fmt.Fprintf(os.Stdout, "blake3: %s\n", info.PixelDigest)
	return nil
}

type imageInfo struct {
	mpff.ImageDescriptor
	Scan        string `json:"scan"`
	Format      string `json:"format"`
	PixelDigest string `json:"pixelDigest"`
}

// pixelDigest hashes the visible bytes of each row, skipping host padding.
func pixelDigest(res *mpff.DecodedFrame) string {
	h := blake3.New()
	stride := int(res.Descriptor.RowStride)
	for y := 0; y < res.Frame.Height; y++ {
		_, _ = h.Write(res.Frame.Row(y)[:stride])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	inPath := fs.String("in", "", "input file")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	f, err := os.Open(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	defer f.Close()
	ok, err := mpff.IsMPFF(f)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(os.Stdout, "mpff")
		return nil
	}
	fmt.Fprintln(os.Stdout, "not mpff")
	return nil
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	inPath := fs.String("in", "", "input MPFF image")
	outPath := fs.String("out", "", "output image, format by extension")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	return export(*inPath, *outPath, *verbose, nil)
}

func runThumb(args []string) error {
	fs := flag.NewFlagSet("thumb", flag.ContinueOnError)
	inPath := fs.String("in", "", "input MPFF image")
	outPath := fs.String("out", "", "output image, format by extension")
	width := fs.Uint("w", 0, "target width, 0 keeps aspect ratio")
	height := fs.Uint("h", 0, "target height, 0 keeps aspect ratio")
	interpName := fs.String("interp", "lanczos3", "interpolation: nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" || (*width == 0 && *height == 0) {
		return errors.New("missing required arguments")
	}
	interp, err := mpff.ParseInterpolation(*interpName)
	if err != nil {
		return err
	}
	return export(*inPath, *outPath, *verbose, func(o *mpff.ExportOptions) {
		o.Width = *width
		o.Height = *height
		o.Interpolation = interp
	})
}

func export(inPath, outPath string, verbose bool, opt func(o *mpff.ExportOptions)) error {
	enc, err := mpff.EncoderForPath(outPath)
	if err != nil {
		return err
	}
	data, err := readInput(inPath)
	if err != nil {
		return err
	}
	logger := newLogger(verbose)

	var out bytes.Buffer
	err = mpff.Export(&out, data, enc, func(o *mpff.ExportOptions) {
		o.Decode = append(o.Decode, func(o *mpff.DecodeOptions) { o.Logger = logger })
		if opt != nil {
			opt(o)
		}
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(outPath), out.Bytes(), 0o644); err != nil {
		return err
	}
	logger.Debug("written", "path", outPath, "bytes", out.Len())
	return nil
}

// readInput reads the whole input file, transparently decompressing .zst and .xz.
func readInput(path string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("xz: %w", err)
		}
		return io.ReadAll(xr)
	default:
		return io.ReadAll(f)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
