package mpff

import (
	"bytes"
	"image"
	"sync"
	"testing"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(MPFFCodec()); err != nil {
		t.Fatalf("register: %v", err)
	}

	c, ok := r.Lookup("mpff")
	if !ok {
		t.Fatalf("mpff not found")
	}
	if c.ID != CodecIDMPFF || c.Capabilities&CapDirectRendering == 0 {
		t.Fatalf("unexpected record: %+v", c)
	}
	if c2, ok := r.LookupID(CodecIDMPFF); !ok || c2.Name != "mpff" {
		t.Fatalf("lookup by id failed: %+v", c2)
	}
	if _, ok := r.Lookup("bmp"); ok {
		t.Fatalf("unexpected bmp codec")
	}

	res, err := c.Decode(testImage{width: 2, height: 2}.build(), nil, quiet)
	if err != nil {
		t.Fatalf("decode through registry: %v", err)
	}
	if res.Descriptor.Width != 2 {
		t.Fatalf("width: got %d", res.Descriptor.Width)
	}
}

func TestRegistryRejects(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(MPFFCodec()); err != nil {
		t.Fatalf("register: %v", err)
	}

	dupName := MPFFCodec()
	dupName.ID = 1
	dupID := MPFFCodec()
	dupID.Name = "mpff2"
	noName := MPFFCodec()
	noName.Name = ""
	noDecode := MPFFCodec()
	noDecode.Name, noDecode.ID, noDecode.Decode = "nodecode", 2, nil

	for name, c := range map[string]Codec{
		"duplicate_name": dupName,
		"duplicate_id":   dupID,
		"empty_name":     noName,
		"nil_decode":     noDecode,
	} {
		if err := r.Register(c); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if names := r.Names(); len(names) != 1 || names[0] != "mpff" {
		t.Fatalf("names: got %v", names)
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := MPFFCodec()
			c.Name = string(rune('a' + i))
			c.ID = CodecID(i)
			_ = r.Register(c)
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Lookup("a")
			_ = r.Names()
		}()
	}
	wg.Wait()
	if n := len(r.Names()); n != 16 {
		t.Fatalf("registered: got %d want 16", n)
	}
}

func TestRegisterImageFormat(t *testing.T) {
	RegisterImageFormat()
	RegisterImageFormat()

	data := testImage{width: 3, height: -2}.build()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if format != "mpff" || cfg.Width != 3 || cfg.Height != 2 {
		t.Fatalf("config mismatch: %s %dx%d", format, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "mpff" {
		t.Fatalf("format: got %s", format)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 3, 2); got != want {
		t.Fatalf("bounds mismatch: got %v want %v", got, want)
	}
}
