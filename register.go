package mpff

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sort"
	"sync"
)

// CodecID identifies a codec within a Registry.
type CodecID int

// CodecIDMPFF is the identifier of the MPFF decoder.
const CodecIDMPFF CodecID = 0x4d504646

// Capability is a set of codec capability flags.
type Capability uint32

const (
	// CapDirectRendering means the codec writes into buffers supplied by the host.
	CapDirectRendering Capability = 1 << iota
)

// DecodeFunc is a codec decode entry point.
type DecodeFunc func(data []byte, provider FrameProvider, opts ...func(o *DecodeOptions)) (*DecodedFrame, error)

// Codec is a registration record for a decoder.
type Codec struct {
	Name         string
	LongName     string
	ID           CodecID
	Decode       DecodeFunc
	Capabilities Capability
}

// MPFFCodec returns the registration record of this package's decoder.
func MPFFCodec() Codec {
	return Codec{
		Name:         "mpff",
		LongName:     "MPFF (BMP-like uncompressed BGR24 image)",
		ID:           CodecIDMPFF,
		Decode:       Decode,
		Capabilities: CapDirectRendering,
	}
}

// Registry holds codec records registered at process start.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Codec
	byID   map[CodecID]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Codec),
		byID:   make(map[CodecID]string),
	}
}

// Register adds c to the registry.
func (r *Registry) Register(c Codec) error {
	if c.Name == "" {
		return errors.New("codec name is empty")
	}
	if c.Decode == nil {
		return fmt.Errorf("codec %s: decode entry point is nil", c.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[c.Name]; ok {
		return fmt.Errorf("codec %s already registered", c.Name)
	}
	if name, ok := r.byID[c.ID]; ok {
		return fmt.Errorf("codec id %#x already registered by %s", c.ID, name)
	}
	r.byName[c.Name] = c
	r.byID[c.ID] = c.Name
	return nil
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byName[name]
	return c, ok
}

// LookupID returns the codec registered with id.
func (r *Registry) LookupID(id CodecID) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byID[id]
	if !ok {
		return Codec{}, false
	}
	return r.byName[name], true
}

// Names returns registered codec names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var registerImageOnce sync.Once

// RegisterImageFormat registers MPFF with the standard image package so that
// image.Decode and image.DecodeConfig recognize it. Repeated calls are no-ops.
func RegisterImageFormat() {
	registerImageOnce.Do(func() {
		image.RegisterFormat("mpff", string(magic[:]),
			func(r io.Reader) (image.Image, error) { return DecodeImage(r) },
			func(r io.Reader) (image.Config, error) { return DecodeConfig(r) },
		)
	})
}
