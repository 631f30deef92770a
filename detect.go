package mpff

import (
	"bytes"
	"errors"
	"io"
)

// IsMPFF reports whether r starts with an MPFF file header. It reads at most
// the first 12 bytes and does not validate the rest of the image.
func IsMPFF(r io.Reader) (bool, error) {
	var head [fileHeaderLen]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(head[:len(magic)], magic[:]), nil
}
