// Package mpff provides a pure-Go decoder for the MPFF raster image format.
//
// MPFF is a BMP-like container: a "MPFF" magic, a file header with the declared
// file size and pixel data offset, an info header with geometry and bit depth, and
// uncompressed BGR rows padded to 4 bytes, stored bottom-up unless the height is negative.
// Decoding is stateless; destination buffers are obtained from a FrameProvider.
package mpff
