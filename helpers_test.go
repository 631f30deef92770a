package mpff

import "encoding/binary"

type testImage struct {
	width, height int32
	depth         uint16
	fileSize      uint32 // 0 means the buffer length
	headerSize    uint32 // 0 means 26
	infoSize      uint32 // 0 means 14
	trim          int    // bytes cut from the end
	extra         int    // zero bytes appended after the rows
}

// build returns an MPFF buffer whose stored row i is filled with byte i.
func (ti testImage) build() []byte {
	if ti.depth == 0 {
		ti.depth = 24
	}
	if ti.headerSize == 0 {
		ti.headerSize = 26
	}
	if ti.infoSize == 0 {
		ti.infoSize = 14
	}
	rows := ti.height
	if rows < 0 {
		rows = -rows
	}
	stride := 0
	if ti.width > 0 {
		stride = int(RowStride(uint32(ti.width), ti.depth))
	}
	size := int(ti.headerSize) + int(rows)*stride + ti.extra
	if size < headerFieldsLen {
		size = headerFieldsLen
	}
	buf := make([]byte, size)
	copy(buf, "MPFF")
	binary.LittleEndian.PutUint32(buf[8:], ti.headerSize)
	binary.LittleEndian.PutUint32(buf[12:], ti.infoSize)
	binary.LittleEndian.PutUint32(buf[16:], uint32(ti.width))
	binary.LittleEndian.PutUint32(buf[20:], uint32(ti.height))
	binary.LittleEndian.PutUint16(buf[24:], ti.depth)
	for i := 0; i < int(rows); i++ {
		row := buf[int(ti.headerSize)+i*stride : int(ti.headerSize)+(i+1)*stride]
		for j := range row {
			row[j] = byte(i)
		}
	}
	buf = buf[:len(buf)-ti.trim]
	fsize := ti.fileSize
	if fsize == 0 {
		fsize = uint32(len(buf))
	}
	binary.LittleEndian.PutUint32(buf[4:], fsize)
	return buf
}
