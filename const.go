package mpff

const (
	// fileHeaderLen covers magic, file size and header size.
	fileHeaderLen = 12
	infoSizeLen   = 4
	geometryLen   = 4 + 4 + 2

	// headerFieldsLen is the number of bytes read before the pixel data offset is used.
	headerFieldsLen = fileHeaderLen + infoSizeLen + geometryLen

	// fileSizeSlack is subtracted from the input length when the declared
	// file size only covers the headers.
	fileSizeSlack = 2

	supportedDepth = 24
	bytesPerPixel  = 3
)

var magic = [4]byte{'M', 'P', 'F', 'F'}
