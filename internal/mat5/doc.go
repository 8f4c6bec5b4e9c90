// Package mat5 writes numeric variables in the MATLAB Level 5 MAT-file
// format and scans the files it writes.
//
// # File Structure
//
// A file starts with a 128-byte header: 116 bytes of descriptive text padded
// with spaces, an 8-byte subsystem offset of zeros, the version 0x0100 and the
// endian marker "IM" (little-endian). Data elements follow.
//
// # Matrix Elements
//
// Every variable is one miMATRIX element:
//
//	tag          miMATRIX (14), payload bytes
//	array flags  miUINT32 tag, 8 bytes: class, 0
//	dimensions   miINT32 tag, 4*rank bytes, padded to 8
//	name         miINT8 tag, name bytes, padded to 8
//	real part    element type tag, data bytes, padded to 8
//
// For a rank-2 matrix the payload size is
//
//	48 + name + namePad + data + dataPad
//
// and [PayloadSize] computes it for any rank. Numeric data is always stored
// column-major; [Matrix] values in row-major order are remapped while they
// stream, and [ColumnMajor] transposes small 2-D slices up front.
//
// With compression enabled each miMATRIX element is wrapped in an
// miCOMPRESSED (15) element holding its zlib stream.
//
// # Classes
//
//	Go type  Class          Element type
//	float64  mxDOUBLE (6)   miDOUBLE (9)
//	float32  mxSINGLE (7)   miSINGLE (7)
//	int8     mxINT8 (8)     miINT8 (1)
//	uint8    mxUINT8 (9)    miUINT8 (2)
//	int16    mxINT16 (10)   miINT16 (3)
//	uint16   mxUINT16 (11)  miUINT16 (4)
//
// int32 has no mapping and is rejected with dtype.ErrUnsupportedDataType.
package mat5
