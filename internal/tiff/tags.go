package tiff

// Field types.
const (
	dtShort = 3
	dtLong  = 4
)

// Tags.
const (
	tImageWidth                = 256
	tImageLength               = 257
	tBitsPerSample             = 258
	tCompression               = 259
	tPhotometricInterpretation = 262
	tStripOffsets              = 273
	tSamplesPerPixel           = 277
	tRowsPerStrip              = 278
	tStripByteCounts           = 279
	tPlanarConfiguration       = 284
	tExtraSamples              = 338
)

const (
	leHeader = "II\x2A\x00"

	ifdEntryLen = 12

	compressionNone       = 1
	photometricMinIsBlack = 1
	planarContig          = 1

	// stripTarget is the preferred strip size in bytes.
	stripTarget = 64 << 10
)
