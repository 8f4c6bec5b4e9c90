// Package tiff writes hyperspectral cubes as baseline TIFF files.
//
// Only 8-bit and 16-bit unsigned samples are stored. Cubes of any other
// element type are first rescaled to uint16 with [convert.RescaleUint16].
//
// Two layouts are supported:
//
//   - [Planar] writes one grayscale directory per channel.
//   - [Contiguous] writes a single directory whose pixels hold all channels
//     next to each other. Channels beyond the first are declared with the
//     ExtraSamples tag.
//
// Pixel bytes reach the file through a [Backend]. [StripWriter] is the
// built-in backend: little-endian, uncompressed, MinIsBlack, with strips of
// roughly 64 KiB. Each directory is written after its strips and the
// previous next-IFD pointer is patched to point at it.
//
// [ReadDirectories] parses the directories of a file for inspection.
package tiff
