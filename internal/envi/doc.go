// Package envi writes hyperspectral cubes as ENVI raw binary files with a
// plain-text ".hdr" sidecar.
//
// # Binary File
//
// Cells are visited in the order selected by a [layout.Interleave] (BSQ, BIL
// or BIP), converted to the destination type with [dtype.PutValue] and
// streamed through a 1 MiB buffered writer in the chosen [ByteOrder].
//
// Destination types and their header codes:
//
//	uint8   1
//	int16   2
//	int32   3
//	float32 4
//	float64 5
//	uint16  12
//
// # Header
//
// The header starts with the line "ENVI", followed by the fixed fields
// samples, lines, bands, header offset, file type, data type, interleave and
// byte order. Optional fields follow in a fixed relative order: description,
// sensor type, acquisition time, map info, default bands, wavelength and
// wavelength units. Caller-supplied additional fields come last, after
// [ParseAdditionalFields] has dropped comments and reserved keys.
package envi
