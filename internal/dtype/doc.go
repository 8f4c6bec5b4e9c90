// Package dtype provides the numeric element types of a hyperspectral cube
// and the conversions between them.
//
// # Element Types
//
// Seven element types are supported:
//
//	DataType | Size | Go type
//	---------|------|--------
//	Int8     | 1    | int8
//	Int16    | 2    | int16
//	Int32    | 4    | int32
//	Uint8    | 1    | uint8
//	Uint16   | 2    | uint16
//	Float32  | 4    | float32
//	Float64  | 8    | float64
//
// Unknown is the zero value and has size 0.
//
// # Storage
//
// [Storage] is a closed tagged union over the typed slices above. It offers
// two access paths and codecs choose between them:
//
//   - [Storage.Float64] returns any element as a float64. All supported types
//     convert exactly, so this path is lossless before a destination conversion.
//   - [Storage.PutNative] writes the stored bit pattern in a chosen byte order.
//     Formats that dump the cube as-is (NPY, MAT5) use this path.
//
// # Destination Encoding
//
// [Convert] and [PutValue] map a value onto a destination type: non-finite
// values become 0, integer destinations round to nearest, and all
// destinations clamp to their range. [Decode] is the inverse used when
// inspecting written payloads.
package dtype
