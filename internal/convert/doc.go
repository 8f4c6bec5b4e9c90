// Package convert implements the value conversions applied to a cube before
// it is handed to a codec that cannot store its native element type.
//
// Every function returns new storage and never modifies its input:
//
//   - [MinMax] finds the finite extrema of a storage in bounded chunks.
//   - [RescaleUint16] maps the finite range linearly onto [0, 65535]. A
//     constant-valued input yields all zeros.
//   - [Cast] converts to another element type with rounding and clamping.
package convert
