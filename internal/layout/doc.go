// Package layout maps the semantic axes of a hyperspectral cube onto its
// physical storage.
//
// A cube is stored as a flat array with three physical axes (d0, d1, d2).
// Exporters address it through abstract coordinates (channel, height, width).
// This package owns the two steps between them.
//
// # Axis Roles
//
// [Roles] assigns each abstract role to one physical axis index and must be a
// permutation of {0, 1, 2}. [Resolve] computes it from a requested [Layout]:
//
//   - [Auto]: the smallest axis is the channel axis. Ties go to the last
//     axis. The remaining two axes become height and width in their
//     relative order.
//   - Named layouts ([CHW], [HWC], ...): the letter position is the physical
//     axis index, so HWC means d0 is height, d1 is width and d2 is channel.
//
// # Linear Index Law
//
// [Offset] converts a physical 3-tuple to a flat offset:
//
//	RowMajor:    i0*(d1*d2) + i1*d2 + i2
//	ColumnMajor: i0 + d0*(i1 + d1*i2)
//
// [Index] combines dims, order and roles so a codec can address a cell by
// (c, h, w). Codecs only differ in traversal order, which [Index.Walk]
// expresses with an [Interleave]; the offset formula is always the same.
package layout
