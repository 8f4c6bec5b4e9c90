// Package npy writes cubes as NumPy .npy version 1.0 files.
//
// A file is the 6-byte magic "\x93NUMPY", the version bytes 1 and 0, a
// little-endian uint16 header length, and an ASCII header holding a Python
// dict literal:
//
//	{'descr': '<f4', 'fortran_order': False, 'shape': (2, 3, 4), }
//
// The header is padded with spaces and terminated by a newline so that the
// payload starts at a multiple of 16 bytes. The payload is every element in
// the cube's own storage order, little-endian, with no reordering.
package npy
