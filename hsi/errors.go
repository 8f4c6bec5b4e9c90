// Package hsi exports hyperspectral cubes to ENVI, NumPy, MATLAB MAT5 and
// TIFF files.
package hsi

import (
	"github.com/robert-malhotra/go-hsiexport/internal/binary"
	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/envi"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
)

// Common errors
var (
	ErrInvalidLayout                = layout.ErrInvalidLayout
	ErrUnsupportedDataType          = dtype.ErrUnsupportedDataType
	ErrInvalidAdditionalHeaderField = envi.ErrInvalidAdditionalHeaderField
	ErrWriteFailure                 = binary.ErrWriteFailure
	ErrInvalidData                  = dtype.ErrInvalidData
)

// HeaderFieldError reports the 1-based line of a malformed additional ENVI
// header field. It matches ErrInvalidAdditionalHeaderField.
type HeaderFieldError = envi.HeaderFieldError

// WriteError reports an I/O failure on an output file. It matches
// ErrWriteFailure and the underlying cause.
type WriteError = binary.WriteError
