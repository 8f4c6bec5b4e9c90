package hsi

import (
	"encoding/json"
	"fmt"

	"github.com/robert-malhotra/go-hsiexport/internal/convert"
	"github.com/robert-malhotra/go-hsiexport/internal/mat5"
)

// MATOptions controls ExportMAT.
type MATOptions struct {
	Axes

	// Name of the cube variable. Empty means "cube".
	Name string

	// Rescale maps cubes without a MAT class (int32) or that are not uint8
	// or uint16 onto uint16 first.
	Rescale bool

	// Mask is an optional row-major height x width mask.
	Mask []uint8

	// Metadata is JSON-encoded into a uint8 variable named "metadata".
	Metadata map[string]interface{}

	OmitWavelengths bool
	Compress        bool
}

// ExportMAT writes c to a Level 5 MAT-file.
func ExportMAT(c *Cube, dest string, opts MATOptions) error {
	idx, err := c.index(opts.Axes)
	if err != nil {
		return err
	}
	if opts.Rescale && convert.NeedsRescale(c.DataType()) {
		c = c.RescaleUint16()
	}

	mo := mat5.Options{
		Name:     opts.Name,
		Mask:     opts.Mask,
		Compress: opts.Compress,
	}
	if !opts.OmitWavelengths {
		mo.Wavelengths = c.wavelengths
	}
	if opts.Metadata != nil {
		mo.Metadata, err = json.Marshal(opts.Metadata)
		if err != nil {
			return fmt.Errorf("%w: metadata: %v", ErrInvalidData, err)
		}
	}
	return mat5.WriteFile(dest, c.data, idx, mo)
}
