package hsi

import (
	"github.com/robert-malhotra/go-hsiexport/internal/convert"
	"github.com/robert-malhotra/go-hsiexport/internal/npy"
)

// NPYOptions controls ExportNPY.
type NPYOptions struct {
	Axes

	// Rescale maps cubes that are not uint8 or uint16 onto uint16 first.
	Rescale bool
}

// ExportNPY writes c as a version 1.0 .npy file with the cube's shape and
// storage order.
func ExportNPY(c *Cube, dest string, opts NPYOptions) error {
	if _, err := c.index(opts.Axes); err != nil {
		return err
	}
	if opts.Rescale && convert.NeedsRescale(c.DataType()) {
		c = c.RescaleUint16()
	}
	return npy.Write(dest, c.data, c.dims, c.order)
}
