package hsi

import (
	"github.com/robert-malhotra/go-hsiexport/internal/binary"
	"github.com/robert-malhotra/go-hsiexport/internal/tiff"
)

// TIFFLayout selects how channels are laid out in a TIFF file.
type TIFFLayout = tiff.Layout

const (
	// Planar writes one page per channel.
	Planar = tiff.Planar
	// Contiguous writes a single page with one sample per channel.
	Contiguous = tiff.Contiguous
)

// FileWriter is the buffered writer of an open output file.
type FileWriter = binary.Writer

// TIFFBackend receives the pages of a TIFF export.
type TIFFBackend = tiff.Backend

// TIFFDirectory is one page handed to a TIFFBackend.
type TIFFDirectory = tiff.Directory

// TIFFOptions controls ExportTIFF.
type TIFFOptions struct {
	Axes
	Layout TIFFLayout

	// Backend creates the page writer for the open file. nil selects the
	// built-in uncompressed strip writer.
	Backend func(w *FileWriter) (TIFFBackend, error)
}

// ExportTIFF writes c as a little-endian TIFF file. Cubes that are not
// uint8 or uint16 are rescaled onto uint16.
func ExportTIFF(c *Cube, dest string, opts TIFFOptions) error {
	idx, err := c.index(opts.Axes)
	if err != nil {
		return err
	}
	return tiff.WriteFile(dest, c.data, idx, tiff.Options{
		Layout:     opts.Layout,
		NewBackend: opts.Backend,
	})
}
