package hsi

import (
	"github.com/robert-malhotra/go-hsiexport/internal/envi"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
)

// Interleave is the ENVI sample traversal order.
type Interleave = layout.Interleave

const (
	BSQ = layout.BSQ
	BIL = layout.BIL
	BIP = layout.BIP
)

// ByteOrder is the byte order of an ENVI binary file.
type ByteOrder = envi.ByteOrder

const (
	LittleEndian = envi.LittleEndian
	BigEndian    = envi.BigEndian
)

// DefaultBands configures the "default bands" ENVI header field.
type DefaultBands = envi.DefaultBands

// Synthesis is the colour synthesis configuration used by
// envi.BandsFromSynthesis.
type Synthesis = envi.Synthesis

// ENVIOptions controls ExportENVI.
type ENVIOptions struct {
	Axes

	Interleave Interleave

	// DataType is the destination type. Unknown picks one from the cube's
	// original type.
	DataType  DataType
	ByteOrder ByteOrder

	Description     string
	SensorType      string
	AcquisitionTime string
	MapInfo         string
	DefaultBands    DefaultBands

	// OmitWavelengths leaves the wavelength list out of the header.
	OmitWavelengths bool
	WavelengthUnits string

	// AdditionalFields holds "key = value" lines appended to the header.
	AdditionalFields string
}

// ExportENVI writes c as an ENVI binary file at dest with its header next
// to it.
func ExportENVI(c *Cube, dest string, opts ENVIOptions) error {
	idx, err := c.index(opts.Axes)
	if err != nil {
		return err
	}

	dt := opts.DataType
	if dt == Unknown {
		dt = envi.DataTypeDefaultFor(c.original)
	}
	units := opts.WavelengthUnits
	if units == "" {
		units = "Nanometers"
	}

	return envi.Write(dest, c.data, idx, c.wavelengths, envi.Options{
		Interleave:       opts.Interleave,
		DataType:         dt,
		ByteOrder:        opts.ByteOrder,
		Description:      opts.Description,
		SensorType:       opts.SensorType,
		AcquisitionTime:  opts.AcquisitionTime,
		MapInfo:          opts.MapInfo,
		DefaultBands:     opts.DefaultBands,
		Wavelengths:      !opts.OmitWavelengths,
		WavelengthUnits:  units,
		AdditionalFields: opts.AdditionalFields,
	})
}
