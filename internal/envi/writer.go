package envi

import (
	stdbinary "encoding/binary"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/robert-malhotra/go-hsiexport/internal/binary"
	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
	"github.com/robert-malhotra/go-hsiexport/internal/logging"
)

// Options controls an ENVI export.
type Options struct {
	Interleave layout.Interleave
	DataType   dtype.DataType // destination type
	ByteOrder  ByteOrder

	Description     string
	SensorType      string
	AcquisitionTime string
	MapInfo         string
	DefaultBands    DefaultBands

	// Wavelengths adds the wavelength list to the header when the cube has one.
	Wavelengths     bool
	WavelengthUnits string

	// AdditionalFields is free header text validated by ParseAdditionalFields.
	AdditionalFields string
}

// HeaderPath returns the header path for a binary file at dest.
func HeaderPath(dest string) string {
	return strings.TrimSuffix(dest, filepath.Ext(dest)) + ".hdr"
}

func (o ByteOrder) encoding() stdbinary.ByteOrder {
	if o == BigEndian {
		return stdbinary.BigEndian
	}
	return stdbinary.LittleEndian
}

// Write exports the cube addressed by idx to dest and its header to
// HeaderPath(dest). Additional fields are validated before any file is
// created.
func Write(dest string, data dtype.Storage, idx layout.Index, wavelengths []float64, opts Options) error {
	extra, err := ParseAdditionalFields(opts.AdditionalFields)
	if err != nil {
		return err
	}
	if _, err := DataTypeCode(opts.DataType); err != nil {
		return err
	}
	if data.Len() != idx.Len() {
		return fmt.Errorf("%w: %d samples for dims %v", dtype.ErrInvalidData, data.Len(), idx.Dims)
	}
	hdrPath := HeaderPath(dest)
	if hdrPath == dest {
		return fmt.Errorf("%w: binary path %s collides with its header", dtype.ErrInvalidData, dest)
	}

	h := &Header{
		Samples:         idx.Width(),
		Lines:           idx.Height(),
		Bands:           idx.Channels(),
		DataType:        opts.DataType,
		Interleave:      opts.Interleave,
		ByteOrder:       opts.ByteOrder,
		Description:     opts.Description,
		SensorType:      opts.SensorType,
		AcquisitionTime: opts.AcquisitionTime,
		MapInfo:         opts.MapInfo,
		WavelengthUnits: opts.WavelengthUnits,
		Additional:      extra,
	}
	if b, ok := opts.DefaultBands.Resolve(idx.Channels()); ok {
		h.DefaultBands = b[:]
	}
	if opts.Wavelengths {
		h.Wavelengths = wavelengths
	}

	tlog := logging.NewTimeLog()
	n, err := WriteBinary(dest, data, idx, opts)
	if err != nil {
		return err
	}
	tlog.Debugf("envi: wrote %s (%s, %s %s)", dest, humanize.Bytes(uint64(n)), opts.DataType, opts.Interleave)

	_, err = binary.CreateFile(hdrPath, binary.DefaultConfig(), func(w *binary.Writer) error {
		_, err := h.WriteTo(w)
		return err
	})
	return err
}

// WriteBinary streams the converted samples of the cube to dest in the
// requested interleave and returns the number of bytes written.
func WriteBinary(dest string, data dtype.Storage, idx layout.Index, opts Options) (int64, error) {
	dt := opts.DataType
	size := dt.Size()
	if size == 0 {
		return 0, fmt.Errorf("%w: %v", dtype.ErrUnsupportedDataType, dt)
	}
	cfg := binary.Config{ByteOrder: opts.ByteOrder.encoding(), BufferSize: binary.DefaultBufferSize}

	return binary.CreateFile(dest, cfg, func(w *binary.Writer) error {
		order := w.ByteOrder()
		return idx.Walk(opts.Interleave, func(off int) error {
			b, err := w.Next(size)
			if err != nil {
				return err
			}
			dtype.PutValue(b, data.Float64(off), dt, order)
			return nil
		})
	})
}
