package mat5

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zlib"

	bin "github.com/robert-malhotra/go-hsiexport/internal/binary"
	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
	"github.com/robert-malhotra/go-hsiexport/internal/logging"
)

const (
	HeaderSize = 128
	textSize   = 116
	version    = 0x0100
)

// HeaderText is the descriptive text written into every file header. It
// also records how the metadata variable is encoded.
var HeaderText = fmt.Sprintf("MATLAB 5.0 MAT-file, Platform: %s, Created by go-hsiexport; metadata: uint8 JSON", runtime.GOOS)

// Writer appends matrix elements to a MAT-file.
type Writer struct {
	w        *bin.Writer
	compress bool
	level    int
}

// NewWriter writes the 128-byte file header to w and returns a Writer for
// the elements that follow. With compress set every element is stored as
// an miCOMPRESSED element, which requires w to be patchable.
func NewWriter(w *bin.Writer, compress bool) (*Writer, error) {
	text := HeaderText
	if len(text) > textSize {
		text = text[:textSize]
	}
	w.WriteString(text + strings.Repeat(" ", textSize-len(text)))
	w.WriteZeros(8)
	w.WriteUint16(version)
	if err := w.WriteString("IM"); err != nil {
		return nil, err
	}
	return &Writer{w: w, compress: compress, level: zlib.DefaultCompression}, nil
}

// WriteMatrix appends m.
func (mw *Writer) WriteMatrix(m *Matrix) error {
	if !mw.compress {
		return writeMatrix(mw.w, m)
	}
	if err := m.validate(); err != nil {
		return err
	}
	if _, _, err := ClassOf(m.Data.Type()); err != nil {
		return err
	}

	start := mw.w.Pos()
	mw.w.WriteUint32(miCOMPRESSED)
	if err := mw.w.WriteUint32(0); err != nil {
		return err
	}

	zw, err := zlib.NewWriterLevel(mw.w, mw.level)
	if err != nil {
		return err
	}
	inner := bin.NewWriter(zw, bin.Config{ByteOrder: binary.LittleEndian, BufferSize: 64 << 10})
	if err := writeMatrix(inner, m); err != nil {
		return err
	}
	if err := inner.Flush(); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	n := mw.w.Pos() - start - 8
	if n > math.MaxUint32 {
		return fmt.Errorf("%w: compressed %q is %d bytes", dtype.ErrInvalidData, m.Name, n)
	}
	return mw.w.PatchUint32(start+4, uint32(n))
}

// Options controls a MAT-file export.
type Options struct {
	// Name of the cube variable. Empty means "cube".
	Name string

	// Mask is an optional row-major height x width uint8 mask written as "mask".
	Mask []uint8

	// Wavelengths are written as a count x 1 double variable "wavelengths".
	Wavelengths []float64

	// Metadata holds JSON written as a 1 x N uint8 variable "metadata".
	Metadata []byte

	Compress bool
}

// WriteFile writes the cube addressed by idx, followed by the optional mask,
// wavelengths and metadata variables, to dest.
func WriteFile(dest string, data dtype.Storage, idx layout.Index, opts Options) error {
	vars, err := variables(data, idx, opts)
	if err != nil {
		return err
	}

	tlog := logging.NewTimeLog()
	n, err := bin.CreateFile(dest, bin.DefaultConfig(), func(w *bin.Writer) error {
		mw, err := NewWriter(w, opts.Compress)
		if err != nil {
			return err
		}
		for _, m := range vars {
			if err := mw.WriteMatrix(m); err != nil {
				return fmt.Errorf("mat5: writing %q: %w", m.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	tlog.Debugf("mat5: wrote %s (%s, %d variables)", dest, humanize.Bytes(uint64(n)), len(vars))
	return nil
}

// variables builds and validates every matrix before the file is created.
func variables(data dtype.Storage, idx layout.Index, opts Options) ([]*Matrix, error) {
	name := opts.Name
	if name == "" {
		name = "cube"
	}
	cube := &Matrix{
		Name:  name,
		Dims:  idx.Dims[:],
		Data:  data,
		Order: idx.Order,
	}
	vars := []*Matrix{cube}

	if opts.Mask != nil {
		h, w := idx.Height(), idx.Width()
		if len(opts.Mask) != h*w {
			return nil, fmt.Errorf("%w: mask has %d elements, expected %d x %d", dtype.ErrInvalidData, len(opts.Mask), h, w)
		}
		vars = append(vars, &Matrix{
			Name:  "mask",
			Dims:  []int{h, w},
			Data:  dtype.NewStorage(ColumnMajor(opts.Mask, h, w)),
			Order: layout.ColumnMajor,
		})
	}
	if len(opts.Wavelengths) > 0 {
		vars = append(vars, &Matrix{
			Name:  "wavelengths",
			Dims:  []int{len(opts.Wavelengths), 1},
			Data:  dtype.NewStorage(opts.Wavelengths),
			Order: layout.ColumnMajor,
		})
	}
	if len(opts.Metadata) > 0 {
		vars = append(vars, &Matrix{
			Name:  "metadata",
			Dims:  []int{1, len(opts.Metadata)},
			Data:  dtype.NewStorage(opts.Metadata),
			Order: layout.ColumnMajor,
		})
	}

	for _, m := range vars {
		if err := m.validate(); err != nil {
			return nil, err
		}
		if _, _, err := ClassOf(m.Data.Type()); err != nil {
			return nil, err
		}
	}
	return vars, nil
}
