package mat5

import (
	"encoding/binary"
	"fmt"
	"math"
	"regexp"

	bin "github.com/robert-malhotra/go-hsiexport/internal/binary"
	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
)

// Data element types.
const (
	miINT8       = 1
	miUINT8      = 2
	miINT16      = 3
	miUINT16     = 4
	miINT32      = 5
	miUINT32     = 6
	miSINGLE     = 7
	miDOUBLE     = 9
	miMATRIX     = 14
	miCOMPRESSED = 15
)

// Array classes.
const (
	mxDOUBLE = 6
	mxSINGLE = 7
	mxINT8   = 8
	mxUINT8  = 9
	mxINT16  = 10
	mxUINT16 = 11
)

type classInfo struct {
	class  uint32
	miType uint32
}

var classes = map[dtype.DataType]classInfo{
	dtype.Float64: {mxDOUBLE, miDOUBLE},
	dtype.Float32: {mxSINGLE, miSINGLE},
	dtype.Int8:    {mxINT8, miINT8},
	dtype.Uint8:   {mxUINT8, miUINT8},
	dtype.Int16:   {mxINT16, miINT16},
	dtype.Uint16:  {mxUINT16, miUINT16},
}

// ClassOf returns the array class and element type used for t.
func ClassOf(t dtype.DataType) (class, miType uint32, err error) {
	info, ok := classes[t]
	if !ok {
		return 0, 0, fmt.Errorf("%w: mat5 has no class for %v", dtype.ErrUnsupportedDataType, t)
	}
	return info.class, info.miType, nil
}

// DataTypeOfClass is the inverse of ClassOf.
func DataTypeOfClass(class uint32) (dtype.DataType, bool) {
	for t, info := range classes {
		if info.class == class {
			return t, true
		}
	}
	return dtype.Unknown, false
}

var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,62}$`)

// Matrix is one numeric variable.
type Matrix struct {
	Name string
	// Dims has rank 2 or 3.
	Dims []int
	Data dtype.Storage
	// Order is the storage order of Data. RowMajor data is remapped to
	// column-major while it is written.
	Order layout.Order
}

func (m *Matrix) numel() int {
	n := 1
	for _, d := range m.Dims {
		n *= d
	}
	return n
}

func (m *Matrix) validate() error {
	if !validName.MatchString(m.Name) {
		return fmt.Errorf("%w: invalid variable name %q", dtype.ErrInvalidData, m.Name)
	}
	if len(m.Dims) < 2 || len(m.Dims) > 3 {
		return fmt.Errorf("%w: rank %d matrix %q", dtype.ErrInvalidData, len(m.Dims), m.Name)
	}
	for _, d := range m.Dims {
		if d <= 0 || d > math.MaxInt32 {
			return fmt.Errorf("%w: dimension %d of %q", dtype.ErrInvalidData, d, m.Name)
		}
	}
	if m.Data.Len() != m.numel() {
		return fmt.Errorf("%w: %q has %d elements for dims %v", dtype.ErrInvalidData, m.Name, m.Data.Len(), m.Dims)
	}
	return nil
}

// PayloadSize returns the byte count stored in the miMATRIX tag of a matrix
// with the given rank, name length and data length.
func PayloadSize(rank, nameBytes int, dataBytes uint64) uint64 {
	size := uint64(16) // array flags
	size += 8 + uint64(bin.Align(int64(4*rank), 8))
	size += 8 + uint64(bin.Align(int64(nameBytes), 8))
	size += 8 + dataBytes + uint64(bin.Padding(int64(dataBytes%8), 8))
	return size
}

// writeMatrix writes one complete miMATRIX element.
func writeMatrix(w *bin.Writer, m *Matrix) error {
	if err := m.validate(); err != nil {
		return err
	}
	class, miType, err := ClassOf(m.Data.Type())
	if err != nil {
		return err
	}

	elemSize := m.Data.Type().Size()
	dataBytes := uint64(m.numel()) * uint64(elemSize)
	if dataBytes > math.MaxUint32 {
		return fmt.Errorf("%w: %q needs %d data bytes, more than a mat5 element holds", dtype.ErrInvalidData, m.Name, dataBytes)
	}
	size := PayloadSize(len(m.Dims), len(m.Name), dataBytes)
	if size > math.MaxUint32 {
		return fmt.Errorf("%w: %q element of %d bytes is too large", dtype.ErrInvalidData, m.Name, size)
	}

	w.WriteUint32(miMATRIX)
	w.WriteUint32(uint32(size))

	w.WriteUint32(miUINT32)
	w.WriteUint32(8)
	w.WriteUint32(class)
	w.WriteUint32(0)

	w.WriteUint32(miINT32)
	w.WriteUint32(uint32(4 * len(m.Dims)))
	for _, d := range m.Dims {
		w.WriteUint32(uint32(d))
	}
	w.WriteZeros(int(bin.Padding(int64(4*len(m.Dims)), 8)))

	w.WriteUint32(miINT8)
	w.WriteUint32(uint32(len(m.Name)))
	w.WriteString(m.Name)
	w.WriteZeros(int(bin.Padding(int64(len(m.Name)), 8)))

	w.WriteUint32(miType)
	if err := w.WriteUint32(uint32(dataBytes)); err != nil {
		return err
	}
	if err := writeColumnMajor(w, m); err != nil {
		return err
	}
	return w.WriteZeros(int(bin.Padding(int64(dataBytes%8), 8)))
}

// writeColumnMajor streams the elements of m in column-major order.
func writeColumnMajor(w *bin.Writer, m *Matrix) error {
	size := m.Data.Type().Size()
	put := func(i int) error {
		b, err := w.Next(size)
		if err != nil {
			return err
		}
		m.Data.PutNative(b, i, binary.LittleEndian)
		return nil
	}

	if m.Order == layout.ColumnMajor {
		if raw, ok := dtype.Values[uint8](m.Data); ok {
			return w.WriteBytes(raw)
		}
		for i := 0; i < m.Data.Len(); i++ {
			if err := put(i); err != nil {
				return err
			}
		}
		return nil
	}

	dims := [3]int{m.Dims[0], m.Dims[1], 1}
	if len(m.Dims) == 3 {
		dims[2] = m.Dims[2]
	}
	for i2 := 0; i2 < dims[2]; i2++ {
		for i1 := 0; i1 < dims[1]; i1++ {
			for i0 := 0; i0 < dims[0]; i0++ {
				if err := put(layout.CIndex(dims, i0, i1, i2)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ColumnMajor returns a column-major copy of a rows x cols row-major slice.
func ColumnMajor[T dtype.Number](data []T, rows, cols int) []T {
	out := make([]T, len(data))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c*rows+r] = data[r*cols+c]
		}
	}
	return out
}
