package hsi

import (
	"fmt"

	"github.com/robert-malhotra/go-hsiexport/internal/convert"
	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
)

// DataType identifies the element type of a cube.
type DataType = dtype.DataType

const (
	Unknown = dtype.Unknown
	Int8    = dtype.Int8
	Int16   = dtype.Int16
	Int32   = dtype.Int32
	Uint8   = dtype.Uint8
	Uint16  = dtype.Uint16
	Float32 = dtype.Float32
	Float64 = dtype.Float64
)

// Order is the storage order of a cube.
type Order = layout.Order

const (
	RowMajor    = layout.RowMajor
	ColumnMajor = layout.ColumnMajor
)

// Cube is an immutable three-dimensional array of samples.
type Cube struct {
	dims        [3]int
	data        dtype.Storage
	order       Order
	original    DataType
	wavelengths []float64
}

// CubeOption configures cube creation.
type CubeOption func(*Cube)

// WithWavelengths attaches one wavelength per channel. The slice is copied.
func WithWavelengths(w []float64) CubeOption {
	return func(c *Cube) {
		c.wavelengths = append([]float64(nil), w...)
	}
}

// WithOriginalType records the semantic type of the samples when it differs
// from the storage type, e.g. after an earlier conversion.
func WithOriginalType(t DataType) CubeOption {
	return func(c *Cube) {
		c.original = t
	}
}

// NewCube wraps data, a []int8, []int16, []int32, []uint8, []uint16,
// []float32 or []float64 holding dims[0]*dims[1]*dims[2] samples stored in
// order. data is not copied and must not be modified afterwards.
func NewCube(dims [3]int, data interface{}, order Order, opts ...CubeOption) (*Cube, error) {
	s, err := dtype.FromSlice(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedDataType, err)
	}
	return newCube(dims, s, order, opts...)
}

func newCube(dims [3]int, s dtype.Storage, order Order, opts ...CubeOption) (*Cube, error) {
	n := 1
	for i, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("%w: axis %d has length %d", ErrInvalidData, i, d)
		}
		n *= d
	}
	if s.Len() != n {
		return nil, fmt.Errorf("%w: %d samples for dims %v", ErrInvalidData, s.Len(), dims)
	}
	if order != RowMajor && order != ColumnMajor {
		return nil, fmt.Errorf("%w: unknown storage order %v", ErrInvalidData, order)
	}

	c := &Cube{dims: dims, data: s, order: order, original: s.Type()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dims returns the axis lengths in storage order.
func (c *Cube) Dims() [3]int { return c.dims }

// Order returns the storage order.
func (c *Cube) Order() Order { return c.order }

// DataType returns the storage type.
func (c *Cube) DataType() DataType { return c.data.Type() }

// OriginalType returns the semantic type, kept across conversions.
func (c *Cube) OriginalType() DataType { return c.original }

// Len returns the number of samples.
func (c *Cube) Len() int { return c.data.Len() }

// Wavelengths returns a copy of the wavelengths, or nil.
func (c *Cube) Wavelengths() []float64 {
	if c.wavelengths == nil {
		return nil
	}
	return append([]float64(nil), c.wavelengths...)
}

// At returns the sample at physical index (i0, i1, i2).
func (c *Cube) At(i0, i1, i2 int) float64 {
	return c.data.Float64(layout.Offset(c.dims, c.order, [3]int{i0, i1, i2}))
}

// Convert returns a new cube with every sample rounded and clamped to t.
func (c *Cube) Convert(t DataType) (*Cube, error) {
	s, err := convert.Cast(c.data, t)
	if err != nil {
		return nil, err
	}
	return c.derive(s), nil
}

// RescaleUint16 returns a new uint16 cube with the finite samples mapped
// linearly onto [0, 65535]. Non-finite samples and constant cubes map to 0.
func (c *Cube) RescaleUint16() *Cube {
	return c.derive(convert.RescaleUint16(c.data))
}

func (c *Cube) derive(s dtype.Storage) *Cube {
	return &Cube{
		dims:        c.dims,
		data:        s,
		order:       c.order,
		original:    c.original,
		wavelengths: c.wavelengths,
	}
}

// Layout is a requested axis layout, Auto or one of the named permutations.
type Layout = layout.Layout

const (
	Auto = layout.Auto
	CHW  = layout.CHW
	CWH  = layout.CWH
	HCW  = layout.HCW
	HWC  = layout.HWC
	WCH  = layout.WCH
	WHC  = layout.WHC
)

// ParseLayout parses a layout name such as "auto" or "hwc".
func ParseLayout(s string) (Layout, error) { return layout.ParseLayout(s) }

// Roles assigns a physical axis to channel, height and width.
type Roles = layout.Roles

// Axes selects the axis roles of a cube. Roles, when set, takes precedence
// over Layout.
type Axes struct {
	Layout Layout
	Roles  *Roles
}

// Resolve returns the roles a selects for c.
func (a Axes) Resolve(c *Cube) (Roles, error) {
	if a.Roles != nil {
		return layout.ResolveRoles(c.dims, *a.Roles)
	}
	return layout.Resolve(c.dims, a.Layout)
}

// index resolves the axes of c and checks the wavelength count against the
// channel axis.
func (c *Cube) index(a Axes) (layout.Index, error) {
	r, err := a.Resolve(c)
	if err != nil {
		return layout.Index{}, err
	}
	idx := layout.Index{Dims: c.dims, Order: c.order, Roles: r}
	if c.wavelengths != nil && len(c.wavelengths) != idx.Channels() {
		return layout.Index{}, fmt.Errorf("%w: %d wavelengths for %d channels",
			ErrInvalidData, len(c.wavelengths), idx.Channels())
	}
	return idx, nil
}
