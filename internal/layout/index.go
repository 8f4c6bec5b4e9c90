package layout

import (
	"fmt"
	"strings"
)

// CIndex is the row-major offset of (i0, i1, i2).
func CIndex(dims [3]int, i0, i1, i2 int) int {
	return i0*(dims[1]*dims[2]) + i1*dims[2] + i2
}

// FortranIndex is the column-major offset of (i0, i1, i2).
func FortranIndex(dims [3]int, i0, i1, i2 int) int {
	return i0 + dims[0]*(i1+dims[1]*i2)
}

// Offset is the Linear Index Law: the flat offset of a physical 3-tuple.
func Offset(dims [3]int, order Order, idx [3]int) int {
	if order == ColumnMajor {
		return FortranIndex(dims, idx[0], idx[1], idx[2])
	}
	return CIndex(dims, idx[0], idx[1], idx[2])
}

// Interleave is a traversal order over (channel, row, column).
type Interleave uint8

const (
	// BSQ visits channel, then row, then column.
	BSQ Interleave = iota
	// BIL visits row, then channel, then column.
	BIL
	// BIP visits row, then column, then channel.
	BIP
)

func (il Interleave) String() string {
	switch il {
	case BSQ:
		return "bsq"
	case BIL:
		return "bil"
	case BIP:
		return "bip"
	default:
		return fmt.Sprintf("Interleave(%d)", uint8(il))
	}
}

// ParseInterleave parses "bsq", "bil" or "bip" case-insensitively.
func ParseInterleave(s string) (Interleave, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bsq":
		return BSQ, nil
	case "bil":
		return BIL, nil
	case "bip":
		return BIP, nil
	}
	return BSQ, fmt.Errorf("unknown interleave %q", s)
}

// Index addresses the cells of a cube by abstract coordinates.
type Index struct {
	Dims  [3]int
	Order Order
	Roles Roles
}

// NewIndex resolves l against dims and returns the resulting Index.
func NewIndex(dims [3]int, order Order, l Layout) (Index, error) {
	r, err := Resolve(dims, l)
	if err != nil {
		return Index{}, err
	}
	return Index{Dims: dims, Order: order, Roles: r}, nil
}

// Channels returns the length of the channel axis.
func (x Index) Channels() int { return x.Dims[x.Roles.Channel] }

// Height returns the length of the height axis.
func (x Index) Height() int { return x.Dims[x.Roles.Height] }

// Width returns the length of the width axis.
func (x Index) Width() int { return x.Dims[x.Roles.Width] }

// Len returns the number of cells.
func (x Index) Len() int { return x.Dims[0] * x.Dims[1] * x.Dims[2] }

// At returns the flat offset of cell (c, h, w).
func (x Index) At(c, h, w int) int {
	return Offset(x.Dims, x.Order, x.Roles.Physical(c, h, w))
}

// Walk calls fn with the flat offset of every cell, visiting cells in the
// order given by il. It stops at the first error fn returns.
func (x Index) Walk(il Interleave, fn func(offset int) error) error {
	channels, height, width := x.Channels(), x.Height(), x.Width()

	switch il {
	case BSQ:
		for c := 0; c < channels; c++ {
			for h := 0; h < height; h++ {
				for w := 0; w < width; w++ {
					if err := fn(x.At(c, h, w)); err != nil {
						return err
					}
				}
			}
		}
	case BIL:
		for h := 0; h < height; h++ {
			for c := 0; c < channels; c++ {
				for w := 0; w < width; w++ {
					if err := fn(x.At(c, h, w)); err != nil {
						return err
					}
				}
			}
		}
	case BIP:
		for h := 0; h < height; h++ {
			for w := 0; w < width; w++ {
				for c := 0; c < channels; c++ {
					if err := fn(x.At(c, h, w)); err != nil {
						return err
					}
				}
			}
		}
	default:
		return fmt.Errorf("unknown interleave %v", il)
	}
	return nil
}

// WalkChannel calls fn with the flat offset of every pixel of channel c in
// row order.
func (x Index) WalkChannel(c int, fn func(offset int) error) error {
	height, width := x.Height(), x.Width()
	for h := 0; h < height; h++ {
		for w := 0; w < width; w++ {
			if err := fn(x.At(c, h, w)); err != nil {
				return err
			}
		}
	}
	return nil
}
