package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLayout is returned when dims or roles cannot describe a cube.
var ErrInvalidLayout = errors.New("invalid layout")

// Order is the storage order of a cube.
type Order uint8

const (
	// RowMajor means the last axis varies fastest ("C" order).
	RowMajor Order = iota
	// ColumnMajor means the first axis varies fastest ("Fortran" order).
	ColumnMajor
)

func (o Order) String() string {
	switch o {
	case RowMajor:
		return "C"
	case ColumnMajor:
		return "Fortran"
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
}

// ParseOrder accepts "c", "row-major", "fortran", "f" and "column-major".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "c", "row", "row-major", "rowmajor":
		return RowMajor, nil
	case "f", "fortran", "column", "column-major", "columnmajor":
		return ColumnMajor, nil
	}
	return RowMajor, fmt.Errorf("unknown storage order %q", s)
}

// Roles assigns a physical axis index to each abstract role.
type Roles struct {
	Channel int
	Height  int
	Width   int
}

// Valid reports whether r is a permutation of {0, 1, 2}.
func (r Roles) Valid() bool {
	var seen [3]bool
	for _, a := range [3]int{r.Channel, r.Height, r.Width} {
		if a < 0 || a > 2 || seen[a] {
			return false
		}
		seen[a] = true
	}
	return true
}

// Physical scatters abstract coordinates into a physical 3-tuple.
func (r Roles) Physical(c, h, w int) [3]int {
	var idx [3]int
	idx[r.Channel] = c
	idx[r.Height] = h
	idx[r.Width] = w
	return idx
}

// Abstract gathers (c, h, w) back out of a physical 3-tuple.
func (r Roles) Abstract(idx [3]int) (c, h, w int) {
	return idx[r.Channel], idx[r.Height], idx[r.Width]
}

// Extents returns the channel count, height and width of a cube with dims.
func (r Roles) Extents(dims [3]int) (channels, height, width int) {
	return dims[r.Channel], dims[r.Height], dims[r.Width]
}

// Layout is a requested axis layout.
type Layout uint8

const (
	Auto Layout = iota
	CHW
	CWH
	HCW
	HWC
	WCH
	WHC
)

var layoutNames = [...]string{
	Auto: "auto",
	CHW:  "chw",
	CWH:  "cwh",
	HCW:  "hcw",
	HWC:  "hwc",
	WCH:  "wch",
	WHC:  "whc",
}

func (l Layout) String() string {
	if int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return fmt.Sprintf("Layout(%d)", uint8(l))
}

// ParseLayout parses a layout name case-insensitively. An empty string is Auto.
func ParseLayout(s string) (Layout, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Auto, nil
	}
	for l, n := range layoutNames {
		if n == name {
			return Layout(l), nil
		}
	}
	return Auto, fmt.Errorf("%w: unknown layout %q", ErrInvalidLayout, s)
}

// Roles returns the fixed assignment of a named layout. It reports false for
// Auto and unknown values.
func (l Layout) Roles() (Roles, bool) {
	if l == Auto || int(l) >= len(layoutNames) {
		return Roles{}, false
	}
	var r Roles
	for axis, letter := range layoutNames[l] {
		switch letter {
		case 'c':
			r.Channel = axis
		case 'h':
			r.Height = axis
		case 'w':
			r.Width = axis
		}
	}
	return r, true
}

// Resolve computes the axis roles for a cube with dims under layout l.
func Resolve(dims [3]int, l Layout) (Roles, error) {
	if err := checkDims(dims); err != nil {
		return Roles{}, err
	}
	if l != Auto {
		r, ok := l.Roles()
		if !ok {
			return Roles{}, fmt.Errorf("%w: %v", ErrInvalidLayout, l)
		}
		return r, nil
	}

	channel := 0
	for i := 1; i < 3; i++ {
		if dims[i] <= dims[channel] {
			channel = i
		}
	}
	rest := make([]int, 0, 2)
	for i := 0; i < 3; i++ {
		if i != channel {
			rest = append(rest, i)
		}
	}
	return Roles{Channel: channel, Height: rest[0], Width: rest[1]}, nil
}

// ResolveRoles validates caller-supplied roles against dims.
func ResolveRoles(dims [3]int, r Roles) (Roles, error) {
	if err := checkDims(dims); err != nil {
		return Roles{}, err
	}
	if !r.Valid() {
		return Roles{}, fmt.Errorf("%w: roles %+v are not a permutation of axes", ErrInvalidLayout, r)
	}
	return r, nil
}

func checkDims(dims [3]int) error {
	for i, d := range dims {
		if d <= 0 {
			return fmt.Errorf("%w: axis %d has length %d", ErrInvalidLayout, i, d)
		}
	}
	return nil
}
