package dtype

import (
	"fmt"
	"math"
	"strings"
)

// DataType identifies the element type of a cube or of an encoded payload.
type DataType uint8

const (
	Unknown DataType = iota
	Int8
	Int16
	Int32
	Uint8
	Uint16
	Float32
	Float64
)

var typeBytes = map[DataType]int{
	Int8:    1,
	Int16:   2,
	Int32:   4,
	Uint8:   1,
	Uint16:  2,
	Float32: 4,
	Float64: 8,
}

var typeNames = map[DataType]string{
	Unknown: "unknown",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Float32: "float32",
	Float64: "float64",
}

// Size returns the number of bytes of one element, or 0 for Unknown.
func (t DataType) Size() int {
	return typeBytes[t]
}

// String returns the lower-case Go name of the type.
func (t DataType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", uint8(t))
}

// Valid reports whether t is one of the known element types.
func (t DataType) Valid() bool {
	return t.Size() > 0
}

// IsInteger reports whether t is an integer type.
func (t DataType) IsInteger() bool {
	switch t {
	case Int8, Int16, Int32, Uint8, Uint16:
		return true
	}
	return false
}

// IsSigned reports whether t can hold negative values.
func (t DataType) IsSigned() bool {
	switch t {
	case Int8, Int16, Int32, Float32, Float64:
		return true
	}
	return false
}

// Range returns the smallest and largest values representable by t.
func (t DataType) Range() (lo, hi float64) {
	switch t {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Uint8:
		return 0, math.MaxUint8
	case Uint16:
		return 0, math.MaxUint16
	case Float32:
		return -math.MaxFloat32, math.MaxFloat32
	default:
		return -math.MaxFloat64, math.MaxFloat64
	}
}

// ParseDataType parses a type name such as "uint16" or "float32".
// "byte", "float" and "double" are accepted as aliases.
func ParseDataType(s string) (DataType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "byte":
		return Uint8, nil
	case "float", "single":
		return Float32, nil
	case "double":
		return Float64, nil
	}
	for t, n := range typeNames {
		if t != Unknown && n == name {
			return t, nil
		}
	}
	return Unknown, fmt.Errorf("unknown data type %q", s)
}
