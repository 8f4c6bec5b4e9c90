package dtype

import (
	"encoding/binary"
	"math"
)

// Convert maps v onto the value set of t. Non-finite values become 0,
// integer destinations round to nearest (half away from zero), and every
// destination clamps to its representable range.
func Convert(v float64, t DataType) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if t.IsInteger() {
		v = math.Round(v)
	}
	lo, hi := t.Range()
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PutValue converts v to t and writes its t.Size() bytes into dst using order.
func PutValue(dst []byte, v float64, t DataType, order binary.ByteOrder) {
	v = Convert(v, t)

	switch t {
	case Int8:
		dst[0] = byte(int8(v))
	case Uint8:
		dst[0] = uint8(v)
	case Int16:
		order.PutUint16(dst, uint16(int16(v)))
	case Uint16:
		order.PutUint16(dst, uint16(v))
	case Int32:
		order.PutUint32(dst, uint32(int32(v)))
	case Float32:
		order.PutUint32(dst, math.Float32bits(float32(v)))
	case Float64:
		order.PutUint64(dst, math.Float64bits(v))
	}
}

// Decode reads one element of type t from src.
func Decode(src []byte, t DataType, order binary.ByteOrder) float64 {
	switch t {
	case Int8:
		return float64(int8(src[0]))
	case Uint8:
		return float64(src[0])
	case Int16:
		return float64(int16(order.Uint16(src)))
	case Uint16:
		return float64(order.Uint16(src))
	case Int32:
		return float64(int32(order.Uint32(src)))
	case Float32:
		return float64(math.Float32frombits(order.Uint32(src)))
	case Float64:
		return math.Float64frombits(order.Uint64(src))
	default:
		return 0
	}
}
