package convert

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
)

// chunkSize bounds the scratch buffer used while scanning a storage.
const chunkSize = 64 << 10

// MinMax returns the smallest and largest finite values of s. ok is false
// when s holds no finite value.
func MinMax(s dtype.Storage) (lo, hi float64, ok bool) {
	n := s.Len()
	size := chunkSize
	if n < size {
		size = n
	}
	chunk := make([]float64, 0, size)

	lo, hi = math.Inf(1), math.Inf(-1)
	flush := func() {
		if len(chunk) == 0 {
			return
		}
		lo = math.Min(lo, floats.Min(chunk))
		hi = math.Max(hi, floats.Max(chunk))
		ok = true
		chunk = chunk[:0]
	}

	for i := 0; i < n; i++ {
		v := s.Float64(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		chunk = append(chunk, v)
		if len(chunk) == cap(chunk) {
			flush()
		}
	}
	flush()

	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// RescaleUint16 maps the finite values of s linearly from [min, max] onto
// [0, 65535], rounding to nearest. Non-finite values become 0, and so does
// every value of a constant-valued storage.
func RescaleUint16(s dtype.Storage) dtype.Storage {
	out := make([]uint16, s.Len())
	lo, hi, ok := MinMax(s)
	if !ok || hi == lo {
		return dtype.NewStorage(out)
	}

	scale := math.MaxUint16 / (hi - lo)
	for i := range out {
		v := s.Float64(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = uint16(dtype.Convert((v-lo)*scale, dtype.Uint16))
	}
	return dtype.NewStorage(out)
}

// Cast converts every element of s to t using dtype.Convert.
func Cast(s dtype.Storage, t dtype.DataType) (dtype.Storage, error) {
	switch t {
	case dtype.Int8:
		return castTo[int8](s, t), nil
	case dtype.Int16:
		return castTo[int16](s, t), nil
	case dtype.Int32:
		return castTo[int32](s, t), nil
	case dtype.Uint8:
		return castTo[uint8](s, t), nil
	case dtype.Uint16:
		return castTo[uint16](s, t), nil
	case dtype.Float32:
		return castTo[float32](s, t), nil
	case dtype.Float64:
		return castTo[float64](s, t), nil
	default:
		return nil, fmt.Errorf("cannot cast to %v", t)
	}
}

func castTo[T dtype.Number](s dtype.Storage, t dtype.DataType) dtype.Storage {
	out := make([]T, s.Len())
	for i := range out {
		out[i] = T(dtype.Convert(s.Float64(i), t))
	}
	return dtype.NewStorage(out)
}

// NeedsRescale reports whether t must pass through RescaleUint16 before an
// 8/16-bit writer can store it.
func NeedsRescale(t dtype.DataType) bool {
	return t != dtype.Uint8 && t != dtype.Uint16
}
