package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Number is the closed set of element types a Storage can hold.
type Number interface {
	int8 | int16 | int32 | uint8 | uint16 | float32 | float64
}

// Storage is a flat, read-only array of samples of one element type.
//
// Codecs pick one of two access paths: Float64 for value conversion, or
// PutNative when the exact bit pattern of the stored element must be kept.
type Storage interface {
	// Type returns the element type.
	Type() DataType
	// Len returns the number of elements.
	Len() int
	// Float64 returns element i as a float64. Every supported type converts exactly.
	Float64(i int) float64
	// PutNative writes the Type().Size() bytes of element i into dst using order.
	PutNative(dst []byte, i int, order binary.ByteOrder)
}

type numeric[T Number] struct {
	data []T
	typ  DataType
}

// NewStorage wraps data without copying it. The caller must not modify data
// afterwards.
func NewStorage[T Number](data []T) Storage {
	return numeric[T]{data: data, typ: typeOf[T]()}
}

// Values returns the slice behind s when it holds elements of type T.
func Values[T Number](s Storage) ([]T, bool) {
	n, ok := s.(numeric[T])
	if !ok {
		return nil, false
	}
	return n.data, true
}

// Make allocates a zeroed Storage of n elements of type t.
func Make(t DataType, n int) (Storage, error) {
	switch t {
	case Int8:
		return NewStorage(make([]int8, n)), nil
	case Int16:
		return NewStorage(make([]int16, n)), nil
	case Int32:
		return NewStorage(make([]int32, n)), nil
	case Uint8:
		return NewStorage(make([]uint8, n)), nil
	case Uint16:
		return NewStorage(make([]uint16, n)), nil
	case Float32:
		return NewStorage(make([]float32, n)), nil
	case Float64:
		return NewStorage(make([]float64, n)), nil
	default:
		return nil, fmt.Errorf("cannot allocate storage of type %v", t)
	}
}

// FromSlice wraps a typed slice passed as interface{}.
func FromSlice(data interface{}) (Storage, error) {
	switch v := data.(type) {
	case []int8:
		return NewStorage(v), nil
	case []int16:
		return NewStorage(v), nil
	case []int32:
		return NewStorage(v), nil
	case []uint8:
		return NewStorage(v), nil
	case []uint16:
		return NewStorage(v), nil
	case []float32:
		return NewStorage(v), nil
	case []float64:
		return NewStorage(v), nil
	default:
		return nil, fmt.Errorf("unsupported sample slice %T", data)
	}
}

func typeOf[T Number]() DataType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case float32:
		return Float32
	default:
		return Float64
	}
}

func (n numeric[T]) Type() DataType { return n.typ }

func (n numeric[T]) Len() int { return len(n.data) }

func (n numeric[T]) Float64(i int) float64 { return float64(n.data[i]) }

func (n numeric[T]) PutNative(dst []byte, i int, order binary.ByteOrder) {
	switch v := any(n.data[i]).(type) {
	case int8:
		dst[0] = byte(v)
	case uint8:
		dst[0] = v
	case int16:
		order.PutUint16(dst, uint16(v))
	case uint16:
		order.PutUint16(dst, v)
	case int32:
		order.PutUint32(dst, uint32(v))
	case float32:
		order.PutUint32(dst, math.Float32bits(v))
	case float64:
		order.PutUint64(dst, math.Float64bits(v))
	}
}
