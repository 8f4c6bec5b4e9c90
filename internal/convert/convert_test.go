package convert

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
)

func TestMinMax(t *testing.T) {
	s := dtype.NewStorage([]float32{3, float32(math.NaN()), -2, float32(math.Inf(1)), 7})
	lo, hi, ok := MinMax(s)
	if !ok || lo != -2 || hi != 7 {
		t.Errorf("MinMax = %v, %v, %v; expected -2, 7, true", lo, hi, ok)
	}

	if _, _, ok := MinMax(dtype.NewStorage([]float64{math.NaN()})); ok {
		t.Error("expected ok=false for storage without finite values")
	}
	if _, _, ok := MinMax(dtype.NewStorage([]int16{})); ok {
		t.Error("expected ok=false for empty storage")
	}
}

func TestMinMaxAcrossChunks(t *testing.T) {
	data := make([]int32, 3*chunkSize+17)
	for i := range data {
		data[i] = int32(i % 1000)
	}
	data[chunkSize+5] = -50
	data[len(data)-1] = 5000

	lo, hi, ok := MinMax(dtype.NewStorage(data))
	if !ok || lo != -50 || hi != 5000 {
		t.Errorf("MinMax = %v, %v, %v; expected -50, 5000, true", lo, hi, ok)
	}
}

func TestRescaleUint16(t *testing.T) {
	s := dtype.NewStorage([]float64{-1, 0, 1, math.NaN()})
	out := RescaleUint16(s)
	if out.Type() != dtype.Uint16 {
		t.Fatalf("expected uint16 storage, got %v", out.Type())
	}

	got, _ := dtype.Values[uint16](out)
	want := []uint16{0, 32768, 65535, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestRescaleConstantIsZero(t *testing.T) {
	for _, s := range []dtype.Storage{
		dtype.NewStorage(make([]float32, 24)),
		dtype.NewStorage([]int16{9, 9, 9}),
		dtype.NewStorage([]float64{math.Inf(1), math.NaN()}),
	} {
		out := RescaleUint16(s)
		if out.Len() != s.Len() {
			t.Fatalf("length changed: %d -> %d", s.Len(), out.Len())
		}
		for i := 0; i < out.Len(); i++ {
			if out.Float64(i) != 0 {
				t.Fatalf("%v input: element %d is %v, expected 0", s.Type(), i, out.Float64(i))
			}
		}
	}
}

func TestRescaleDoesNotMutateInput(t *testing.T) {
	data := []float32{1, 2, 3}
	RescaleUint16(dtype.NewStorage(data))
	if !floats.Equal([]float64{float64(data[0]), float64(data[1]), float64(data[2])}, []float64{1, 2, 3}) {
		t.Errorf("input modified: %v", data)
	}
}

func TestCast(t *testing.T) {
	s := dtype.NewStorage([]float64{-1.5, 2.5, 300, math.NaN()})

	tests := []struct {
		dt   dtype.DataType
		want []float64
	}{
		{dtype.Uint8, []float64{0, 3, 255, 0}},
		{dtype.Int8, []float64{-2, 3, 127, 0}},
		{dtype.Int16, []float64{-2, 3, 300, 0}},
		{dtype.Float32, []float64{-1.5, 2.5, 300, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			out, err := Cast(s, tt.dt)
			if err != nil {
				t.Fatalf("Cast failed: %v", err)
			}
			if out.Type() != tt.dt {
				t.Errorf("expected %v, got %v", tt.dt, out.Type())
			}
			got := make([]float64, out.Len())
			for i := range got {
				got[i] = out.Float64(i)
			}
			if !floats.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if _, err := Cast(s, dtype.Unknown); err == nil {
		t.Error("expected error casting to Unknown")
	}
}

func TestNeedsRescale(t *testing.T) {
	if NeedsRescale(dtype.Uint8) || NeedsRescale(dtype.Uint16) {
		t.Error("8/16-bit unsigned types need no rescale")
	}
	for _, dt := range []dtype.DataType{dtype.Int8, dtype.Int16, dtype.Int32, dtype.Float32, dtype.Float64} {
		if !NeedsRescale(dt) {
			t.Errorf("%v should need rescale", dt)
		}
	}
}
