package npy

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
)

func TestWriteFloat32Cube(t *testing.T) {
	data := make([]float32, 24)
	for i := range data {
		data[i] = float32(i) + 0.5
	}
	dest := filepath.Join(t.TempDir(), "cube.npy")

	if err := Write(dest, dtype.NewStorage(data), [3]int{2, 3, 4}, layout.RowMajor); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	raw, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(raw, []byte("\x93NUMPY\x01\x00")) {
		t.Fatalf("bad preamble % x", raw[:8])
	}
	hlen := int(binary.LittleEndian.Uint16(raw[8:10]))
	header := string(raw[10 : 10+hlen])
	if !strings.Contains(header, "'shape': (2, 3, 4)") || !strings.Contains(header, "'fortran_order': False") {
		t.Errorf("unexpected header %q", header)
	}
	if !strings.HasPrefix(header, "{'descr': '<f4', ") || !strings.HasSuffix(header, "\n") {
		t.Errorf("unexpected header framing %q", header)
	}

	payload := raw[10+hlen:]
	if len(payload) != 96 {
		t.Fatalf("expected 96 payload bytes, got %d", len(payload))
	}
	for i, want := range data {
		got := math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
		if got != want {
			t.Fatalf("element %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestHeaderAlignment(t *testing.T) {
	types := []dtype.DataType{dtype.Int8, dtype.Uint8, dtype.Int16, dtype.Uint16, dtype.Int32, dtype.Float32, dtype.Float64, dtype.Unknown}
	shapes := [][]int{{1, 1, 1}, {2, 3, 4}, {1024, 768, 224}, {123456789, 1, 99999}, {7}}

	for _, dt := range types {
		for _, shape := range shapes {
			for _, fortran := range []bool{false, true} {
				h := HeaderText(dt, shape, fortran)
				if (10+len(h))%16 != 0 {
					t.Errorf("%v %v: 10+%d is not a multiple of 16", dt, shape, len(h))
				}
				if !strings.HasSuffix(h, "\n") || strings.Count(h, "\n") != 1 {
					t.Errorf("%v %v: header must end with a single newline: %q", dt, shape, h)
				}
			}
		}
	}

	if h := HeaderText(dtype.Uint8, []int{7}, false); !strings.Contains(h, "'shape': (7,)") {
		t.Errorf("1-d shape needs a trailing comma: %q", h)
	}
}

func TestDescr(t *testing.T) {
	tests := map[dtype.DataType]string{
		dtype.Int8:    "|i1",
		dtype.Uint8:   "|u1",
		dtype.Int16:   "<i2",
		dtype.Uint16:  "<u2",
		dtype.Int32:   "<i4",
		dtype.Float32: "<f4",
		dtype.Float64: "<f8",
		dtype.Unknown: "<f8",
	}
	for dt, want := range tests {
		if got := Descr(dt); got != want {
			t.Errorf("Descr(%v) = %q, expected %q", dt, got, want)
		}
	}
	if dt, ok := DataTypeForDescr("<u2"); !ok || dt != dtype.Uint16 {
		t.Errorf("DataTypeForDescr(<u2) = %v, %v", dt, ok)
	}
}

func TestReadHeader(t *testing.T) {
	data := []int16{-1, 2, -3, 4, -5, 6}
	dest := filepath.Join(t.TempDir(), "cube.npy")
	if err := Write(dest, dtype.NewStorage(data), [3]int{1, 2, 3}, layout.ColumnMajor); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	h, err := ReadHeader(f)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.Major != 1 || h.Minor != 0 || h.Descr != "<i2" || !h.FortranOrder {
		t.Errorf("unexpected header %+v", h)
	}
	if len(h.Shape) != 3 || h.Shape[0] != 1 || h.Shape[1] != 2 || h.Shape[2] != 3 {
		t.Errorf("shape = %v", h.Shape)
	}
	if h.DataOffset%16 != 0 {
		t.Errorf("payload offset %d is not 16-byte aligned", h.DataOffset)
	}

	buf := make([]byte, 2)
	if _, err := f.ReadAt(buf, h.DataOffset+2*5); err != nil {
		t.Fatal(err)
	}
	if got := int16(binary.LittleEndian.Uint16(buf)); got != 6 {
		t.Errorf("last element = %d, expected 6", got)
	}

	if _, err := ReadHeader(bytes.NewReader([]byte("PK\x03\x04 not npy"))); err != ErrNotNPY {
		t.Errorf("expected ErrNotNPY, got %v", err)
	}
}

func TestWriteUint8Payload(t *testing.T) {
	data := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	dest := filepath.Join(t.TempDir(), "mask.npy")
	if err := Write(dest, dtype.NewStorage(data), [3]int{2, 2, 2}, layout.RowMajor); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	raw, _ := os.ReadFile(dest)
	if !bytes.HasSuffix(raw, data) {
		t.Errorf("payload mismatch: % x", raw)
	}
	if (len(raw)-len(data))%16 != 0 {
		t.Errorf("header size %d not aligned", len(raw)-len(data))
	}
}

func TestWriteLengthMismatch(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "bad.npy")
	err := Write(dest, dtype.NewStorage([]float64{1, 2}), [3]int{2, 2, 2}, layout.RowMajor)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("no file should be created for invalid data")
	}
}
