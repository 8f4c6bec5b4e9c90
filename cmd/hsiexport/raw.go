package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-hsiexport/hsi"
	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/envi"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
)

// rawCube describes a headerless cube file.
type rawCube struct {
	Path        string
	Dims        string
	Type        string
	Order       string
	Endian      string
	Wavelengths string
}

// Load reads the file and wraps it in a cube.
func (r rawCube) Load() (*hsi.Cube, error) {
	dims, err := parseDims(r.Dims)
	if err != nil {
		return nil, err
	}
	t, err := dtype.ParseDataType(r.Type)
	if err != nil {
		return nil, err
	}
	order, err := layout.ParseOrder(r.Order)
	if err != nil {
		return nil, err
	}
	bo, err := envi.ParseByteOrder(r.Endian)
	if err != nil {
		return nil, err
	}
	var byteOrder binary.ByteOrder = binary.LittleEndian
	if bo == envi.BigEndian {
		byteOrder = binary.BigEndian
	}

	n := dims[0] * dims[1] * dims[2]
	data, err := readSamples(r.Path, t, byteOrder, n)
	if err != nil {
		return nil, err
	}

	var opts []hsi.CubeOption
	if r.Wavelengths != "" {
		w, err := readWavelengths(r.Wavelengths)
		if err != nil {
			return nil, err
		}
		opts = append(opts, hsi.WithWavelengths(w))
	}
	return hsi.NewCube(dims, data, order, opts...)
}

func parseDims(s string) ([3]int, error) {
	var dims [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return dims, fmt.Errorf("expected three dimensions, got %q", s)
	}
	for i, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || d <= 0 {
			return dims, fmt.Errorf("invalid dimension %q", p)
		}
		dims[i] = d
	}
	return dims, nil
}

// readSamples decodes exactly n samples of type t from path.
func readSamples(path string, t dtype.DataType, order binary.ByteOrder, n int) (interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if want := int64(n) * int64(t.Size()); info.Size() != want {
		return nil, fmt.Errorf("%s holds %d bytes, expected %d for %d %v samples", path, info.Size(), want, n, t)
	}

	var data interface{}
	switch t {
	case dtype.Int8:
		data = make([]int8, n)
	case dtype.Int16:
		data = make([]int16, n)
	case dtype.Int32:
		data = make([]int32, n)
	case dtype.Uint8:
		data = make([]uint8, n)
	case dtype.Uint16:
		data = make([]uint16, n)
	case dtype.Float32:
		data = make([]float32, n)
	case dtype.Float64:
		data = make([]float64, n)
	default:
		return nil, fmt.Errorf("unsupported sample type %v", t)
	}
	if err := binary.Read(bufio.NewReaderSize(f, 1<<20), order, data); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func readWavelengths(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var w []float64
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || s[0] == '#' {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		w = append(w, v)
	}
	return w, sc.Err()
}
