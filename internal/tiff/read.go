package tiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	bin "github.com/robert-malhotra/go-hsiexport/internal/binary"
)

// ErrNotTIFF is returned by ReadDirectories for data without a little-endian
// TIFF header.
var ErrNotTIFF = errors.New("not a little-endian tiff file")

// maxDirectories bounds the directory chain walked by ReadDirectories.
const maxDirectories = 1 << 16

// DirectoryInfo describes a directory found in a file.
type DirectoryInfo struct {
	Offset          int64
	Width           int
	Height          int
	SamplesPerPixel int
	BitsPerSample   []int
	Compression     int
	Photometric     int
	Planar          int
	RowsPerStrip    int
	StripOffsets    []int64
	StripByteCounts []int64
	ExtraSamples    int
}

// ReadDirectories walks the IFD chain of a little-endian TIFF file.
func ReadDirectories(r io.ReaderAt) ([]DirectoryInfo, error) {
	br := bin.NewReader(r, binary.LittleEndian)
	head, err := br.ReadBytes(4)
	if err != nil || string(head) != leHeader {
		return nil, ErrNotTIFF
	}
	off, err := br.ReadUint32()
	if err != nil {
		return nil, err
	}

	var dirs []DirectoryInfo
	seen := map[uint32]bool{}
	for off != 0 {
		if seen[off] || len(dirs) >= maxDirectories {
			return dirs, fmt.Errorf("tiff: directory loop at offset %d", off)
		}
		seen[off] = true

		d, next, err := readDirectory(br.At(int64(off)))
		if err != nil {
			return dirs, fmt.Errorf("tiff: directory at %d: %w", off, err)
		}
		d.Offset = int64(off)
		dirs = append(dirs, d)
		off = next
	}
	return dirs, nil
}

func readDirectory(br *bin.Reader) (DirectoryInfo, uint32, error) {
	d := DirectoryInfo{Planar: 1, SamplesPerPixel: 1, Compression: 1}
	n, err := br.ReadUint16()
	if err != nil {
		return d, 0, err
	}
	for i := 0; i < int(n); i++ {
		tag, _ := br.ReadUint16()
		typ, _ := br.ReadUint16()
		count, _ := br.ReadUint32()
		raw, err := br.ReadBytes(4)
		if err != nil {
			return d, 0, err
		}
		vals, err := entryValues(br, typ, count, raw)
		if err != nil {
			return d, 0, fmt.Errorf("tag %d: %w", tag, err)
		}
		first := 0
		if len(vals) > 0 {
			first = int(vals[0])
		}

		switch tag {
		case tImageWidth:
			d.Width = first
		case tImageLength:
			d.Height = first
		case tBitsPerSample:
			d.BitsPerSample = toInts(vals)
		case tCompression:
			d.Compression = first
		case tPhotometricInterpretation:
			d.Photometric = first
		case tSamplesPerPixel:
			d.SamplesPerPixel = first
		case tRowsPerStrip:
			d.RowsPerStrip = first
		case tPlanarConfiguration:
			d.Planar = first
		case tExtraSamples:
			d.ExtraSamples = len(vals)
		case tStripOffsets:
			d.StripOffsets = toInt64s(vals)
		case tStripByteCounts:
			d.StripByteCounts = toInt64s(vals)
		}
	}
	next, err := br.ReadUint32()
	return d, next, err
}

// entryValues decodes SHORT and LONG values, reading the overflow area when
// they do not fit in the entry. Other types yield no values.
func entryValues(br *bin.Reader, typ uint16, count uint32, raw []byte) ([]uint32, error) {
	var size uint32
	switch typ {
	case dtShort:
		size = 2
	case dtLong:
		size = 4
	default:
		return nil, nil
	}
	if count > 1<<24 {
		return nil, fmt.Errorf("implausible count %d", count)
	}
	data := raw
	if count*size > 4 {
		var err error
		data, err = br.At(int64(binary.LittleEndian.Uint32(raw))).ReadBytes(int(count * size))
		if err != nil {
			return nil, err
		}
	}
	vals := make([]uint32, count)
	for i := range vals {
		if size == 2 {
			vals[i] = uint32(binary.LittleEndian.Uint16(data[2*i:]))
		} else {
			vals[i] = binary.LittleEndian.Uint32(data[4*i:])
		}
	}
	return vals, nil
}

func toInts(vals []uint32) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}
	return out
}

func toInt64s(vals []uint32) []int64 {
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = int64(v)
	}
	return out
}
