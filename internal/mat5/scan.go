package mat5

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"

	bin "github.com/robert-malhotra/go-hsiexport/internal/binary"
)

// ErrNotMAT5 is returned by Scan when the header is not a little-endian
// Level 5 MAT-file header.
var ErrNotMAT5 = errors.New("not a little-endian mat5 file")

// FileHeader is the parsed 128-byte file header.
type FileHeader struct {
	Text    string
	Version uint16
}

// Element describes one top-level data element.
type Element struct {
	// Offset of the element tag in the file.
	Offset int64
	Type   uint32
	// NumBytes is the byte count stored in the tag.
	NumBytes uint32

	// The fields below are set for matrix elements, including those
	// unwrapped from miCOMPRESSED.
	Compressed bool
	Class      uint32
	Dims       []int
	Name       string
	DataType   uint32
	DataBytes  uint32

	src     io.ReaderAt
	dataPos int64
}

// ReadData returns the raw little-endian real part of a matrix element.
func (e *Element) ReadData() ([]byte, error) {
	if e.src == nil {
		return nil, fmt.Errorf("mat5: element at %d is not a matrix", e.Offset)
	}
	buf := make([]byte, e.DataBytes)
	if _, err := e.src.ReadAt(buf, e.dataPos); err != nil {
		return nil, fmt.Errorf("mat5: reading %q: %w", e.Name, err)
	}
	return buf, nil
}

// Scan parses the file header and walks the element tags of a file of the
// given size, skipping exactly 8+NumBytes bytes per element.
func Scan(r io.ReaderAt, size int64) (*FileHeader, []Element, error) {
	if size < HeaderSize {
		return nil, nil, ErrNotMAT5
	}
	br := bin.NewReader(r, binary.LittleEndian)
	text, err := br.ReadBytes(textSize)
	if err != nil {
		return nil, nil, err
	}
	br.Skip(8)
	ver, _ := br.ReadUint16()
	marker, err := br.ReadBytes(2)
	if err != nil {
		return nil, nil, err
	}
	if string(marker) != "IM" {
		return nil, nil, ErrNotMAT5
	}
	hdr := &FileHeader{Text: strings.TrimRight(string(text), " \x00"), Version: ver}

	var elems []Element
	pos := int64(HeaderSize)
	for pos+8 <= size {
		tag := br.At(pos)
		typ, _ := tag.ReadUint32()
		n, err := tag.ReadUint32()
		if err != nil {
			return hdr, elems, err
		}
		if pos+8+int64(n) > size {
			return hdr, elems, fmt.Errorf("mat5: element at %d claims %d bytes past end of file", pos, n)
		}

		e := Element{Offset: pos, Type: typ, NumBytes: n}
		switch typ {
		case miMATRIX:
			if err := parseMatrix(&e, r, pos+8, n); err != nil {
				return hdr, elems, err
			}
		case miCOMPRESSED:
			if err := parseCompressed(&e, r, pos+8, n); err != nil {
				return hdr, elems, err
			}
		}
		elems = append(elems, e)
		pos += 8 + int64(n)
	}
	return hdr, elems, nil
}

func parseCompressed(e *Element, r io.ReaderAt, at int64, n uint32) error {
	zr, err := zlib.NewReader(io.NewSectionReader(r, at, int64(n)))
	if err != nil {
		return fmt.Errorf("mat5: compressed element at %d: %w", e.Offset, err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return fmt.Errorf("mat5: compressed element at %d: %w", e.Offset, err)
	}

	inner := bytes.NewReader(raw)
	br := bin.NewReader(inner, binary.LittleEndian)
	typ, _ := br.ReadUint32()
	size, err := br.ReadUint32()
	if err != nil {
		return fmt.Errorf("mat5: compressed element at %d: %w", e.Offset, err)
	}
	if typ != miMATRIX || int64(size)+8 > int64(len(raw)) {
		return fmt.Errorf("mat5: compressed element at %d does not hold a matrix", e.Offset)
	}
	e.Compressed = true
	return parseMatrix(e, inner, 8, size)
}

// parseMatrix reads the sub-elements of an miMATRIX payload starting at at.
func parseMatrix(e *Element, r io.ReaderAt, at int64, n uint32) error {
	br := bin.NewReader(r, binary.LittleEndian).At(at)
	end := at + int64(n)

	sub := func(want uint32) (uint32, int64, error) {
		typ, _ := br.ReadUint32()
		size, err := br.ReadUint32()
		if err != nil {
			return 0, 0, err
		}
		if want != 0 && typ != want {
			return 0, 0, fmt.Errorf("mat5: %q: expected sub-element type %d, got %d", e.Name, want, typ)
		}
		start := br.Pos()
		if start+int64(size) > end {
			return 0, 0, fmt.Errorf("mat5: sub-element of %d bytes overruns matrix at %d", size, e.Offset)
		}
		return size, start, nil
	}

	if _, _, err := sub(miUINT32); err != nil {
		return err
	}
	class, _ := br.ReadUint32()
	br.Skip(4)

	dimBytes, _, err := sub(miINT32)
	if err != nil {
		return err
	}
	for i := uint32(0); i < dimBytes/4; i++ {
		d, _ := br.ReadUint32()
		e.Dims = append(e.Dims, int(int32(d)))
	}
	br.Skip(bin.Padding(int64(dimBytes), 8))

	nameLen, _, err := sub(miINT8)
	if err != nil {
		return err
	}
	name, err := br.ReadBytes(int(nameLen))
	if err != nil {
		return err
	}
	br.Skip(bin.Padding(int64(nameLen), 8))

	e.Class = class
	e.Name = string(name)

	e.DataType, _ = br.ReadUint32()
	size, err := br.ReadUint32()
	if err != nil {
		return err
	}
	if br.Pos()+int64(size) > end {
		return fmt.Errorf("mat5: %q data overruns its element", e.Name)
	}
	e.DataBytes = size
	e.dataPos = br.Pos()
	e.src = r
	return nil
}
