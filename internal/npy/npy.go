package npy

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	bin "github.com/robert-malhotra/go-hsiexport/internal/binary"
	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
	"github.com/robert-malhotra/go-hsiexport/internal/logging"
)

// Magic is the 6-byte signature of every .npy file.
const Magic = "\x93NUMPY"

const (
	preambleSize = 10 // magic, version, header length
	alignment    = 16
)

// ErrNotNPY is returned by ReadHeader for data without the .npy signature.
var ErrNotNPY = errors.New("not an npy file")

var descriptors = map[dtype.DataType]string{
	dtype.Int8:    "|i1",
	dtype.Uint8:   "|u1",
	dtype.Int16:   "<i2",
	dtype.Uint16:  "<u2",
	dtype.Int32:   "<i4",
	dtype.Float32: "<f4",
	dtype.Float64: "<f8",
}

// Descr returns the descr string for t. Unknown types map to '<f8'.
func Descr(t dtype.DataType) string {
	if d, ok := descriptors[t]; ok {
		return d
	}
	return "<f8"
}

// DataTypeForDescr is the inverse of Descr.
func DataTypeForDescr(descr string) (dtype.DataType, bool) {
	for t, d := range descriptors {
		if d == descr {
			return t, true
		}
	}
	return dtype.Unknown, false
}

// HeaderText returns the padded header, including its trailing newline.
func HeaderText(t dtype.DataType, shape []int, fortran bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{'descr': '%s', 'fortran_order': %s, 'shape': (", Descr(t), pyBool(fortran))
	for i, d := range shape {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(d))
	}
	if len(shape) == 1 {
		b.WriteByte(',')
	}
	b.WriteString("), }")

	n := preambleSize + b.Len() + 1
	if pad := bin.Padding(int64(n), alignment); pad > 0 {
		b.WriteString(strings.Repeat(" ", int(pad)))
	}
	b.WriteByte('\n')
	return b.String()
}

func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// Write writes data with the given shape and storage order to dest.
func Write(dest string, data dtype.Storage, dims [3]int, order layout.Order) error {
	if data.Len() != dims[0]*dims[1]*dims[2] {
		return fmt.Errorf("%w: %d samples for dims %v", dtype.ErrInvalidData, data.Len(), dims)
	}
	header := HeaderText(data.Type(), dims[:], order == layout.ColumnMajor)
	if len(header) > 0xFFFF {
		return fmt.Errorf("%w: npy header of %d bytes", dtype.ErrInvalidData, len(header))
	}

	tlog := logging.NewTimeLog()
	n, err := bin.CreateFile(dest, bin.DefaultConfig(), func(w *bin.Writer) error {
		w.WriteString(Magic)
		w.WriteUint8(1)
		w.WriteUint8(0)
		w.WriteUint16(uint16(len(header)))
		if err := w.WriteString(header); err != nil {
			return err
		}
		return writePayload(w, data)
	})
	if err != nil {
		return err
	}
	tlog.Debugf("npy: wrote %s (%s, %s)", dest, humanize.Bytes(uint64(n)), Descr(data.Type()))
	return nil
}

func writePayload(w *bin.Writer, data dtype.Storage) error {
	if raw, ok := dtype.Values[uint8](data); ok {
		return w.WriteBytes(raw)
	}
	size := data.Type().Size()
	for i := 0; i < data.Len(); i++ {
		b, err := w.Next(size)
		if err != nil {
			return err
		}
		data.PutNative(b, i, binary.LittleEndian)
	}
	return nil
}

// Header is the parsed preamble of a .npy file.
type Header struct {
	Major, Minor int
	Descr        string
	FortranOrder bool
	Shape        []int
	// DataOffset is the file offset of the first payload byte.
	DataOffset int64
}

// ReadHeader parses the preamble and header dict of a version 1.0 or 2.0 file.
func ReadHeader(r io.ReaderAt) (*Header, error) {
	br := bin.NewReader(r, binary.LittleEndian)
	magic, err := br.ReadBytes(len(Magic))
	if err != nil || string(magic) != Magic {
		return nil, ErrNotNPY
	}
	major, _ := br.ReadUint8()
	minor, err := br.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("npy version: %w", err)
	}

	var hlen int
	switch major {
	case 1:
		v, err := br.ReadUint16()
		if err != nil {
			return nil, fmt.Errorf("npy header length: %w", err)
		}
		hlen = int(v)
	case 2, 3:
		v, err := br.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("npy header length: %w", err)
		}
		hlen = int(v)
	default:
		return nil, fmt.Errorf("unsupported npy version %d.%d", major, minor)
	}

	text, err := br.ReadBytes(hlen)
	if err != nil {
		return nil, fmt.Errorf("npy header: %w", err)
	}
	h, err := parseDict(string(text))
	if err != nil {
		return nil, err
	}
	h.Major, h.Minor = int(major), int(minor)
	h.DataOffset = br.Pos()
	return h, nil
}

func parseDict(text string) (*Header, error) {
	h := &Header{}

	descr, err := dictValue(text, "descr")
	if err != nil {
		return nil, err
	}
	h.Descr = strings.Trim(descr, "'\"")

	fortran, err := dictValue(text, "fortran_order")
	if err != nil {
		return nil, err
	}
	h.FortranOrder = fortran == "True"

	shape, err := dictValue(text, "shape")
	if err != nil {
		return nil, err
	}
	for _, part := range strings.Split(strings.Trim(shape, "()"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("npy shape %q: %w", shape, err)
		}
		h.Shape = append(h.Shape, d)
	}
	return h, nil
}

// dictValue extracts the raw value text of key from a header dict.
func dictValue(text, key string) (string, error) {
	i := strings.Index(text, "'"+key+"'")
	if i < 0 {
		return "", fmt.Errorf("npy header has no %q", key)
	}
	rest := strings.TrimLeft(text[i+len(key)+2:], " :")
	end := strings.IndexByte(rest, ',')
	if strings.HasPrefix(rest, "(") {
		end = strings.IndexByte(rest, ')') + 1
	}
	if end <= 0 {
		end = strings.IndexByte(rest, '}')
	}
	if end < 0 {
		return "", fmt.Errorf("npy header value for %q is unterminated", key)
	}
	return strings.TrimSpace(rest[:end]), nil
}
