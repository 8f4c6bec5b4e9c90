package envi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
)

// ErrInvalidAdditionalHeaderField is matched by every *HeaderFieldError.
var ErrInvalidAdditionalHeaderField = errors.New("invalid additional header field")

// HeaderFieldError reports a malformed additional header line.
type HeaderFieldError struct {
	Line int // 1-based
	Text string
}

func (e *HeaderFieldError) Error() string {
	return fmt.Sprintf("%v on line %d: %q", ErrInvalidAdditionalHeaderField, e.Line, e.Text)
}

func (e *HeaderFieldError) Unwrap() error {
	return ErrInvalidAdditionalHeaderField
}

// ByteOrder is the byte order of the binary file.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// Code returns the header value: 0 for little-endian, 1 for big-endian.
func (o ByteOrder) Code() int {
	return int(o)
}

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

// ParseByteOrder accepts "little", "le", "0", "big", "be" and "1".
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "little", "le", "little-endian", "0":
		return LittleEndian, nil
	case "big", "be", "big-endian", "1":
		return BigEndian, nil
	}
	return LittleEndian, fmt.Errorf("unknown byte order %q", s)
}

var typeCodes = map[dtype.DataType]int{
	dtype.Uint8:   1,
	dtype.Int16:   2,
	dtype.Int32:   3,
	dtype.Float32: 4,
	dtype.Float64: 5,
	dtype.Uint16:  12,
}

// DataTypeCode returns the header code of a destination type.
func DataTypeCode(t dtype.DataType) (int, error) {
	code, ok := typeCodes[t]
	if !ok {
		return 0, fmt.Errorf("%w: envi cannot store %v", dtype.ErrUnsupportedDataType, t)
	}
	return code, nil
}

// DataTypeForCode is the inverse of DataTypeCode.
func DataTypeForCode(code int) (dtype.DataType, error) {
	for t, c := range typeCodes {
		if c == code {
			return t, nil
		}
	}
	return dtype.Unknown, fmt.Errorf("%w: envi data type code %d", dtype.ErrUnsupportedDataType, code)
}

// DataTypeDefaultFor picks the destination type for a cube whose original
// type is t. int8 has no ENVI code and widens to int16.
func DataTypeDefaultFor(t dtype.DataType) dtype.DataType {
	switch t {
	case dtype.Int8:
		return dtype.Int16
	case dtype.Unknown:
		return dtype.Float32
	}
	return t
}

// reservedKeys are written by Header itself and cannot be overridden.
var reservedKeys = map[string]bool{
	"samples":          true,
	"lines":            true,
	"bands":            true,
	"header offset":    true,
	"file type":        true,
	"data type":        true,
	"interleave":       true,
	"byte order":       true,
	"description":      true,
	"sensor type":      true,
	"acquisition time": true,
	"acquisition date": true,
	"map info":         true,
	"default bands":    true,
	"wavelength":       true,
	"wavelength units": true,
}

// IsReservedKey reports whether key names a field the header writes itself.
func IsReservedKey(key string) bool {
	return reservedKeys[strings.ToLower(strings.TrimSpace(key))]
}

// ParseAdditionalFields validates caller-supplied header text and returns the
// lines to append. Blank lines and lines starting with '#' or ';' are
// skipped. Lines whose key is reserved are dropped. Every other line must
// contain '=' with a non-empty key before it.
func ParseAdditionalFields(text string) ([]string, error) {
	var out []string
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, &HeaderFieldError{Line: i + 1, Text: line}
		}
		key := strings.TrimSpace(line[:eq])
		if key == "" {
			return nil, &HeaderFieldError{Line: i + 1, Text: line}
		}
		if IsReservedKey(key) {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

// FormatWavelength renders v with eight decimals, then strips trailing zeros
// and a trailing decimal point.
func FormatWavelength(v float64) string {
	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" || s == "-0" {
		return "0"
	}
	return s
}

// Header describes an ENVI header file.
type Header struct {
	Samples    int
	Lines      int
	Bands      int
	DataType   dtype.DataType
	Interleave layout.Interleave
	ByteOrder  ByteOrder

	Description     string
	SensorType      string
	AcquisitionTime string
	MapInfo         string // contents of the braces, e.g. "UTM, 1, 1, ..."
	DefaultBands    []int  // three 1-based band numbers, or nil
	Wavelengths     []float64
	WavelengthUnits string

	Additional []string
}

// WriteTo writes the header text to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	code, err := DataTypeCode(h.DataType)
	if err != nil {
		return 0, err
	}

	var b strings.Builder
	b.WriteString("ENVI\n")
	fmt.Fprintf(&b, "samples = %d\n", h.Samples)
	fmt.Fprintf(&b, "lines = %d\n", h.Lines)
	fmt.Fprintf(&b, "bands = %d\n", h.Bands)
	b.WriteString("header offset = 0\n")
	b.WriteString("file type = ENVI Standard\n")
	fmt.Fprintf(&b, "data type = %d\n", code)
	fmt.Fprintf(&b, "interleave = %s\n", h.Interleave)
	fmt.Fprintf(&b, "byte order = %d\n", h.ByteOrder.Code())

	if h.Description != "" {
		fmt.Fprintf(&b, "description = {%s}\n", h.Description)
	}
	if h.SensorType != "" {
		fmt.Fprintf(&b, "sensor type = %s\n", h.SensorType)
	}
	if h.AcquisitionTime != "" {
		fmt.Fprintf(&b, "acquisition time = %s\n", h.AcquisitionTime)
	}
	if h.MapInfo != "" {
		fmt.Fprintf(&b, "map info = {%s}\n", h.MapInfo)
	}
	if len(h.DefaultBands) == 3 {
		fmt.Fprintf(&b, "default bands = {%d, %d, %d}\n", h.DefaultBands[0], h.DefaultBands[1], h.DefaultBands[2])
	}
	if len(h.Wavelengths) > 0 {
		parts := make([]string, len(h.Wavelengths))
		for i, v := range h.Wavelengths {
			parts[i] = FormatWavelength(v)
		}
		fmt.Fprintf(&b, "wavelength = {%s}\n", strings.Join(parts, ", "))
		if h.WavelengthUnits != "" {
			fmt.Fprintf(&b, "wavelength units = %s\n", h.WavelengthUnits)
		}
	}
	for _, line := range h.Additional {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Field is one key = value pair of a parsed header.
type Field struct {
	Key   string
	Value string
}

// ReadHeader parses header text into its fields in file order. Values in
// braces may span several lines and are returned with the braces.
func ReadHeader(r io.Reader) ([]Field, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "ENVI" {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("envi: header does not start with ENVI")
	}

	var fields []Field
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, fmt.Errorf("envi: malformed header line %q", line)
		}
		f := Field{
			Key:   strings.TrimSpace(line[:eq]),
			Value: strings.TrimSpace(line[eq+1:]),
		}
		for strings.HasPrefix(f.Value, "{") && !strings.Contains(f.Value, "}") && sc.Scan() {
			f.Value += " " + strings.TrimSpace(sc.Text())
		}
		fields = append(fields, f)
	}
	return fields, sc.Err()
}

// Lookup returns the value of the first field named key, case-insensitively.
func Lookup(fields []Field, key string) (string, bool) {
	for _, f := range fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value, true
		}
	}
	return "", false
}
