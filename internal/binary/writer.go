package binary

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// DefaultBufferSize is the flush threshold used by every codec. Peak memory of
// a streamed export is bounded by this value rather than by the payload size.
const DefaultBufferSize = 1 << 20

// ErrNotPatchable is returned by the Patch methods when the target bytes were
// already flushed and the underlying writer does not implement io.WriterAt.
var ErrNotPatchable = errors.New("binary: flushed bytes cannot be patched")

// Config holds writer configuration.
type Config struct {
	ByteOrder  binary.ByteOrder
	BufferSize int // flush threshold in bytes; <= 0 selects DefaultBufferSize
}

// DefaultConfig returns a little-endian configuration with the default buffer.
func DefaultConfig() Config {
	return Config{
		ByteOrder:  binary.LittleEndian,
		BufferSize: DefaultBufferSize,
	}
}

// Writer accumulates encoded bytes in a bounded buffer and hands them to the
// underlying io.Writer whenever the buffer reaches its threshold.
//
// The first error encountered is sticky: every later call returns it.
type Writer struct {
	w       io.Writer
	order   binary.ByteOrder
	buf     []byte
	limit   int
	flushed int64
	err     error
}

// NewWriter creates a buffered writer with the given configuration.
func NewWriter(w io.Writer, cfg Config) *Writer {
	limit := cfg.BufferSize
	if limit <= 0 {
		limit = DefaultBufferSize
	}
	order := cfg.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}
	return &Writer{
		w:     w,
		order: order,
		buf:   make([]byte, 0, limit),
		limit: limit,
	}
}

// Pos returns the number of bytes written so far, buffered or not.
func (w *Writer) Pos() int64 {
	return w.flushed + int64(len(w.buf))
}

// Buffered returns the number of bytes waiting in the buffer.
func (w *Writer) Buffered() int {
	return len(w.buf)
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}

// Flush hands all buffered bytes to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(w.buf) == 0 {
		return nil
	}
	n, err := w.w.Write(w.buf)
	w.flushed += int64(n)
	if err == nil && n < len(w.buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = err
		return err
	}
	w.buf = w.buf[:0]
	return nil
}

// Next returns a slice of the next n buffer bytes for the caller to fill in
// place. The slice is valid until the next call on the writer.
func (w *Writer) Next(n int) ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if n > w.limit {
		// Requests larger than the threshold grow it.
		if err := w.Flush(); err != nil {
			return nil, err
		}
		w.buf = make([]byte, 0, n)
		w.limit = n
	}
	if len(w.buf)+n > w.limit {
		if err := w.Flush(); err != nil {
			return nil, err
		}
	}
	start := len(w.buf)
	w.buf = w.buf[:start+n]
	return w.buf[start : start+n], nil
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if w.err != nil {
		return w.err
	}
	if len(data) == 0 {
		return nil
	}
	if len(data) >= w.limit {
		// Large payloads bypass the buffer after it has been drained.
		if err := w.Flush(); err != nil {
			return err
		}
		n, err := w.w.Write(data)
		w.flushed += int64(n)
		if err == nil && n < len(data) {
			err = io.ErrShortWrite
		}
		if err != nil {
			w.err = err
		}
		return err
	}
	if len(w.buf)+len(data) > w.limit {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	w.buf = append(w.buf, data...)
	return nil
}

// Write implements io.Writer so text can be formatted straight into the buffer.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.WriteBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Err returns the sticky error, if any.
func (w *Writer) Err() error {
	return w.err
}

// WriteString writes the bytes of s.
func (w *Writer) WriteString(s string) error {
	return w.WriteBytes([]byte(s))
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) error {
	b, err := w.Next(1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	b, err := w.Next(2)
	if err != nil {
		return err
	}
	w.order.PutUint16(b, v)
	return nil
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	b, err := w.Next(4)
	if err != nil {
		return err
	}
	w.order.PutUint32(b, v)
	return nil
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	b, err := w.Next(8)
	if err != nil {
		return err
	}
	w.order.PutUint64(b, v)
	return nil
}

// WriteFloat32 writes an IEEE 754 single.
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes an IEEE 754 double.
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// WriteUintN writes an unsigned integer of n bytes (1, 2, 4, or 8).
func (w *Writer) WriteUintN(v uint64, n int) error {
	b, err := w.Next(n)
	if err != nil {
		return err
	}
	w.encodeUint(b, v, n)
	return nil
}

// encodeUint encodes a variable-width unsigned integer into a buffer.
func (w *Writer) encodeUint(buf []byte, v uint64, size int) {
	switch size {
	case 1:
		buf[0] = uint8(v)
	case 2:
		w.order.PutUint16(buf, uint16(v))
	case 4:
		w.order.PutUint32(buf, uint32(v))
	case 8:
		w.order.PutUint64(buf, v)
	default:
		// Handle arbitrary sizes (little-endian assumed for non-standard)
		for i := 0; i < size; i++ {
			buf[i] = byte(v >> (8 * i))
		}
	}
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) error {
	for n > 0 {
		chunk := n
		if chunk > w.limit {
			chunk = w.limit
		}
		b, err := w.Next(chunk)
		if err != nil {
			return err
		}
		clear(b)
		n -= chunk
	}
	return nil
}

// WritePadding writes zero bytes to align the position to the given alignment.
func (w *Writer) WritePadding(alignment int64) error {
	return w.WriteZeros(int(Padding(w.Pos(), alignment)))
}

// PatchUint32 overwrites four bytes at an absolute position that was already
// written. Buffered bytes are patched in place; flushed bytes need an
// underlying io.WriterAt.
func (w *Writer) PatchUint32(at int64, v uint32) error {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	return w.PatchBytes(at, b[:])
}

// PatchBytes overwrites len(data) already written bytes starting at at.
func (w *Writer) PatchBytes(at int64, data []byte) error {
	if w.err != nil {
		return w.err
	}
	if at < 0 || at+int64(len(data)) > w.Pos() {
		return io.ErrShortWrite
	}
	if at >= w.flushed {
		copy(w.buf[at-w.flushed:], data)
		return nil
	}
	if at+int64(len(data)) > w.flushed {
		// Straddles the flush boundary; drain first so one WriteAt covers it.
		if err := w.Flush(); err != nil {
			return err
		}
	}
	wa, ok := w.w.(io.WriterAt)
	if !ok {
		return ErrNotPatchable
	}
	if _, err := wa.WriteAt(data, at); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Padding returns the number of bytes needed to advance pos to the next
// multiple of alignment.
func Padding(pos, alignment int64) int64 {
	if alignment <= 1 {
		return 0
	}
	if remainder := pos % alignment; remainder != 0 {
		return alignment - remainder
	}
	return 0
}

// Align rounds n up to the next multiple of alignment.
func Align(n, alignment int64) int64 {
	return n + Padding(n, alignment)
}
