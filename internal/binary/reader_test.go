package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestReaderBasics(t *testing.T) {
	data := []byte{
		0xAB,
		0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0xF0, 0xDE, 0xBC, 0x9A, 0x78, 0x56, 0x34, 0x12,
	}
	r := NewReader(bytes.NewReader(data), binary.LittleEndian)

	v8, err := r.ReadUint8()
	if err != nil || v8 != 0xAB {
		t.Fatalf("ReadUint8: got 0x%X, %v", v8, err)
	}
	v16, err := r.ReadUint16()
	if err != nil || v16 != 0x1234 {
		t.Fatalf("ReadUint16: got 0x%X, %v", v16, err)
	}
	v32, err := r.ReadUint32()
	if err != nil || v32 != 0x12345678 {
		t.Fatalf("ReadUint32: got 0x%X, %v", v32, err)
	}
	v64, err := r.ReadUint64()
	if err != nil || v64 != 0x123456789ABCDEF0 {
		t.Fatalf("ReadUint64: got 0x%X, %v", v64, err)
	}
	if r.Pos() != int64(len(data)) {
		t.Errorf("expected position %d, got %d", len(data), r.Pos())
	}
}

func TestReaderAtAndByteOrder(t *testing.T) {
	data := []byte{0x00, 0x00, 0x12, 0x34}
	r := NewReader(bytes.NewReader(data), binary.LittleEndian)

	be := r.At(2).WithByteOrder(binary.BigEndian)
	v, err := be.ReadUint16()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%X", v)
	}
	if r.Pos() != 0 {
		t.Errorf("original reader moved to %d", r.Pos())
	}
}

func TestReaderPeekAndAlign(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("abcdefghij")), nil)

	p, err := r.Peek(3)
	if err != nil || string(p) != "abc" {
		t.Fatalf("Peek: got %q, %v", p, err)
	}
	if r.Pos() != 0 {
		t.Errorf("Peek advanced position to %d", r.Pos())
	}

	r.Skip(3)
	r.Align(8)
	if r.Pos() != 8 {
		t.Errorf("expected aligned position 8, got %d", r.Pos())
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}), binary.LittleEndian)

	_, err := r.ReadUint32()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	if r.Pos() != 0 {
		t.Errorf("failed read moved position to %d", r.Pos())
	}
}
