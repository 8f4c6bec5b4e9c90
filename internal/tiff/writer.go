package tiff

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	bin "github.com/robert-malhotra/go-hsiexport/internal/binary"
)

// Directory is one image to be written.
type Directory struct {
	Width           int
	Height          int
	SamplesPerPixel int
	BitsPerSample   int // 8 or 16

	// Fill stores rows [y, y+n) into dst, pixel by pixel with the samples of
	// a pixel adjacent, 16-bit samples little-endian. len(dst) is exactly the
	// byte size of those rows.
	Fill func(dst []byte, y, n int)
}

func (d *Directory) rowBytes() int {
	return d.Width * d.SamplesPerPixel * d.BitsPerSample / 8
}

func (d *Directory) validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.SamplesPerPixel <= 0 {
		return fmt.Errorf("tiff: invalid directory %dx%dx%d", d.Width, d.Height, d.SamplesPerPixel)
	}
	if d.BitsPerSample != 8 && d.BitsPerSample != 16 {
		return fmt.Errorf("tiff: %d bits per sample", d.BitsPerSample)
	}
	if d.SamplesPerPixel > math.MaxUint16 {
		return fmt.Errorf("tiff: %d samples per pixel", d.SamplesPerPixel)
	}
	return nil
}

// Backend receives fully laid out directories.
type Backend interface {
	WriteDirectory(d Directory) error
	Close() error
}

// StripWriter is a Backend producing little-endian, uncompressed,
// strip-organized baseline TIFF.
type StripWriter struct {
	w       *bin.Writer
	nextPtr int64 // position of the pointer to patch with the next IFD offset
	pages   int
}

// NewStripWriter writes the file header to w. Patching earlier next-IFD
// pointers requires w to wrap an io.WriterAt once they are flushed.
func NewStripWriter(w *bin.Writer) (*StripWriter, error) {
	if w.ByteOrder() != binary.LittleEndian {
		return nil, fmt.Errorf("tiff: strip writer needs a little-endian writer")
	}
	start := w.Pos()
	w.WriteString(leHeader)
	if err := w.WriteUint32(0); err != nil {
		return nil, err
	}
	return &StripWriter{w: w, nextPtr: start + 4}, nil
}

type entry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

func shortEntry(tag uint16, vals ...uint16) entry {
	b := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	return entry{tag: tag, typ: dtShort, count: uint32(len(vals)), data: b}
}

func longEntry(tag uint16, vals ...uint32) entry {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[4*i:], v)
	}
	return entry{tag: tag, typ: dtLong, count: uint32(len(vals)), data: b}
}

// RowsPerStrip returns the rows per strip for a row of rowBytes bytes.
func RowsPerStrip(rowBytes, height int) int {
	rows := 1
	if rowBytes > 0 && rowBytes < stripTarget {
		rows = stripTarget / rowBytes
	}
	if rows > height {
		rows = height
	}
	return rows
}

// WriteDirectory writes the strips of d, then its IFD, and links the IFD
// into the directory chain.
func (s *StripWriter) WriteDirectory(d Directory) error {
	if err := d.validate(); err != nil {
		return err
	}
	w := s.w

	rowBytes := d.rowBytes()
	rps := RowsPerStrip(rowBytes, d.Height)
	var offsets, counts []uint32
	for y := 0; y < d.Height; y += rps {
		n := rps
		if y+n > d.Height {
			n = d.Height - y
		}
		size := n * rowBytes
		if w.Pos()+int64(size) > math.MaxUint32 {
			return fmt.Errorf("tiff: file exceeds 4 GiB, baseline TIFF cannot address it")
		}
		offsets = append(offsets, uint32(w.Pos()))
		counts = append(counts, uint32(size))

		dst, err := w.Next(size)
		if err != nil {
			return err
		}
		d.Fill(dst, y, n)
	}
	// IFDs start on a word boundary.
	w.WritePadding(2)

	bits := make([]uint16, d.SamplesPerPixel)
	for i := range bits {
		bits[i] = uint16(d.BitsPerSample)
	}
	entries := []entry{
		longEntry(tImageWidth, uint32(d.Width)),
		longEntry(tImageLength, uint32(d.Height)),
		shortEntry(tBitsPerSample, bits...),
		shortEntry(tCompression, compressionNone),
		shortEntry(tPhotometricInterpretation, photometricMinIsBlack),
		longEntry(tStripOffsets, offsets...),
		shortEntry(tSamplesPerPixel, uint16(d.SamplesPerPixel)),
		longEntry(tRowsPerStrip, uint32(rps)),
		longEntry(tStripByteCounts, counts...),
		shortEntry(tPlanarConfiguration, planarContig),
	}
	if d.SamplesPerPixel > 1 {
		// Unspecified extra samples.
		entries = append(entries, shortEntry(tExtraSamples, make([]uint16, d.SamplesPerPixel-1)...))
	}

	ifd, next, err := s.writeIFD(entries)
	if err != nil {
		return err
	}
	if err := w.PatchUint32(s.nextPtr, uint32(ifd)); err != nil {
		return err
	}
	s.nextPtr = next
	s.pages++
	return nil
}

// writeIFD writes an IFD at the current position followed by its overflow
// area. It returns the IFD offset and the position of its next-IFD pointer.
func (s *StripWriter) writeIFD(entries []entry) (ifd, next int64, err error) {
	w := s.w
	sort.Slice(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })

	ifd = w.Pos()
	next = ifd + 2 + int64(ifdEntryLen*len(entries))
	overflow := next + 4

	w.WriteUint16(uint16(len(entries)))
	var extra []byte
	for _, e := range entries {
		w.WriteUint16(e.tag)
		w.WriteUint16(e.typ)
		w.WriteUint32(e.count)
		if len(e.data) <= 4 {
			var v [4]byte
			copy(v[:], e.data)
			w.WriteBytes(v[:])
			continue
		}
		w.WriteUint32(uint32(overflow + int64(len(extra))))
		extra = append(extra, e.data...)
		if len(extra)%2 == 1 {
			extra = append(extra, 0)
		}
	}
	w.WriteUint32(0)
	if err := w.WriteBytes(extra); err != nil {
		return 0, 0, err
	}
	if w.Pos() > math.MaxUint32 {
		return 0, 0, fmt.Errorf("tiff: file exceeds 4 GiB")
	}
	return ifd, next, nil
}

// Close checks that at least one directory was written.
func (s *StripWriter) Close() error {
	if s.pages == 0 {
		return fmt.Errorf("tiff: no directories written")
	}
	return s.w.Err()
}
