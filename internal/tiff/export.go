package tiff

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	bin "github.com/robert-malhotra/go-hsiexport/internal/binary"
	"github.com/robert-malhotra/go-hsiexport/internal/convert"
	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
	"github.com/robert-malhotra/go-hsiexport/internal/logging"
)

// Layout selects how channels are laid out.
type Layout uint8

const (
	// Planar writes one directory per channel.
	Planar Layout = iota
	// Contiguous writes all channels of a pixel next to each other in a
	// single directory.
	Contiguous
)

func (l Layout) String() string {
	if l == Contiguous {
		return "contiguous"
	}
	return "planar"
}

// ParseLayout accepts "planar"/"separate" and "contiguous"/"interleaved".
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "planar", "separate":
		return Planar, nil
	case "contiguous", "interleaved", "chunky":
		return Contiguous, nil
	}
	return Planar, fmt.Errorf("unknown tiff layout %q", s)
}

// Options controls a TIFF export.
type Options struct {
	Layout Layout

	// NewBackend creates the backend for an open output. nil selects
	// NewStripWriter.
	NewBackend func(w *bin.Writer) (Backend, error)
}

// Prepare returns data unchanged when it is 8/16-bit unsigned and its
// uint16 rescale otherwise.
func Prepare(data dtype.Storage) dtype.Storage {
	if !convert.NeedsRescale(data.Type()) {
		return data
	}
	logging.Debugf("tiff: rescaling %v samples to uint16", data.Type())
	return convert.RescaleUint16(data)
}

// Directories lays the cube out as directories without copying it.
func Directories(data dtype.Storage, idx layout.Index, l Layout) []Directory {
	bits := 8 * data.Type().Size()
	width, height, channels := idx.Width(), idx.Height(), idx.Channels()
	put := sampleWriter(data)

	if l == Contiguous {
		step := channels * bits / 8
		return []Directory{{
			Width:           width,
			Height:          height,
			SamplesPerPixel: channels,
			BitsPerSample:   bits,
			Fill: func(dst []byte, y, n int) {
				i := 0
				for h := y; h < y+n; h++ {
					for w := 0; w < width; w++ {
						for c := 0; c < channels; c++ {
							put(dst[i+c*bits/8:], idx.At(c, h, w))
						}
						i += step
					}
				}
			},
		}}
	}

	dirs := make([]Directory, channels)
	for c := range dirs {
		c := c
		dirs[c] = Directory{
			Width:           width,
			Height:          height,
			SamplesPerPixel: 1,
			BitsPerSample:   bits,
			Fill: func(dst []byte, y, n int) {
				i := 0
				for h := y; h < y+n; h++ {
					for w := 0; w < width; w++ {
						put(dst[i:], idx.At(c, h, w))
						i += bits / 8
					}
				}
			},
		}
	}
	return dirs
}

func sampleWriter(data dtype.Storage) func(dst []byte, off int) {
	if raw, ok := dtype.Values[uint8](data); ok {
		return func(dst []byte, off int) { dst[0] = raw[off] }
	}
	return func(dst []byte, off int) { data.PutNative(dst, off, binary.LittleEndian) }
}

// WriteFile writes the cube addressed by idx to dest.
func WriteFile(dest string, data dtype.Storage, idx layout.Index, opts Options) error {
	if data.Len() != idx.Len() {
		return fmt.Errorf("%w: %d samples for dims %v", dtype.ErrInvalidData, data.Len(), idx.Dims)
	}
	data = Prepare(data)
	if data.Type() != dtype.Uint8 && data.Type() != dtype.Uint16 {
		return fmt.Errorf("%w: tiff cannot store %v", dtype.ErrUnsupportedDataType, data.Type())
	}
	newBackend := opts.NewBackend
	if newBackend == nil {
		newBackend = func(w *bin.Writer) (Backend, error) { return NewStripWriter(w) }
	}

	tlog := logging.NewTimeLog()
	dirs := Directories(data, idx, opts.Layout)
	n, err := bin.CreateFile(dest, bin.DefaultConfig(), func(w *bin.Writer) error {
		b, err := newBackend(w)
		if err != nil {
			return err
		}
		for i, d := range dirs {
			if err := b.WriteDirectory(d); err != nil {
				return fmt.Errorf("tiff: directory %d: %w", i, err)
			}
		}
		return b.Close()
	})
	if err != nil {
		return err
	}
	tlog.Debugf("tiff: wrote %s (%s, %d directories, %s)", dest, humanize.Bytes(uint64(n)), len(dirs), opts.Layout)
	return nil
}
