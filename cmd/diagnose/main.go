// Diagnostic tool for inspecting exported cube files
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/robert-malhotra/go-hsiexport/internal/envi"
	"github.com/robert-malhotra/go-hsiexport/internal/mat5"
	"github.com/robert-malhotra/go-hsiexport/internal/npy"
	"github.com/robert-malhotra/go-hsiexport/internal/tiff"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/diagnose/main.go <file.npy|file.mat|file.hdr|file.tif> ...")
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := inspect(filename); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			failed = true
		}
		fmt.Println()
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	fmt.Printf("=== Analyzing %s (%s) ===\n\n", filename, humanize.IBytes(uint64(info.Size())))

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".npy":
		return inspectNPY(f, info.Size())
	case ".mat":
		return inspectMAT(f, info.Size())
	case ".hdr":
		return inspectENVI(f, filename)
	case ".tif", ".tiff":
		return inspectTIFF(f)
	}
	return fmt.Errorf("unknown file type %q", filepath.Ext(filename))
}

func inspectNPY(f *os.File, size int64) error {
	h, err := npy.ReadHeader(f)
	if err != nil {
		return err
	}
	fmt.Printf("Version: %d.%d\n", h.Major, h.Minor)
	fmt.Printf("Descr: %s\n", h.Descr)
	fmt.Printf("Fortran order: %v\n", h.FortranOrder)
	fmt.Printf("Shape: %v\n", h.Shape)
	fmt.Printf("Data offset: %d (aligned: %v)\n", h.DataOffset, h.DataOffset%16 == 0)

	t, ok := npy.DataTypeForDescr(h.Descr)
	if !ok {
		fmt.Println("  [UNKNOWN DESCRIPTOR]")
		return nil
	}
	want := int64(t.Size())
	for _, d := range h.Shape {
		want *= int64(d)
	}
	fmt.Printf("Payload: %s, expected %s\n", humanize.IBytes(uint64(size-h.DataOffset)), humanize.IBytes(uint64(want)))
	if size-h.DataOffset != want {
		fmt.Println("  [PAYLOAD SIZE MISMATCH]")
	}
	return nil
}

func inspectMAT(f *os.File, size int64) error {
	hdr, elems, err := mat5.Scan(f, size)
	if hdr != nil {
		fmt.Printf("Header: %s\n", hdr.Text)
		fmt.Printf("Version: 0x%04X\n\n", hdr.Version)
	}
	for _, e := range elems {
		kind := "matrix"
		if e.Compressed {
			kind = "compressed matrix"
		}
		fmt.Printf("Element at %d: %s, %s\n", e.Offset, kind, humanize.IBytes(uint64(e.NumBytes)))
		if e.Name == "" {
			fmt.Printf("  Type: %d\n", e.Type)
			continue
		}
		fmt.Printf("  Name: %q\n", e.Name)
		fmt.Printf("  Dims: %v\n", e.Dims)
		if t, ok := mat5.DataTypeOfClass(e.Class); ok {
			fmt.Printf("  Class: %d (%v)\n", e.Class, t)
		} else {
			fmt.Printf("  Class: %d\n", e.Class)
		}
		fmt.Printf("  Data: type %d, %s\n", e.DataType, humanize.IBytes(uint64(e.DataBytes)))
	}
	return err
}

func inspectENVI(f *os.File, filename string) error {
	fields, err := envi.ReadHeader(f)
	if err != nil {
		return err
	}
	for _, fld := range fields {
		v := fld.Value
		if len(v) > 72 {
			v = v[:69] + "..."
		}
		fmt.Printf("%s = %s\n", fld.Key, v)
	}

	// Look for the binary next to the header.
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	for _, ext := range []string{".dat", ".img", ".raw", ".bsq", ".bil", ".bip", ""} {
		if info, err := os.Stat(base + ext); err == nil && !info.IsDir() && base+ext != filename {
			fmt.Printf("\nBinary: %s (%s)\n", base+ext, humanize.IBytes(uint64(info.Size())))
			break
		}
	}
	return nil
}

func inspectTIFF(f *os.File) error {
	dirs, err := tiff.ReadDirectories(f)
	for i, d := range dirs {
		fmt.Printf("Directory %d at %d:\n", i, d.Offset)
		fmt.Printf("  Size: %dx%d, %d samples, bits %v\n", d.Width, d.Height, d.SamplesPerPixel, d.BitsPerSample)
		fmt.Printf("  Compression: %d, photometric: %d, planar: %d, extra samples: %d\n",
			d.Compression, d.Photometric, d.Planar, d.ExtraSamples)
		var total int64
		for _, n := range d.StripByteCounts {
			total += n
		}
		fmt.Printf("  Strips: %d x %d rows, %s\n", len(d.StripOffsets), d.RowsPerStrip, humanize.IBytes(uint64(total)))
	}
	return err
}
