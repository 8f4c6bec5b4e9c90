package hsi

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robert-malhotra/go-hsiexport/internal/envi"
	"github.com/robert-malhotra/go-hsiexport/internal/mat5"
	"github.com/robert-malhotra/go-hsiexport/internal/npy"
	"github.com/robert-malhotra/go-hsiexport/internal/tiff"
)

// testCube returns a row-major 4x5x3 (height, width, channel) float32 cube.
func testCube(t *testing.T, opts ...CubeOption) *Cube {
	t.Helper()
	data := make([]float32, 4*5*3)
	for i := range data {
		data[i] = float32(i) / 4
	}
	c, err := NewCube([3]int{4, 5, 3}, data, RowMajor, opts...)
	if err != nil {
		t.Fatalf("NewCube failed: %v", err)
	}
	return c
}

func readENVIHeader(t *testing.T, path string) []envi.Field {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	fields, err := envi.ReadHeader(f)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	return fields
}

func TestExportENVI(t *testing.T) {
	c := testCube(t, WithWavelengths([]float64{450, 550.5, 650}))
	dest := filepath.Join(t.TempDir(), "cube.dat")

	err := ExportENVI(c, dest, ENVIOptions{
		Interleave:   BIP,
		DefaultBands: DefaultBands{Mode: envi.BandsPreset},
	})
	if err != nil {
		t.Fatalf("ExportENVI failed: %v", err)
	}

	fields := readENVIHeader(t, filepath.Join(filepath.Dir(dest), "cube.hdr"))
	want := map[string]string{
		"samples":          "5",
		"lines":            "4",
		"bands":            "3",
		"data type":        "4",
		"interleave":       "bip",
		"default bands":    "{3, 3, 3}",
		"wavelength units": "Nanometers",
	}
	for k, v := range want {
		if got, ok := envi.Lookup(fields, k); !ok || got != v {
			t.Errorf("%s = %q, expected %q", k, got, v)
		}
	}
	if wl, _ := envi.Lookup(fields, "wavelength"); !strings.Contains(wl, "550.5") {
		t.Errorf("wavelength = %q", wl)
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 60*4 {
		t.Errorf("binary size = %d, expected %d", info.Size(), 60*4)
	}
}

func TestExportENVIDataTypeFromOriginal(t *testing.T) {
	c, err := NewCube([3]int{2, 2, 1}, []int8{-3, 0, 1, 2}, RowMajor)
	if err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(t.TempDir(), "cube.img")
	if err := ExportENVI(c, dest, ENVIOptions{OmitWavelengths: true}); err != nil {
		t.Fatalf("ExportENVI failed: %v", err)
	}
	fields := readENVIHeader(t, filepath.Join(filepath.Dir(dest), "cube.hdr"))
	if got, _ := envi.Lookup(fields, "data type"); got != "2" {
		t.Errorf("data type = %q, expected 2 (int16)", got)
	}
	if _, ok := envi.Lookup(fields, "wavelength units"); ok {
		t.Error("wavelength units written without wavelengths")
	}
}

func TestExportENVIRejectsBadFieldsBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "cube.dat")
	err := ExportENVI(testCube(t), dest, ENVIOptions{AdditionalFields: "ok = 1\nbroken"})

	var fe *HeaderFieldError
	if !errors.Is(err, ErrInvalidAdditionalHeaderField) || !errors.As(err, &fe) || fe.Line != 2 {
		t.Fatalf("expected HeaderFieldError on line 2, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected no files, found %d", len(entries))
	}
}

func TestExportWavelengthMismatch(t *testing.T) {
	c := testCube(t, WithWavelengths([]float64{1, 2, 3, 4}))
	dir := t.TempDir()
	for _, f := range []Format{ENVI, NPY, MAT, TIFF} {
		dest := filepath.Join(dir, "cube"+f.Extension())
		if err := Export(c, f, dest, Options{}); !errors.Is(err, ErrInvalidData) {
			t.Errorf("%v: expected ErrInvalidData, got %v", f, err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected no files, found %d", len(entries))
	}
}

func TestExportNPYRescale(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "cube.npy")
	if err := ExportNPY(testCube(t), dest, NPYOptions{Rescale: true}); err != nil {
		t.Fatalf("ExportNPY failed: %v", err)
	}
	f, err := os.Open(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	h, err := npy.ReadHeader(f)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.Descr != "<u2" || h.FortranOrder || len(h.Shape) != 3 || h.Shape[2] != 3 {
		t.Errorf("unexpected header %+v", h)
	}
	info, _ := f.Stat()
	if got := info.Size() - h.DataOffset; got != 60*2 {
		t.Errorf("payload = %d bytes, expected 120", got)
	}
}

func TestExportMAT(t *testing.T) {
	c, err := NewCube([3]int{2, 3, 2}, make([]int32, 12), RowMajor, WithWavelengths([]float64{500, 600}))
	if err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(t.TempDir(), "cube.mat")

	if err := ExportMAT(c, dest, MATOptions{}); !errors.Is(err, ErrUnsupportedDataType) {
		t.Fatalf("expected ErrUnsupportedDataType for int32, got %v", err)
	}

	opts := MATOptions{
		Rescale:  true,
		Mask:     []uint8{1, 0, 1, 0, 1, 0},
		Metadata: map[string]interface{}{"sensor": "test"},
		Compress: true,
	}
	if err := ExportMAT(c, dest, opts); err != nil {
		t.Fatalf("ExportMAT failed: %v", err)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	info, _ := f.Stat()
	_, elems, err := mat5.Scan(f, info.Size())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	var names []string
	for _, e := range elems {
		names = append(names, e.Name)
	}
	if strings.Join(names, ",") != "cube,mask,wavelengths,metadata" {
		t.Fatalf("variables = %v", names)
	}
	meta, err := elems[3].ReadData()
	if err != nil {
		t.Fatal(err)
	}
	if string(meta) != `{"sensor":"test"}` {
		t.Errorf("metadata = %s", meta)
	}
}

func TestExportTIFF(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "cube.tif")
	if err := ExportTIFF(testCube(t), dest, TIFFOptions{Layout: Contiguous}); err != nil {
		t.Fatalf("ExportTIFF failed: %v", err)
	}
	f, err := os.Open(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dirs, err := tiff.ReadDirectories(f)
	if err != nil {
		t.Fatalf("ReadDirectories failed: %v", err)
	}
	if len(dirs) != 1 || dirs[0].SamplesPerPixel != 3 || dirs[0].BitsPerSample[0] != 16 {
		t.Errorf("unexpected directories %+v", dirs)
	}
}

func TestExportWriteFailure(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "cube.npy")
	err := Export(testCube(t), NPY, dest, Options{})

	var we *WriteError
	if !errors.Is(err, ErrWriteFailure) || !errors.As(err, &we) || we.Path != dest {
		t.Errorf("expected WriteError for %s, got %v", dest, err)
	}
}

func TestOutputPathsAndRemove(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "scene.dat")
	opts := Options{WavelengthsFile: true}

	paths := OutputPaths(ENVI, dest, opts)
	want := []string{dest, filepath.Join(dir, "scene.hdr"), filepath.Join(dir, "scene_wavelengths.txt")}
	if strings.Join(paths, "|") != strings.Join(want, "|") {
		t.Fatalf("OutputPaths = %v, expected %v", paths, want)
	}
	if got := OutputPaths(NPY, filepath.Join(dir, "scene.npy"), Options{}); len(got) != 1 {
		t.Errorf("npy outputs = %v", got)
	}

	c := testCube(t, WithWavelengths([]float64{400.25, 500, 600}))
	if err := Export(c, ENVI, dest, opts); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	text, err := os.ReadFile(want[2])
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "400.25\n500\n600\n" {
		t.Errorf("wavelengths file = %q", text)
	}

	if err := RemoveOutputs(ENVI, dest, opts); err != nil {
		t.Fatalf("RemoveOutputs failed: %v", err)
	}
	for _, p := range want {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s still exists", p)
		}
	}
	// Removing again is not an error.
	if err := RemoveOutputs(ENVI, dest, opts); err != nil {
		t.Errorf("second RemoveOutputs failed: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for s, want := range map[string]Format{"ENVI": ENVI, "npy": NPY, "matlab": MAT, "tif": TIFF} {
		if got, err := ParseFormat(s); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseFormat("png"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	c := testCube(t, WithWavelengths([]float64{1, 2, 3}))
	var jobs []Job
	for _, f := range []Format{ENVI, NPY, MAT, TIFF} {
		jobs = append(jobs, Job{Format: f, Dest: filepath.Join(dir, "out"+f.Extension())})
	}

	if err := ExportAll(context.Background(), c, jobs, Options{WavelengthsFile: true}, 2); err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	for _, name := range []string{"out.dat", "out.hdr", "out.npy", "out.mat", "out.tif", "out_wavelengths.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestExportAllCancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{{Format: NPY, Dest: filepath.Join(dir, "a.npy")}}
	if err := ExportAll(ctx, testCube(t), jobs, Options{}, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.npy")); !os.IsNotExist(err) {
		t.Error("cancelled job wrote its output")
	}
}

func TestExportAllReportsFailure(t *testing.T) {
	dir := t.TempDir()
	jobs := []Job{
		{Format: NPY, Dest: filepath.Join(dir, "ok.npy")},
		{Format: ENVI, Dest: filepath.Join(dir, "bad.dat")},
	}
	opts := Options{ENVI: ENVIOptions{AdditionalFields: "=x"}}
	err := ExportAll(context.Background(), testCube(t), jobs, opts, 0)
	if !errors.Is(err, ErrInvalidAdditionalHeaderField) {
		t.Errorf("expected ErrInvalidAdditionalHeaderField, got %v", err)
	}
}
