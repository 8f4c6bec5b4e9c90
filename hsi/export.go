package hsi

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/robert-malhotra/go-hsiexport/internal/envi"
	"github.com/robert-malhotra/go-hsiexport/internal/logging"
)

// Format is an output format.
type Format uint8

const (
	ENVI Format = iota
	NPY
	MAT
	TIFF
)

var formatNames = [...]string{ENVI: "envi", NPY: "npy", MAT: "mat", TIFF: "tiff"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Extension returns the usual file extension of f.
func (f Format) Extension() string {
	switch f {
	case ENVI:
		return ".dat"
	case NPY:
		return ".npy"
	case MAT:
		return ".mat"
	default:
		return ".tif"
	}
}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "envi", "hdr":
		return ENVI, nil
	case "npy", "numpy":
		return NPY, nil
	case "mat", "matlab", "mat5":
		return MAT, nil
	case "tiff", "tif":
		return TIFF, nil
	}
	return ENVI, fmt.Errorf("unknown format %q", s)
}

// Options holds the settings of every format.
type Options struct {
	ENVI ENVIOptions
	NPY  NPYOptions
	MAT  MATOptions
	TIFF TIFFOptions

	// WavelengthsFile also writes WavelengthsPath(dest) when the cube has
	// wavelengths.
	WavelengthsFile bool
}

// Export writes c to dest in format f. Stale outputs must be removed by the
// caller first, see RemoveOutputs.
func Export(c *Cube, f Format, dest string, opts Options) error {
	var err error
	switch f {
	case ENVI:
		err = ExportENVI(c, dest, opts.ENVI)
	case NPY:
		err = ExportNPY(c, dest, opts.NPY)
	case MAT:
		err = ExportMAT(c, dest, opts.MAT)
	case TIFF:
		err = ExportTIFF(c, dest, opts.TIFF)
	default:
		return fmt.Errorf("unknown format %v", f)
	}
	if err != nil {
		return err
	}
	if opts.WavelengthsFile && c.wavelengths != nil {
		return WriteWavelengths(WavelengthsPath(dest), c.wavelengths)
	}
	return nil
}

// OutputPaths lists the files Export(c, f, dest, opts) may create.
func OutputPaths(f Format, dest string, opts Options) []string {
	paths := []string{dest}
	if f == ENVI {
		paths = append(paths, envi.HeaderPath(dest))
	}
	if opts.WavelengthsFile {
		paths = append(paths, WavelengthsPath(dest))
	}
	return paths
}

// RemoveOutputs deletes the files listed by OutputPaths. Missing files are
// not an error.
func RemoveOutputs(f Format, dest string, opts Options) error {
	for _, p := range OutputPaths(f, dest, opts) {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing stale output: %w", err)
		}
		logging.Debugf("removed stale output %s", p)
	}
	return nil
}
