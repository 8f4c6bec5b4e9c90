package hsi

import (
	"path/filepath"
	"strings"

	"github.com/robert-malhotra/go-hsiexport/internal/binary"
	"github.com/robert-malhotra/go-hsiexport/internal/envi"
)

// WavelengthsPath returns the companion wavelength file of an output at dest.
func WavelengthsPath(dest string) string {
	return strings.TrimSuffix(dest, filepath.Ext(dest)) + "_wavelengths.txt"
}

// WriteWavelengths writes one wavelength per line to path, in channel order.
func WriteWavelengths(path string, wavelengths []float64) error {
	_, err := binary.CreateFile(path, binary.DefaultConfig(), func(w *binary.Writer) error {
		for _, v := range wavelengths {
			w.WriteString(envi.FormatWavelength(v))
			w.WriteString("\n")
		}
		return w.Err()
	})
	return err
}
