package main

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-hsiexport/hsi"
	"github.com/robert-malhotra/go-hsiexport/internal/config"
	"github.com/robert-malhotra/go-hsiexport/internal/dtype"
	"github.com/robert-malhotra/go-hsiexport/internal/envi"
	"github.com/robert-malhotra/go-hsiexport/internal/layout"
	"github.com/robert-malhotra/go-hsiexport/internal/tiff"
)

// exportOptions translates the configuration into export options.
func exportOptions(cfg *config.Config) (hsi.Options, error) {
	var opts hsi.Options

	l, err := layout.ParseLayout(cfg.Export.Layout)
	if err != nil {
		return opts, err
	}
	axes := hsi.Axes{Layout: l}
	opts.WavelengthsFile = cfg.Export.WavelengthsFile

	e := &opts.ENVI
	e.Axes = axes
	if e.Interleave, err = layout.ParseInterleave(cfg.ENVI.Interleave); err != nil {
		return opts, err
	}
	if cfg.ENVI.DataType != "" {
		if e.DataType, err = dtype.ParseDataType(cfg.ENVI.DataType); err != nil {
			return opts, err
		}
	}
	if e.ByteOrder, err = envi.ParseByteOrder(cfg.ENVI.ByteOrder); err != nil {
		return opts, err
	}
	if e.DefaultBands.Mode, err = envi.ParseBandsMode(cfg.ENVI.DefaultBands); err != nil {
		return opts, err
	}
	e.DefaultBands.Custom = cfg.ENVI.CustomBands
	e.Description = cfg.ENVI.Description
	e.SensorType = cfg.ENVI.SensorType
	e.WavelengthUnits = cfg.ENVI.WavelengthUnits
	e.AdditionalFields = cfg.ENVI.AdditionalFields

	opts.NPY = hsi.NPYOptions{Axes: axes, Rescale: cfg.NPY.Rescale}
	opts.MAT = hsi.MATOptions{
		Axes:     axes,
		Name:     cfg.MAT.Variable,
		Rescale:  cfg.MAT.Rescale,
		Compress: cfg.MAT.Compress,
	}

	opts.TIFF.Axes = axes
	if opts.TIFF.Layout, err = tiff.ParseLayout(cfg.TIFF.Layout); err != nil {
		return opts, err
	}
	return opts, nil
}

// exportJobs returns one job per configured format, named base plus the
// format's extension.
func exportJobs(cfg *config.Config, base string) ([]hsi.Job, error) {
	var jobs []hsi.Job
	seen := make(map[hsi.Format]bool)
	for _, name := range cfg.Export.Formats {
		f, err := hsi.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true

		ext := f.Extension()
		if f == hsi.ENVI && cfg.ENVI.Extension != "" {
			ext = cfg.ENVI.Extension
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
		}
		jobs = append(jobs, hsi.Job{Format: f, Dest: base + ext})
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no output formats configured")
	}
	return jobs, nil
}
