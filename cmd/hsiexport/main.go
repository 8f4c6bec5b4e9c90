// Command hsiexport converts a raw hyperspectral cube into ENVI, NumPy,
// MATLAB and TIFF files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robert-malhotra/go-hsiexport/hsi"
	"github.com/robert-malhotra/go-hsiexport/internal/config"
	"github.com/robert-malhotra/go-hsiexport/internal/logging"
)

func main() {
	configPath := flag.String("config", "hsiexport.yaml", "Configuration file (.yaml or .toml)")
	input := flag.String("in", "", "Raw cube file")
	dimsFlag := flag.String("dims", "", "Cube dimensions in storage order, e.g. 512,640,224")
	typeFlag := flag.String("type", "float32", "Sample type of the raw cube")
	orderFlag := flag.String("order", "c", "Storage order of the raw cube: c or fortran")
	endian := flag.String("endian", "little", "Byte order of the raw cube")
	wavelengths := flag.String("wavelengths", "", "Text file with one wavelength per line")
	output := flag.String("out", "cube", "Output path without extension")
	formats := flag.String("formats", "", "Comma-separated formats, overrides the config")
	layoutFlag := flag.String("layout", "", "Axis layout (auto, hwc, chw, ...), overrides the config")
	workers := flag.Int("workers", 0, "Concurrent exports, overrides the config")
	writeConfig := flag.Bool("write-config", false, "Write the effective configuration to -config and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *formats != "" {
		cfg.Export.Formats = strings.Split(*formats, ",")
	}
	if *layoutFlag != "" {
		cfg.Export.Layout = *layoutFlag
	}
	if *workers > 0 {
		cfg.Export.Workers = *workers
	}
	if *writeConfig {
		if err := config.SaveConfig(cfg, *configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", *configPath)
		return
	}

	if *input == "" || *dimsFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg.Logging.SetLogger()
	defer logging.Shutdown()

	if err := run(cfg, rawCube{
		Path:        *input,
		Dims:        *dimsFlag,
		Type:        *typeFlag,
		Order:       *orderFlag,
		Endian:      *endian,
		Wavelengths: *wavelengths,
	}, *output); err != nil {
		logging.Errorf("export failed: %v", err)
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, in rawCube, output string) error {
	start := time.Now()
	cube, err := in.Load()
	if err != nil {
		return err
	}
	logging.Infof("loaded %s: dims %v, %v, %v order", in.Path, cube.Dims(), cube.DataType(), cube.Order())

	opts, err := exportOptions(cfg)
	if err != nil {
		return err
	}
	jobs, err := exportJobs(cfg, output)
	if err != nil {
		return err
	}

	for _, j := range jobs {
		if err := hsi.RemoveOutputs(j.Format, j.Dest, opts); err != nil {
			return err
		}
	}
	if err := hsi.ExportAll(context.Background(), cube, jobs, opts, cfg.Export.Workers); err != nil {
		return err
	}

	for _, j := range jobs {
		fmt.Printf("%-5s %s\n", j.Format, j.Dest)
	}
	logging.Infof("exported %d formats in %s", len(jobs), time.Since(start))
	return nil
}
