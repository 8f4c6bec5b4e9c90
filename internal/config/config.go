// Package config loads and saves exporter settings from YAML or TOML files.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-hsiexport/internal/logging"
)

// Config holds the settings of the hsiexport tool.
type Config struct {
	Logging logging.Config `yaml:"logging" toml:"logging"`

	Export struct {
		// Formats lists the formats written per run: envi, npy, mat, tiff.
		Formats []string `yaml:"formats" toml:"formats"`

		// Layout is the axis layout of the input cube, e.g. auto or hwc.
		Layout string `yaml:"layout" toml:"layout"`

		// Workers bounds the number of formats exported concurrently.
		Workers int `yaml:"workers" toml:"workers"`

		// WavelengthsFile writes a companion text file with one wavelength per line.
		WavelengthsFile bool `yaml:"wavelengthsFile" toml:"wavelengths_file"`
	} `yaml:"export" toml:"export"`

	ENVI struct {
		Interleave string `yaml:"interleave" toml:"interleave"`

		// DataType is the destination type; empty picks one from the cube.
		DataType  string `yaml:"dataType" toml:"data_type"`
		ByteOrder string `yaml:"byteOrder" toml:"byte_order"`

		// DefaultBands is off, preset or custom.
		DefaultBands    string `yaml:"defaultBands" toml:"default_bands"`
		CustomBands     [3]int `yaml:"customBands" toml:"custom_bands"`
		Description     string `yaml:"description" toml:"description"`
		SensorType      string `yaml:"sensorType" toml:"sensor_type"`
		WavelengthUnits string `yaml:"wavelengthUnits" toml:"wavelength_units"`

		// AdditionalFields is appended to the header after validation.
		AdditionalFields string `yaml:"additionalFields" toml:"additional_fields"`

		// Extension of the binary file, e.g. ".dat" or ".img".
		Extension string `yaml:"extension" toml:"extension"`
	} `yaml:"envi" toml:"envi"`

	NPY struct {
		Rescale bool `yaml:"rescale" toml:"rescale"`
	} `yaml:"npy" toml:"npy"`

	MAT struct {
		Variable string `yaml:"variable" toml:"variable"`
		Rescale  bool   `yaml:"rescale" toml:"rescale"`
		Compress bool   `yaml:"compress" toml:"compress"`
	} `yaml:"mat" toml:"mat"`

	TIFF struct {
		// Layout is planar (one directory per channel) or contiguous.
		Layout string `yaml:"layout" toml:"layout"`
	} `yaml:"tiff" toml:"tiff"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Logging.Level = "info"
	cfg.Logging.MaxSize = 100
	cfg.Logging.MaxAge = 30

	cfg.Export.Formats = []string{"envi"}
	cfg.Export.Layout = "auto"
	cfg.Export.Workers = runtime.NumCPU()

	cfg.ENVI.Interleave = "bsq"
	cfg.ENVI.ByteOrder = "little"
	cfg.ENVI.DefaultBands = "off"
	cfg.ENVI.WavelengthUnits = "Nanometers"
	cfg.ENVI.Extension = ".dat"

	cfg.MAT.Variable = "cube"

	cfg.TIFF.Layout = "planar"

	return cfg
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// LoadConfig loads configuration from a YAML or TOML file, chosen by the
// file extension. If the file doesn't exist, it returns the default
// configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	if isTOML(configPath) {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("could not decode TOML config: %w", err)
		}
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.convertPathsToAbsolute(configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves the configuration as YAML, or TOML for a .toml path.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	var data []byte
	if isTOML(configPath) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("error encoding TOML config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// convertPathsToAbsolute resolves relative paths against the directory of
// the config file.
func (c *Config) convertPathsToAbsolute(configPath string) error {
	if c.Logging.Logfile == "" || filepath.IsAbs(c.Logging.Logfile) {
		return nil
	}
	abs, err := filepath.Abs(filepath.Join(filepath.Dir(configPath), c.Logging.Logfile))
	if err != nil {
		return fmt.Errorf("error converting logfile to absolute path: %w", err)
	}
	c.Logging.Logfile = abs
	return nil
}
