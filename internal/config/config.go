// Package config loads sensor datasets: a YAML description of the sensor,
// its color matrix and pipeline settings, plus raw frames stored as
// little-endian 16-bit samples.
//
// A dataset is a pair of files sharing a stem:
//
//	Indoor1_2592x1536_10bit_GRBG.raw
//	Indoor1_2592x1536_10bit_GRBG-configs.yml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-isp/isp"
)

// Config is the complete dataset configuration.
type Config struct {
	SensorInfo  SensorInfo     `yaml:"sensor_info"`
	ColorMatrix ColorMatrix    `yaml:"color_correction_matrix"`
	Pipeline    PipelineConfig `yaml:"pipeline"`
}

// SensorInfo describes the raw frames.
type SensorInfo struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	BitDepth     int    `yaml:"bit_depth"`     // default: 10
	BayerPattern string `yaml:"bayer_pattern"` // grbg, rggb, bggr, gbrg
}

// ColorMatrix holds the integer CCM coefficients per corrected output
// channel.
type ColorMatrix struct {
	CorrectedRed   []int32 `yaml:"corrected_red"`
	CorrectedGreen []int32 `yaml:"corrected_green"`
	CorrectedBlue  []int32 `yaml:"corrected_blue"`
	Scale          int     `yaml:"scale"` // default: 1024
}

// PipelineConfig selects and sizes the processing backend.
type PipelineConfig struct {
	Backend      string `yaml:"backend"`        // default: vector
	Workers      int    `yaml:"workers"`        // parallel backend only; 0 = GOMAXPROCS
	FracBits     int    `yaml:"frac_bits"`      // default: 6
	GainIntBits  int    `yaml:"gain_int_bits"`  // default: 6
	GainFracBits int    `yaml:"gain_frac_bits"` // default: 10
	Iterations   int    `yaml:"iterations"`     // default: 1
}

// Load reads, parses and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates YAML configuration data, filling defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Pattern returns the parsed Bayer pattern.
func (c *Config) Pattern() (isp.Pattern, error) {
	return isp.ParsePattern(c.SensorInfo.BayerPattern)
}

// Format returns the pipeline sample format.
func (c *Config) Format() isp.Format {
	return isp.Format{
		SampleBits:   c.SensorInfo.BitDepth,
		FracBits:     c.Pipeline.FracBits,
		GainIntBits:  c.Pipeline.GainIntBits,
		GainFracBits: c.Pipeline.GainFracBits,
	}
}

// Matrix returns the color correction matrix.
func (c *Config) Matrix() (isp.Matrix, error) {
	row := func(v []int32) [3]int32 {
		return [3]int32{v[0], v[1], v[2]}
	}
	cm := c.ColorMatrix
	return isp.NewMatrix(row(cm.CorrectedRed), row(cm.CorrectedGreen), row(cm.CorrectedBlue), cm.Scale)
}

// ConfigPath returns the configuration file paired with a raw frame path.
func ConfigPath(rawPath string) string {
	stem := strings.TrimSuffix(rawPath, filepath.Ext(rawPath))
	return stem + "-configs.yml"
}

// Dataset is a raw frame file with its configuration.
type Dataset struct {
	Name       string
	RawPath    string
	ConfigPath string
}

// FindDatasets lists the *.raw files in dir that have a paired configuration.
func FindDatasets(dir string) ([]Dataset, error) {
	raws, err := filepath.Glob(filepath.Join(dir, "*.raw"))
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}

	var out []Dataset
	for _, raw := range raws {
		cfg := ConfigPath(raw)
		if _, err := os.Stat(cfg); err != nil {
			continue
		}
		out = append(out, Dataset{
			Name:       strings.TrimSuffix(filepath.Base(raw), ".raw"),
			RawPath:    raw,
			ConfigPath: cfg,
		})
	}
	return out, nil
}
