package config

import (
	"fmt"

	"github.com/ajroetker/go-isp/isp"
)

// Validate checks the configuration and fills defaults for omitted fields.
func Validate(cfg *Config) error {
	// Sensor
	if cfg.SensorInfo.Width <= 0 || cfg.SensorInfo.Height <= 0 {
		return fmt.Errorf("sensor_info.width and sensor_info.height must be > 0, got %dx%d",
			cfg.SensorInfo.Width, cfg.SensorInfo.Height)
	}
	if cfg.SensorInfo.Width%2 != 0 || cfg.SensorInfo.Height%2 != 0 {
		return fmt.Errorf("sensor_info: %dx%d is not a whole number of bayer blocks",
			cfg.SensorInfo.Width, cfg.SensorInfo.Height)
	}
	if cfg.SensorInfo.BitDepth == 0 {
		cfg.SensorInfo.BitDepth = 10
	}
	if cfg.SensorInfo.BayerPattern == "" {
		return fmt.Errorf("sensor_info.bayer_pattern is required")
	}
	if _, err := isp.ParsePattern(cfg.SensorInfo.BayerPattern); err != nil {
		return fmt.Errorf("sensor_info.bayer_pattern: %w", err)
	}

	// Color matrix
	if err := validateMatrix(&cfg.ColorMatrix); err != nil {
		return fmt.Errorf("color_correction_matrix: %w", err)
	}

	// Pipeline
	p := &cfg.Pipeline
	if p.Backend == "" {
		p.Backend = "vector"
	}
	if p.FracBits == 0 {
		p.FracBits = isp.DefaultFormat().FracBits
	}
	if p.GainIntBits == 0 {
		p.GainIntBits = isp.DefaultFormat().GainIntBits
	}
	if p.GainFracBits == 0 {
		p.GainFracBits = isp.DefaultFormat().GainFracBits
	}
	if p.Iterations <= 0 {
		p.Iterations = 1
	}
	if p.Workers < 0 {
		return fmt.Errorf("pipeline.workers must be >= 0, got %d", p.Workers)
	}
	if err := cfg.Format().Validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	return nil
}

func validateMatrix(cm *ColorMatrix) error {
	rows := map[string][]int32{
		"corrected_red":   cm.CorrectedRed,
		"corrected_green": cm.CorrectedGreen,
		"corrected_blue":  cm.CorrectedBlue,
	}
	for name, row := range rows {
		if len(row) != 3 {
			return fmt.Errorf("%s must have 3 coefficients, got %d", name, len(row))
		}
	}
	if cm.Scale == 0 {
		cm.Scale = 1024
	}
	if cm.Scale < 0 || cm.Scale&(cm.Scale-1) != 0 {
		return fmt.Errorf("scale %d: %w", cm.Scale, isp.ErrMatrixScale)
	}
	return nil
}
