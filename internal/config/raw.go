package config

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ajroetker/go-isp/hwy/contrib/image"
	"github.com/ajroetker/go-isp/isp"
)

// LoadRaw reads a width x height frame of little-endian uint16 samples.
func LoadRaw(path string, width, height int) (*isp.RawFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw frame: %w", err)
	}
	defer f.Close()

	return ReadRaw(bufio.NewReader(f), width, height)
}

// ReadRaw decodes a width x height frame of little-endian uint16 samples
// from r. Trailing data is ignored.
func ReadRaw(r io.Reader, width, height int) (*isp.RawFrame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raw frame size %dx%d", width, height)
	}
	samples := make([]uint16, width*height)
	if err := binary.Read(r, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("failed to read %dx%d raw frame: %w", width, height, err)
	}
	return image.FromSlice(samples, width, height), nil
}

// WriteRaw encodes the visible samples of frame as little-endian uint16.
func WriteRaw(w io.Writer, frame *isp.RawFrame) error {
	for y := range frame.Height() {
		if err := binary.Write(w, binary.LittleEndian, frame.RowSlice(y)); err != nil {
			return fmt.Errorf("failed to write raw frame: %w", err)
		}
	}
	return nil
}

// Load reads the dataset configuration and its raw frame.
func (d Dataset) Load() (*Config, *isp.RawFrame, error) {
	cfg, err := Load(d.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	raw, err := LoadRaw(d.RawPath, cfg.SensorInfo.Width, cfg.SensorInfo.Height)
	if err != nil {
		return nil, nil, err
	}
	return cfg, raw, nil
}
