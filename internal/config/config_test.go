package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-isp/hwy/contrib/image"
	"github.com/ajroetker/go-isp/isp"
)

const sampleYAML = `
platform:
  filename: Indoor1_2592x1536_10bit_GRBG.raw
sensor_info:
  bayer_pattern: grbg
  range: 1023
  bit_depth: 10
  width: 2592
  height: 1536
color_correction_matrix:
  is_enable: true
  corrected_red: [1660, -527, -109]
  corrected_green: [-194, 1505, -287]
  corrected_blue: [-34, -458, 1516]
`

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 2592, cfg.SensorInfo.Width)
	assert.Equal(t, 1536, cfg.SensorInfo.Height)
	assert.Equal(t, 10, cfg.SensorInfo.BitDepth)
	assert.Equal(t, 1024, cfg.ColorMatrix.Scale)
	assert.Equal(t, "vector", cfg.Pipeline.Backend)
	assert.Equal(t, 1, cfg.Pipeline.Iterations)
	assert.Equal(t, isp.DefaultFormat(), cfg.Format())

	p, err := cfg.Pattern()
	require.NoError(t, err)
	assert.Equal(t, isp.GRBG, p)

	m, err := cfg.Matrix()
	require.NoError(t, err)
	assert.Equal(t, uint(10), m.ScaleBits)
	assert.Equal(t, [3]int32{-194, 1505, -287}, m.Rows[1])
}

func TestParseExplicitPipeline(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML + `
pipeline:
  backend: parallel
  workers: 4
  frac_bits: 4
  gain_frac_bits: 12
  iterations: 20
`))
	require.NoError(t, err)
	assert.Equal(t, "parallel", cfg.Pipeline.Backend)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, 20, cfg.Pipeline.Iterations)
	assert.Equal(t, isp.Format{SampleBits: 10, FracBits: 4, GainIntBits: 6, GainFracBits: 12}, cfg.Format())
}

func TestParseErrors(t *testing.T) {
	base := func(sensor, matrix string) string {
		return "sensor_info:\n" + sensor + "color_correction_matrix:\n" + matrix
	}
	goodSensor := "  width: 8\n  height: 8\n  bayer_pattern: grbg\n"
	goodMatrix := "  corrected_red: [1024, 0, 0]\n  corrected_green: [0, 1024, 0]\n  corrected_blue: [0, 0, 1024]\n"

	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"not yaml", "sensor_info: [", nil},
		{"missing size", base("  bayer_pattern: grbg\n", goodMatrix), nil},
		{"odd size", base("  width: 7\n  height: 8\n  bayer_pattern: grbg\n", goodMatrix), nil},
		{"missing pattern", base("  width: 8\n  height: 8\n", goodMatrix), nil},
		{"unknown pattern", base("  width: 8\n  height: 8\n  bayer_pattern: rgbw\n", goodMatrix), isp.ErrUnsupportedPattern},
		{"short matrix row", base(goodSensor, "  corrected_red: [1024, 0]\n  corrected_green: [0, 1024, 0]\n  corrected_blue: [0, 0, 1024]\n"), nil},
		{"bad scale", base(goodSensor, goodMatrix+"  scale: 1000\n"), isp.ErrMatrixScale},
		{"wide samples", base("  width: 8\n  height: 8\n  bit_depth: 20\n  bayer_pattern: grbg\n", goodMatrix), isp.ErrFormat},
		{"negative workers", base(goodSensor, goodMatrix) + "pipeline:\n  workers: -1\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRawRoundTrip(t *testing.T) {
	frame := image.NewImage[uint16](6, 4)
	for y := range 4 {
		for x := range 6 {
			frame.Set(x, y, uint16(y*100+x))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, frame))
	assert.Equal(t, 6*4*2, buf.Len())
	assert.Equal(t, []byte{0, 0, 1, 0}, buf.Bytes()[:4], "little-endian samples")

	got, err := ReadRaw(&buf, 6, 4)
	require.NoError(t, err)
	for y := range 4 {
		assert.Equal(t, frame.RowSlice(y), got.RowSlice(y))
	}
}

func TestReadRawShort(t *testing.T) {
	_, err := ReadRaw(bytes.NewReader(make([]byte, 10)), 4, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	_, err = ReadRaw(bytes.NewReader(nil), 0, 4)
	assert.Error(t, err)
}

func TestFindDatasets(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	frame := image.NewImage[uint16](8, 8)
	frame.Fill(512)
	var raw bytes.Buffer
	require.NoError(t, WriteRaw(&raw, frame))

	cfg := "sensor_info:\n  width: 8\n  height: 8\n  bayer_pattern: GRBG\n" +
		"color_correction_matrix:\n  corrected_red: [1024, 0, 0]\n  corrected_green: [0, 1024, 0]\n  corrected_blue: [0, 0, 1024]\n"

	write("Indoor1_8x8_10bit_GRBG.raw", raw.Bytes())
	write("Indoor1_8x8_10bit_GRBG-configs.yml", []byte(cfg))
	write("orphan.raw", raw.Bytes())

	datasets, err := FindDatasets(dir)
	require.NoError(t, err)
	require.Len(t, datasets, 1)
	assert.Equal(t, "Indoor1_8x8_10bit_GRBG", datasets[0].Name)
	assert.Equal(t, ConfigPath(datasets[0].RawPath), datasets[0].ConfigPath)

	c, f, err := datasets[0].Load()
	require.NoError(t, err)
	assert.Equal(t, 8, c.SensorInfo.Width)
	assert.Equal(t, uint16(512), f.At(7, 7))
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "data/a-configs.yml", ConfigPath("data/a.raw"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadRaw(filepath.Join(t.TempDir(), "missing.raw"), 4, 4)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
