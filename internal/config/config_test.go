package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/digits/internal/trainer"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 100, cfg.HiddenDim)
	assert.InDelta(t, 9e-4, cfg.LearningRate, 1e-9)
	assert.Equal(t, 25, cfg.Epochs)
	assert.Equal(t, filepath.Join("data", "train-images-idx3-ubyte"), cfg.ImagesPath())
	assert.Equal(t, filepath.Join("data", "train-labels-idx1-ubyte"), cfg.LabelsPath())
	assert.Nil(t, cfg.Initializer())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `
data_dir: /tmp/mnist
hidden_dim: 32
learning_rate: 0.01
epochs: 3
architecture: output-softmax
init: constant
init_value: 0.5
val_ratio: 0.1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/mnist", cfg.DataDir)
	assert.Equal(t, 32, cfg.HiddenDim)
	assert.InDelta(t, 0.01, cfg.LearningRate, 1e-9)
	assert.Equal(t, 3, cfg.Epochs)
	assert.Equal(t, "output-softmax", cfg.Architecture)
	assert.InDelta(t, 0.1, cfg.ValRatio, 1e-7)
	// Unset keys keep their defaults.
	assert.Equal(t, int64(42), cfg.Seed)

	initFn := cfg.Initializer()
	require.NotNil(t, initFn)
	assert.Equal(t, float32(0.5), initFn(2, 2, nil).At(1, 1))

	run := cfg.RunConfig()
	assert.Equal(t, trainer.OutputSoftmax, run.Network.Architecture)
	assert.Equal(t, 32, run.Network.HiddenDim)
	assert.Equal(t, 3, run.Epochs)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("batch_size: 32\n"), 0o600))
	_, err = Load(unknown)
	assert.Error(t, err)
}

// TestLoad_ValidatesAfterOverrides loads a YAML value that is only runnable
// once a CLI override replaces it.
func TestLoad_ValidatesAfterOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("epochs: 0\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg.ApplyOverrides(Overrides{Epochs: ptr(3)})
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Epochs)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func ptr[T any](v T) *T {
	return &v
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{
		HiddenDim:    ptr(64),
		LearningRate: ptr(0.02),
		Epochs:       ptr(5),
		Architecture: ptr("output-softmax"),
		Synthetic:    ptr(30),
		ValRatio:     ptr(0.2),
	})

	assert.Equal(t, 64, cfg.HiddenDim)
	assert.InDelta(t, 0.02, cfg.LearningRate, 1e-7)
	assert.Equal(t, 5, cfg.Epochs)
	assert.Equal(t, "output-softmax", cfg.Architecture)
	assert.Equal(t, 30, cfg.Synthetic)
	assert.InDelta(t, 0.2, cfg.ValRatio, 1e-7)

	// Unset fields leave the config untouched.
	before := *cfg
	cfg.ApplyOverrides(Overrides{})
	assert.Equal(t, before, *cfg)
}

func TestApplyOverrides_ExplicitZero(t *testing.T) {
	cfg, err := Parse(strings.NewReader("seed: 7\nval_ratio: 0.2\nmax_samples: 50\n"))
	require.NoError(t, err)

	cfg.ApplyOverrides(Overrides{
		Seed:       ptr(int64(0)),
		ValRatio:   ptr(0.0),
		MaxSamples: ptr(0),
	})

	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, float32(0), cfg.ValRatio)
	assert.Equal(t, 0, cfg.MaxSamples)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero hidden", func(c *Config) { c.HiddenDim = 0 }},
		{"negative lr", func(c *Config) { c.LearningRate = -1 }},
		{"zero epochs", func(c *Config) { c.Epochs = 0 }},
		{"negative max samples", func(c *Config) { c.MaxSamples = -1 }},
		{"val ratio one", func(c *Config) { c.ValRatio = 1 }},
		{"unknown architecture", func(c *Config) { c.Architecture = "cnn" }},
		{"unknown init", func(c *Config) { c.Init = "he" }},
		{"no data", func(c *Config) { c.DataDir = ""; c.ImagesFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mod(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}

func TestValidate_SyntheticNeedsNoData(t *testing.T) {
	cfg := Default()
	cfg.DataDir = ""
	cfg.ImagesFile = ""
	cfg.Synthetic = 10
	assert.NoError(t, cfg.Validate())
}

func TestResolve_AbsolutePath(t *testing.T) {
	cfg := Default()
	abs := filepath.Join(t.TempDir(), "images")
	cfg.ImagesFile = abs
	assert.Equal(t, abs, cfg.ImagesPath())
}
