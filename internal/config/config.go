// Package config holds the runtime knobs for a training run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/digits/internal/dataset"
	"github.com/born-ml/digits/internal/nn"
	"github.com/born-ml/digits/internal/trainer"
)

// Weight initialization schemes.
const (
	InitXavier   = "xavier"
	InitConstant = "constant"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config captures the runtime knobs for a training run.
type Config struct {
	DataDir      string  `yaml:"data_dir"`
	ImagesFile   string  `yaml:"images_file"`
	LabelsFile   string  `yaml:"labels_file"`
	MaxSamples   int     `yaml:"max_samples"`
	HiddenDim    int     `yaml:"hidden_dim"`
	LearningRate float32 `yaml:"learning_rate"`
	Epochs       int     `yaml:"epochs"`
	Seed         int64   `yaml:"seed"`
	Architecture string  `yaml:"architecture"`
	Init         string  `yaml:"init"`
	InitValue    float32 `yaml:"init_value"`
	LogEvery     int     `yaml:"log_every"`
	PlotPath     string  `yaml:"plot_path"`
	Synthetic    int     `yaml:"synthetic"`
	ValRatio     float32 `yaml:"val_ratio"`
}

// Overrides captures CLI supplied values. A nil field was not given on the
// command line and leaves the config untouched, so an explicit zero (such as
// -seed 0 or -val 0) still overrides the YAML value.
type Overrides struct {
	DataDir      *string
	MaxSamples   *int
	HiddenDim    *int
	LearningRate *float64
	Epochs       *int
	Seed         *int64
	Architecture *string
	Init         *string
	LogEvery     *int
	PlotPath     *string
	Synthetic    *int
	ValRatio     *float64
}

// Default returns the configuration used when no file is given:
// 784→100→10 hidden-softmax, η = 9e-4, 25 epochs over data/.
func Default() *Config {
	return &Config{
		DataDir:      "data",
		ImagesFile:   dataset.TrainImagesFile,
		LabelsFile:   dataset.TrainLabelsFile,
		HiddenDim:    trainer.DefaultHiddenDim,
		LearningRate: nn.DefaultLearningRate,
		Epochs:       trainer.DefaultEpochs,
		Seed:         nn.DefaultSeed,
		Architecture: string(trainer.HiddenSoftmax),
		Init:         InitXavier,
		InitValue:    0.01,
	}
}

// Load reads a YAML file over Default. The result is not validated: callers
// apply CLI overrides first and then call Validate.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over Default. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c with every non-nil override.
func (c *Config) ApplyOverrides(o Overrides) {
	set(&c.DataDir, o.DataDir)
	set(&c.MaxSamples, o.MaxSamples)
	set(&c.HiddenDim, o.HiddenDim)
	if o.LearningRate != nil {
		c.LearningRate = float32(*o.LearningRate)
	}
	set(&c.Epochs, o.Epochs)
	set(&c.Seed, o.Seed)
	set(&c.Architecture, o.Architecture)
	set(&c.Init, o.Init)
	set(&c.LogEvery, o.LogEvery)
	set(&c.PlotPath, o.PlotPath)
	set(&c.Synthetic, o.Synthetic)
	if o.ValRatio != nil {
		c.ValRatio = float32(*o.ValRatio)
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalid)
	}
	if c.Synthetic <= 0 && c.DataDir == "" && (c.ImagesFile == "" || c.LabelsFile == "") {
		return fmt.Errorf("%w: data_dir or both images_file and labels_file must be set", ErrInvalid)
	}
	if c.HiddenDim <= 0 {
		return fmt.Errorf("%w: hidden_dim must be > 0 (got %d)", ErrInvalid, c.HiddenDim)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("%w: learning_rate must be > 0 (got %g)", ErrInvalid, c.LearningRate)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("%w: epochs must be > 0 (got %d)", ErrInvalid, c.Epochs)
	}
	if c.MaxSamples < 0 {
		return fmt.Errorf("%w: max_samples must be >= 0 (got %d)", ErrInvalid, c.MaxSamples)
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("%w: log_every must be >= 0 (got %d)", ErrInvalid, c.LogEvery)
	}
	if c.ValRatio < 0 || c.ValRatio >= 1 {
		return fmt.Errorf("%w: val_ratio must be in [0, 1) (got %g)", ErrInvalid, c.ValRatio)
	}
	switch trainer.Architecture(c.Architecture) {
	case trainer.HiddenSoftmax, trainer.OutputSoftmax:
	default:
		return fmt.Errorf("%w: unknown architecture %q", ErrInvalid, c.Architecture)
	}
	switch c.Init {
	case InitXavier, InitConstant:
	default:
		return fmt.Errorf("%w: unknown init %q", ErrInvalid, c.Init)
	}
	return nil
}

// ImagesPath returns the images file, joined with DataDir when relative.
func (c *Config) ImagesPath() string {
	return c.resolve(c.ImagesFile)
}

// LabelsPath returns the labels file, joined with DataDir when relative.
func (c *Config) LabelsPath() string {
	return c.resolve(c.LabelsFile)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Initializer returns the weight initializer selected by Init, or nil for
// the Xavier default.
func (c *Config) Initializer() nn.Initializer {
	if c.Init == InitConstant {
		return nn.Constant(c.InitValue)
	}
	return nil
}

// RunConfig converts c into the trainer's run configuration. Input and
// output dimensions are taken from the dataset at run time.
func (c *Config) RunConfig() trainer.RunConfig {
	return trainer.RunConfig{
		Network: trainer.NetworkConfig{
			HiddenDim:    c.HiddenDim,
			LearningRate: c.LearningRate,
			Seed:         c.Seed,
			Architecture: trainer.Architecture(c.Architecture),
			Init:         c.Initializer(),
		},
		Epochs:   c.Epochs,
		LogEvery: c.LogEvery,
	}
}
