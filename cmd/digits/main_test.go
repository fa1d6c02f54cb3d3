package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/digits/internal/config"
)

func TestRun_Synthetic(t *testing.T) {
	cfg := config.Default()
	cfg.Synthetic = 20
	cfg.Epochs = 2
	cfg.HiddenDim = 8
	cfg.ValRatio = 0.25
	cfg.PlotPath = filepath.Join(t.TempDir(), "loss.svg")
	require.NoError(t, cfg.Validate())

	var out, logs bytes.Buffer
	err := run(context.Background(), cfg, &out, log.New(&logs, "", 0))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Epoch: 1 | Loss: "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Epoch: 2 | Loss: "), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Accuracy: "), lines[2])

	assert.Contains(t, logs.String(), "run=")
	assert.Contains(t, logs.String(), "train=15 validation=5")

	_, err = os.Stat(cfg.PlotPath)
	assert.NoError(t, err)
}

func TestRun_MissingData(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	err := run(context.Background(), cfg, io.Discard, log.New(io.Discard, "", 0))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_Interrupted(t *testing.T) {
	cfg := config.Default()
	cfg.Synthetic = 10
	cfg.Epochs = 3
	cfg.HiddenDim = 4
	cfg.PlotPath = filepath.Join(t.TempDir(), "loss.svg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, logs bytes.Buffer
	err := run(ctx, cfg, &out, log.New(&logs, "", 0))
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "training interrupted after 0 of 3 epochs")
	assert.NotContains(t, out.String(), "Accuracy:")

	_, err = os.Stat(cfg.PlotPath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFlags(t *testing.T) {
	path, o, err := parseFlags([]string{"-config", "run.yaml", "-seed", "0", "-val", "0", "-epochs", "3"})
	require.NoError(t, err)

	assert.Equal(t, "run.yaml", path)
	require.NotNil(t, o.Seed)
	assert.Equal(t, int64(0), *o.Seed)
	require.NotNil(t, o.ValRatio)
	assert.Equal(t, 0.0, *o.ValRatio)
	require.NotNil(t, o.Epochs)
	assert.Equal(t, 3, *o.Epochs)

	assert.Nil(t, o.HiddenDim)
	assert.Nil(t, o.LearningRate)
	assert.Nil(t, o.DataDir)
}

func TestParseFlags_ExplicitZeroBeatsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\nval_ratio: 0.3\nepochs: 0\n"), 0o600))

	cfgPath, o, err := parseFlags([]string{"-config", path, "-seed", "0", "-val", "0", "-epochs", "2"})
	require.NoError(t, err)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.ApplyOverrides(o)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, float32(0), cfg.ValRatio)
	assert.Equal(t, 2, cfg.Epochs)
}

func TestParseFlags_Unknown(t *testing.T) {
	_, _, err := parseFlags([]string{"-batch", "32"})
	assert.Error(t, err)
}
