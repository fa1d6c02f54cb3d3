package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float32{10, 8, 6, 7, 9})
	require.NoError(t, err)

	assert.Equal(t, 5, s.Epochs)
	assert.Equal(t, 10.0, s.First)
	assert.Equal(t, 9.0, s.Last)
	assert.Equal(t, 6.0, s.Best)
	assert.Equal(t, 3, s.BestEpoch)
	assert.InDelta(t, 8.0, s.Mean, 1e-9)
	assert.InDelta(t, 1.0, s.Improvement(), 1e-9)
	assert.Equal(t, "epochs=5 first=10.0000 last=9.0000 best=6.0000@3 mean=8.0000", s.String())
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestWriteLossPlotTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLossPlotTo(&buf, "svg", []float32{3, 2, 1.5}))
	assert.Contains(t, buf.String(), "<svg")

	err := WriteLossPlotTo(&buf, "svg", nil)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestWriteLossPlot(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"loss.svg", "loss.png"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteLossPlot(path, []float32{115.1, 114.2, 113.0}))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestWriteLossPlot_UnknownFormat(t *testing.T) {
	err := WriteLossPlot(filepath.Join(t.TempDir(), "loss.unknown"), []float32{1})
	assert.Error(t, err)
}
