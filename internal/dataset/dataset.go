// Package dataset loads MNIST-style IDX files into matrices and produces
// (input, one-hot target) training pairs.
package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/born-ml/digits/internal/matrix"
)

// Default MNIST file names, relative to the data directory.
const (
	TrainImagesFile = "train-images-idx3-ubyte"
	TrainLabelsFile = "train-labels-idx1-ubyte"
)

// NumDigits is the number of MNIST classes.
const NumDigits = 10

// Dataset holds images as an N×F matrix and one label per row.
type Dataset struct {
	Images     *matrix.Matrix // [num_samples, features], values in [0, 1]
	Labels     []float32      // [num_samples], class indices
	NumClasses int            // Width of the one-hot targets
}

// New pairs images with labels, checking that the counts agree.
func New(images *matrix.Matrix, labels []float32, numClasses int) (*Dataset, error) {
	if images.Rows() != len(labels) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", images.Rows(), len(labels))
	}
	if numClasses <= 0 {
		return nil, fmt.Errorf("numClasses must be > 0 (got %d)", numClasses)
	}
	return &Dataset{Images: images, Labels: labels, NumClasses: numClasses}, nil
}

// Load reads the training images and labels from dataDir.
//
// Parameters:
//   - dataDir: Directory containing train-images-idx3-ubyte and train-labels-idx1-ubyte
//     (either may be gzipped with a .gz suffix)
//   - maxSamples: Maximum number of samples to keep (0 = all)
func Load(dataDir string, maxSamples int) (*Dataset, error) {
	return LoadFiles(
		filepath.Join(dataDir, TrainImagesFile),
		filepath.Join(dataDir, TrainLabelsFile),
		maxSamples,
	)
}

// LoadFiles reads an explicit image/label file pair.
func LoadFiles(imagesPath, labelsPath string, maxSamples int) (*Dataset, error) {
	images, err := LoadImages(imagesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	labels, err := LoadLabels(labelsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	ds, err := New(images, labels, NumDigits)
	if err != nil {
		return nil, err
	}
	return ds.Limit(maxSamples), nil
}

// NumSamples returns the number of rows.
func (d *Dataset) NumSamples() int {
	return len(d.Labels)
}

// NumFeatures returns the width of each input row.
func (d *Dataset) NumFeatures() int {
	return d.Images.Cols()
}

// Sample returns row i as a 1×F input and its 1×NumClasses one-hot target.
func (d *Dataset) Sample(i int) (x, y *matrix.Matrix) {
	return d.Images.Row(i), OneHot(d.Labels[i], d.NumClasses)
}

// Targets returns the one-hot encoding of every label.
func (d *Dataset) Targets() []*matrix.Matrix {
	return OneHotAll(d.Labels, d.NumClasses)
}

// Limit returns the first n samples (n <= 0 or n >= NumSamples returns d).
func (d *Dataset) Limit(n int) *Dataset {
	if n <= 0 || n >= d.NumSamples() {
		return d
	}
	return &Dataset{
		Images:     d.Images.SliceRows(0, n),
		Labels:     d.Labels[:n],
		NumClasses: d.NumClasses,
	}
}

// Split splits the dataset into train and validation sets, keeping order.
//
// Parameters:
//   - validationRatio: Fraction of data to use for validation (e.g., 0.2 for 20%)
//
// Returns trainData, validationData. validationData is nil when the ratio
// leaves no rows for it.
func (d *Dataset) Split(validationRatio float32) (*Dataset, *Dataset) {
	numSamples := d.NumSamples()
	splitIdx := int(float32(numSamples) * (1.0 - validationRatio))
	if validationRatio <= 0 || splitIdx >= numSamples {
		return d, nil
	}
	if splitIdx <= 0 {
		splitIdx = 1
	}

	return &Dataset{
			Images:     d.Images.SliceRows(0, splitIdx),
			Labels:     d.Labels[:splitIdx],
			NumClasses: d.NumClasses,
		}, &Dataset{
			Images:     d.Images.SliceRows(splitIdx, numSamples),
			Labels:     d.Labels[splitIdx:],
			NumClasses: d.NumClasses,
		}
}
