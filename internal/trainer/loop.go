package trainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/born-ml/digits/internal/dataset"
)

// DefaultEpochs is the number of passes over the training rows.
const DefaultEpochs = 25

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Network NetworkConfig
	Epochs  int

	// LogEvery logs training accuracy every N epochs; 0 disables it.
	LogEvery int

	// Validation is evaluated after training when non-nil. Otherwise the
	// final accuracy is measured on the training rows.
	Validation *dataset.Dataset

	// Out receives the "Epoch: <n> | Loss: <f>" lines (default os.Stdout).
	Out io.Writer

	// Logger receives progress messages (default log.Default()).
	Logger *log.Logger
}

// Result summarizes a training run.
type Result struct {
	// Losses holds the summed loss of every epoch in order.
	Losses []float32

	// Accuracy is measured on Validation if present, else on the
	// training rows.
	Accuracy float32

	// TrainAccuracy is the accuracy on the training rows after the last
	// epoch.
	TrainAccuracy float32

	Elapsed time.Duration
	Network *Network
}

// TrainEpoch runs Step on every row of ds in stored order and returns the
// summed loss. ctx is checked before each sample.
func (n *Network) TrainEpoch(ctx context.Context, ds *dataset.Dataset) (float32, error) {
	var total float32
	for i := 0; i < ds.NumSamples(); i++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		x, y := ds.Sample(i)
		total += n.Step(x, y)
	}
	return total, nil
}

// Evaluate returns the fraction of rows whose predicted class matches the
// target's hot index.
func (n *Network) Evaluate(ds *dataset.Dataset) float32 {
	if ds.NumSamples() == 0 {
		return 0
	}
	corrects := 0
	for i := 0; i < ds.NumSamples(); i++ {
		x, y := ds.Sample(i)
		if n.Predict(x) == y.MaxIndex() {
			corrects++
		}
	}
	return float32(corrects) / float32(ds.NumSamples())
}

// Run trains a new network on ds for cfg.Epochs epochs and evaluates it.
//
// A cancelled context stops the run between samples; the partial Result is
// returned together with ctx.Err().
func Run(ctx context.Context, ds *dataset.Dataset, cfg RunConfig) (*Result, error) {
	if ds == nil || ds.NumSamples() == 0 {
		return nil, errors.New("trainer: dataset is empty")
	}
	if cfg.Epochs <= 0 {
		return nil, errors.New("trainer: epochs must be > 0")
	}
	if cfg.Network.InputDim == 0 {
		cfg.Network.InputDim = ds.NumFeatures()
	}
	if cfg.Network.InputDim != ds.NumFeatures() {
		return nil, fmt.Errorf("%w: input dim %d but dataset has %d features",
			ErrInvalidNetwork, cfg.Network.InputDim, ds.NumFeatures())
	}
	if cfg.Network.OutputDim == 0 {
		cfg.Network.OutputDim = ds.NumClasses
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	net, err := NewNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Printf("training %v on %d samples for %d epochs", net, ds.NumSamples(), cfg.Epochs)

	res := &Result{
		Losses:  make([]float32, 0, cfg.Epochs),
		Network: net,
	}
	start := time.Now()

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		epochStart := time.Now()
		loss, err := net.TrainEpoch(ctx, ds)
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
		res.Losses = append(res.Losses, loss)
		fmt.Fprintf(cfg.Out, "Epoch: %d | Loss: %f\n", epoch, loss)

		if cfg.LogEvery > 0 && epoch%cfg.LogEvery == 0 {
			elapsed := time.Since(epochStart)
			cfg.Logger.Printf("epoch=%d train_acc=%.4f samples_per_sec=%.1f",
				epoch,
				net.Evaluate(ds),
				float64(ds.NumSamples())/elapsed.Seconds(),
			)
		}
	}

	res.TrainAccuracy = net.Evaluate(ds)
	res.Accuracy = res.TrainAccuracy
	if cfg.Validation != nil && cfg.Validation.NumSamples() > 0 {
		res.Accuracy = net.Evaluate(cfg.Validation)
	}
	res.Elapsed = time.Since(start)

	return res, nil
}
