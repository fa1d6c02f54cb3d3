// Package main provides the digits CLI: it trains a two-layer classifier on
// MNIST (or a synthetic stand-in) with per-sample SGD and reports accuracy.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/born-ml/digits/internal/config"
	"github.com/born-ml/digits/internal/dataset"
	"github.com/born-ml/digits/internal/report"
	"github.com/born-ml/digits/internal/runinfo"
	"github.com/born-ml/digits/internal/trainer"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("digits %s\n", version)
		return
	}

	cfgPath, overrides, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg := config.Default()
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	cfg.ApplyOverrides(overrides)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, log.Default()); err != nil {
		stop()
		log.Fatalf("%v", err)
	}
}

// parseFlags parses the command line. Only flags the user actually passed
// end up in the returned overrides, so explicit zeros such as -seed 0 win
// over the YAML file.
func parseFlags(args []string) (string, config.Overrides, error) {
	fs := flag.NewFlagSet("digits", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (defaults apply when empty)")
	dataDir := fs.String("data", "", "Directory holding the IDX files")
	maxSamples := fs.Int("max-samples", 0, "Use at most N training rows (0 = all)")
	hidden := fs.Int("hidden", 0, "Hidden layer width")
	lr := fs.Float64("lr", 0, "SGD learning rate")
	epochs := fs.Int("epochs", 0, "Number of epochs")
	seed := fs.Int64("seed", 0, "Weight initialization seed")
	arch := fs.String("arch", "", "Architecture: hidden-softmax or output-softmax")
	initName := fs.String("init", "", "Weight init: xavier or constant")
	logEvery := fs.Int("log-every", 0, "Log training accuracy every N epochs (0 = never)")
	plotPath := fs.String("plot", "", "Write the loss curve to this file (.svg, .png)")
	synthetic := fs.Int("synthetic", 0, "Train on N synthetic samples instead of MNIST")
	valRatio := fs.Float64("val", 0, "Hold out this fraction of rows for evaluation (0 = none)")

	if err := fs.Parse(args); err != nil {
		return "", config.Overrides{}, err
	}

	var o config.Overrides
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			o.DataDir = dataDir
		case "max-samples":
			o.MaxSamples = maxSamples
		case "hidden":
			o.HiddenDim = hidden
		case "lr":
			o.LearningRate = lr
		case "epochs":
			o.Epochs = epochs
		case "seed":
			o.Seed = seed
		case "arch":
			o.Architecture = arch
		case "init":
			o.Init = initName
		case "log-every":
			o.LogEvery = logEvery
		case "plot":
			o.PlotPath = plotPath
		case "synthetic":
			o.Synthetic = synthetic
		case "val":
			o.ValRatio = valRatio
		}
	})
	return *cfgPath, o, nil
}

// run loads the data, trains, and prints the epoch and accuracy lines to out.
func run(ctx context.Context, cfg *config.Config, out io.Writer, logger *log.Logger) error {
	logger.Printf("%v", runinfo.New())

	ds, err := loadDataset(cfg)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	logger.Printf("samples=%d features=%d classes=%d", ds.NumSamples(), ds.NumFeatures(), ds.NumClasses)

	train, val := ds.Split(cfg.ValRatio)
	if val != nil {
		logger.Printf("train=%d validation=%d", train.NumSamples(), val.NumSamples())
	}

	runCfg := cfg.RunConfig()
	runCfg.Validation = val
	runCfg.Out = out
	runCfg.Logger = logger

	res, err := trainer.Run(ctx, train, runCfg)
	if errors.Is(err, context.Canceled) {
		logger.Printf("training interrupted after %d of %d epochs", len(res.Losses), cfg.Epochs)
		return nil
	}
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	fmt.Fprintf(out, "Accuracy: %f\n", res.Accuracy)

	summary, err := report.Summarize(res.Losses)
	if err != nil {
		return err
	}
	logger.Printf("%v elapsed=%s", summary, res.Elapsed)

	if cfg.PlotPath != "" {
		if err := report.WriteLossPlot(cfg.PlotPath, res.Losses); err != nil {
			return err
		}
		logger.Printf("loss curve written to %s", cfg.PlotPath)
	}
	return nil
}

func loadDataset(cfg *config.Config) (*dataset.Dataset, error) {
	if cfg.Synthetic > 0 {
		return dataset.Synthetic(cfg.Synthetic, dataset.NumDigits, trainer.DefaultInputDim, cfg.Seed), nil
	}
	return dataset.LoadFiles(cfg.ImagesPath(), cfg.LabelsPath(), cfg.MaxSamples)
}
