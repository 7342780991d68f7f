// Command telephone plays the telephone game with a sine tone: every stage
// low-passes, adds noise and blends in a drifting reference, then the chain
// is analyzed and charted.
//
// Usage:
//
//	telephone [flags] [generate|analyze|all]
//
// Without a mode argument it generates the chain and analyzes it.
//
// Examples:
//
//	telephone
//	telephone -stages 40 -seed 7 generate
//	telephone -out runs/a analyze
//	telephone -config telephone.yaml -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-telephone/internal/logging"
	"github.com/cwbudde/algo-telephone/internal/plotting"
	"github.com/cwbudde/algo-telephone/internal/wavstore"
	"github.com/cwbudde/algo-telephone/telephone"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
	exitEmptyInput
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath string
	dev        bool
	cfg        telephone.Config
	seed       int64
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("telephone", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := telephone.DefaultConfig()
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "YAML config file applied before flags")
	fs.Float64Var(&opts.cfg.SampleRate, "sample-rate", defaults.SampleRate, "sample rate in Hz")
	fs.Float64Var(&opts.cfg.Duration, "duration", defaults.Duration, "clip length in seconds")
	fs.IntVar(&opts.cfg.StageCount, "stages", defaults.StageCount, "number of degradation stages")
	fs.Float64Var(&opts.cfg.OriginalFrequency, "freq", defaults.OriginalFrequency, "source tone frequency in Hz")
	fs.Float64Var(&opts.cfg.NoiseScale, "noise-scale", defaults.NoiseScale, "noise standard deviation added per stage")
	fs.Float64Var(&opts.cfg.PitchDriftAmp, "drift-amp", defaults.PitchDriftAmp, "relative amplitude of the pitch drift")
	fs.StringVar(&opts.cfg.OutputDirectory, "out", defaults.OutputDirectory, "directory for wav files and the chart")
	fs.StringVar(&opts.cfg.PlotFile, "plot", defaults.PlotFile, "chart file name inside the output directory")
	fs.Int64Var(&opts.seed, "seed", 0, "noise seed (default: fresh per run)")
	fs.IntVar(&opts.cfg.Workers, "workers", defaults.Workers, "parallel analysis workers")
	fs.StringVar(&opts.cfg.LogLevel, "log-level", defaults.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&opts.dev, "dev", false, "human-readable console logs")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: telephone [flags] [generate|analyze|all]\n\n")
		fmt.Fprintf(stderr, "Degrades a sine tone through a chain of lossy stages and charts the result.\n")
		fmt.Fprintf(stderr, "Without a mode it generates the chain and then analyzes it.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  telephone -stages 40 -seed 7 generate\n")
		fmt.Fprintf(stderr, "  telephone -out runs/a analyze\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "error: expected at most one mode, got %v\n", fs.Args())
		return exitUsage
	}

	mode, err := telephone.ParseMode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	cfg, err := resolveConfig(fs, opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	logger, err := logging.New(stderr, cfg.LogLevel, opts.dev)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	defer func() { _ = logger.Sync() }()

	p, err := telephone.NewPipeline(cfg, wavstore.New(cfg.OutputDirectory), plotting.New(),
		telephone.WithPipelineLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	return execute(ctx, p, mode, cfg, logger, stdout)
}

// resolveConfig layers defaults, the optional YAML file and explicitly set
// flags, in that order.
func resolveConfig(fs *flag.FlagSet, opts options) (telephone.Config, error) {
	cfg := telephone.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := telephone.LoadConfig(opts.configPath)
		if err != nil {
			return telephone.Config{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sample-rate":
			cfg.SampleRate = opts.cfg.SampleRate
		case "duration":
			cfg.Duration = opts.cfg.Duration
		case "stages":
			cfg.StageCount = opts.cfg.StageCount
		case "freq":
			cfg.OriginalFrequency = opts.cfg.OriginalFrequency
		case "noise-scale":
			cfg.NoiseScale = opts.cfg.NoiseScale
		case "drift-amp":
			cfg.PitchDriftAmp = opts.cfg.PitchDriftAmp
		case "out":
			cfg.OutputDirectory = opts.cfg.OutputDirectory
		case "plot":
			cfg.PlotFile = opts.cfg.PlotFile
		case "seed":
			seed := opts.seed
			cfg.Seed = &seed
		case "workers":
			cfg.Workers = opts.cfg.Workers
		case "log-level":
			cfg.LogLevel = opts.cfg.LogLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return telephone.Config{}, err
	}
	return cfg, nil
}

func execute(ctx context.Context, p *telephone.Pipeline, mode telephone.Mode, cfg telephone.Config, logger *zap.Logger, stdout io.Writer) int {
	var (
		results []telephone.AnalysisResult
		err     error
	)
	switch mode {
	case telephone.ModeGenerate:
		_, err = p.Generate(ctx)
	case telephone.ModeAnalyze:
		results, err = p.Analyze(ctx)
	default:
		_, results, err = p.Run(ctx)
	}

	switch {
	case err == nil:
	case errors.Is(err, telephone.ErrEmptyInputSet):
		logger.Error("nothing to analyze", zap.Error(err))
		return exitEmptyInput
	case errors.Is(err, telephone.ErrInvalidConfig):
		logger.Error("invalid configuration", zap.Error(err))
		return exitUsage
	default:
		logger.Error("run failed", zap.String("mode", string(mode)), zap.Error(err))
		return exitFailure
	}

	if mode == telephone.ModeGenerate {
		fmt.Fprintf(stdout, "Generated %d stages in %s\n", cfg.StageCount, cfg.OutputDirectory)
		return exitOK
	}
	printResults(stdout, results)
	fmt.Fprintf(stdout, "\nPlot saved to %s\n", cfg.PlotPath())
	return exitOK
}

func printResults(w io.Writer, results []telephone.AnalysisResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Stage\tRMS\tDominant (Hz)\tSNR (dB)\tCentroid (Hz)\tRolloff (Hz)\tFlatness\n")
	fmt.Fprintf(tw, "-----\t---\t-------------\t--------\t-------------\t------------\t--------\n")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%.4f\t%.2f\t%.1f\t%.1f\t%.1f\t%.4f\n",
			r.Stage, r.RMS, r.DominantFrequency, r.SNR, r.Centroid, r.Rolloff, r.Flatness)
	}
	tw.Flush()
}
