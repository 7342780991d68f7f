package telephone

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Mode selects which part of the pipeline runs.
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeAnalyze  Mode = "analyze"
	ModeAll      Mode = "all"
)

// ParseMode parses a mode name. The empty string selects ModeAll.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAll, nil
	case ModeGenerate, ModeAnalyze, ModeAll:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q (want generate, analyze or all)", ErrInvalidConfig, s)
	}
}

// Pipeline wires source, driver, store, analyzer and reporter together.
type Pipeline struct {
	cfg      Config
	store    Store
	reporter *Reporter
	logger   *zap.Logger
	degOpts  []DegraderOption
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger sets the logger shared by every pipeline step.
func WithPipelineLogger(logger *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDegraderOptions forwards options to the Degrader built by Generate.
func WithDegraderOptions(opts ...DegraderOption) PipelineOption {
	return func(p *Pipeline) {
		p.degOpts = append(p.degOpts, opts...)
	}
}

// NewPipeline validates cfg and returns a Pipeline persisting to store and
// plotting through plotter.
func NewPipeline(cfg Config, store Store, plotter Plotter, opts ...PipelineOption) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidConfig)
	}
	p := &Pipeline{
		cfg:      cfg,
		store:    store,
		reporter: NewReporter(plotter, cfg.PlotPath()),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Execute runs the steps selected by mode.
func (p *Pipeline) Execute(ctx context.Context, mode Mode) error {
	switch mode {
	case ModeGenerate:
		_, err := p.Generate(ctx)
		return err
	case ModeAnalyze:
		_, err := p.Analyze(ctx)
		return err
	case ModeAll, "":
		_, _, err := p.Run(ctx)
		return err
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, mode)
	}
}

// Generate synthesizes the source tone, runs the chain and stores every stage.
func (p *Pipeline) Generate(ctx context.Context) (Chain, error) {
	source, err := Generate(p.cfg)
	if err != nil {
		return nil, err
	}
	degrader, err := NewDegrader(p.cfg, p.degOpts...)
	if err != nil {
		return nil, err
	}
	p.logger.Info("generating chain",
		zap.Int("stages", p.cfg.StageCount),
		zap.Float64("frequency_hz", p.cfg.OriginalFrequency),
		zap.Float64("sample_rate", p.cfg.SampleRate),
		zap.Int("samples", source.Len()),
		zap.Int64("seed", degrader.Seed()),
		zap.String("dir", p.cfg.OutputDirectory),
	)

	driver, err := NewDriver(degrader, p.cfg.StageCount,
		WithSaver(p.store),
		WithLogger(p.logger),
	)
	if err != nil {
		return nil, err
	}
	return driver.Run(ctx, source)
}

// Analyze loads every stored degraded stage, measures them in parallel and
// plots the trend. With nothing stored it returns ErrEmptyInputSet and does
// not plot.
func (p *Pipeline) Analyze(ctx context.Context) ([]AnalysisResult, error) {
	ids, err := p.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyInputSet, p.cfg.OutputDirectory)
	}
	SortStageIDs(ids)

	workers := p.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]AnalysisResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w, err := p.store.Load(gctx, id)
			if err != nil {
				return err
			}
			res, err := Analyze(w)
			if err != nil {
				return fmt.Errorf("telephone: analyze %s: %w", id, err)
			}
			res.Stage = id.Stage()
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		p.logger.Info("stage analyzed",
			zap.Int("stage", r.Stage),
			zap.Float64("rms", r.RMS),
			zap.Float64("dominant_hz", r.DominantFrequency),
			zap.Float64("centroid_hz", r.Centroid),
			zap.Float64("rolloff_hz", r.Rolloff),
			zap.Float64("snr_db", r.SNR),
		)
	}

	trend, err := NewTrend(results)
	if err != nil {
		return nil, err
	}
	if err := p.reporter.Report(ctx, trend); err != nil {
		return nil, err
	}
	p.logger.Info("plot written", zap.String("path", p.reporter.Path()))
	return results, nil
}

// Run generates the chain and then analyzes it.
func (p *Pipeline) Run(ctx context.Context) (Chain, []AnalysisResult, error) {
	chain, err := p.Generate(ctx)
	if err != nil {
		return nil, nil, err
	}
	results, err := p.Analyze(ctx)
	if err != nil {
		return nil, nil, err
	}
	return chain, results, nil
}
