package telephone

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	timestats "github.com/cwbudde/algo-telephone/stats/time"
)

// Link is one element of a Chain.
type Link struct {
	Stage    int
	Waveform Waveform
}

// ID returns the storage identifier of the link.
func (l Link) ID() StageID { return StageID(l.Stage) }

// Chain is the ordered sequence of stages 0..N.
type Chain []Link

// Final returns the last waveform of the chain.
func (c Chain) Final() Waveform {
	if len(c) == 0 {
		return Waveform{}
	}
	return c[len(c)-1].Waveform
}

// Saver persists a waveform under a stage identifier.
type Saver interface {
	Save(ctx context.Context, id StageID, w Waveform) error
}

// Store persists and retrieves stage waveforms.
type Store interface {
	Saver
	Load(ctx context.Context, id StageID) (Waveform, error)
	// List returns the stored degraded stages (stage 0 excluded) in
	// ascending order.
	List(ctx context.Context) ([]StageID, error)
}

// Driver runs the degradation chain.
type Driver struct {
	degrader *Degrader
	stages   int
	saver    Saver
	logger   *zap.Logger
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the logger used for per-stage progress lines.
func WithLogger(logger *zap.Logger) DriverOption {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithSaver persists every waveform of the chain. Without it the chain is
// only kept in memory.
func WithSaver(s Saver) DriverOption {
	return func(d *Driver) { d.saver = s }
}

// NewDriver returns a Driver applying degrader for the given number of stages.
func NewDriver(degrader *Degrader, stages int, opts ...DriverOption) (*Driver, error) {
	if degrader == nil {
		return nil, fmt.Errorf("%w: nil degrader", ErrInvalidConfig)
	}
	if stages < 1 {
		return nil, fmt.Errorf("%w: stageCount must be > 0: %d", ErrInvalidConfig, stages)
	}
	d := &Driver{degrader: degrader, stages: stages, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// Run degrades source through stages 1..N, each stage consuming the output
// of the previous one. Every waveform, the source included, is saved before
// the next stage starts. The first failure aborts the run and no chain is
// returned.
func (d *Driver) Run(ctx context.Context, source Waveform) (Chain, error) {
	if source.Len() == 0 {
		return nil, ErrEmptyWaveform
	}

	chain := make(Chain, 0, d.stages+1)
	if err := d.persist(ctx, Link{Stage: 0, Waveform: source}); err != nil {
		return nil, err
	}
	chain = append(chain, Link{Stage: 0, Waveform: source})

	current := source
	for stage := 1; stage <= d.stages; stage++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, err := d.degrader.Degrade(current, stage)
		if err != nil {
			return nil, err
		}
		link := Link{Stage: stage, Waveform: next}
		if err := d.persist(ctx, link); err != nil {
			return nil, err
		}
		chain = append(chain, link)
		current = next
	}

	return chain, nil
}

func (d *Driver) persist(ctx context.Context, link Link) error {
	if d.saver != nil {
		if err := d.saver.Save(ctx, link.ID(), link.Waveform); err != nil {
			return err
		}
	}

	fields := []zap.Field{
		zap.Int("stage", link.Stage),
		zap.String("id", link.ID().String()),
		zap.Float64("rms", timestats.RMS(link.Waveform.Samples)),
	}
	if link.Stage > 0 {
		fields = append(fields,
			zap.Float64("cutoff_hz", Cutoff(link.Stage)),
			zap.Float64("noise_sigma", d.degrader.NoiseSigma(link.Stage)),
		)
	}
	d.logger.Info("stage generated", fields...)
	return nil
}
