package effectchain

import (
	"fmt"
	"time"

	"github.com/pion/logging"

	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

const loggerScope = "effectchain"

// Step names one effect of a chain and its raw parameter overrides.
type Step struct {
	Effect string
	Params Params
}

func (s Step) String() string {
	if len(s.Params) == 0 {
		return s.Effect
	}

	return fmt.Sprintf("%s %v", s.Effect, map[string]float64(s.Params))
}

// Stage is one captured intermediate result. Index is 1-based.
type Stage struct {
	Index  int
	Name   string
	Params Params
	Signal *signal.Signal
}

// Key returns the stage's "NN_name" label, e.g. "01_fuzz".
func (s Stage) Key() string {
	return fmt.Sprintf("%02d_%s", s.Index, s.Name)
}

// Result is the outcome of Run. Stages is empty unless capture was requested.
type Result struct {
	Final  *signal.Signal
	Stages []Stage
}

// Option configures a Chain.
type Option func(*Chain)

// WithRegistry replaces the default registry.
func WithRegistry(r *Registry) Option {
	return func(c *Chain) { c.registry = r }
}

// WithLoggerFactory sets the factory used to create the chain's logger.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(c *Chain) { c.loggerFactory = f }
}

// Chain sequences registered effects over whole signals. A Chain holds no
// signal state and may be reused; each Run builds fresh effect instances.
type Chain struct {
	registry      *Registry
	loggerFactory logging.LoggerFactory
	log           logging.LeveledLogger
}

// New creates a Chain over the default registry.
func New(opts ...Option) *Chain {
	c := &Chain{}
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = DefaultRegistry()
	}

	if c.loggerFactory == nil {
		c.loggerFactory = logging.NewDefaultLoggerFactory()
	}

	c.log = c.loggerFactory.NewLogger(loggerScope)

	return c
}

// Registry returns the chain's registry.
func (c *Chain) Registry() *Registry {
	return c.registry
}

type plannedStage struct {
	index  int
	name   string
	params Params
	effect Effect
}

// plan resolves every step to a configured effect without processing
// anything. It fails on the first unknown name or invalid parameter.
func (c *Chain) plan(steps []Step) ([]plannedStage, error) {
	planned := make([]plannedStage, len(steps))

	for i, step := range steps {
		def, err := c.registry.Lookup(step.Effect)
		if err != nil {
			return nil, &StageError{Index: i + 1, Name: step.Effect, Err: err}
		}

		params, err := def.Resolve(step.Params)
		if err != nil {
			return nil, &StageError{Index: i + 1, Name: def.Name, Err: err}
		}

		fx, err := def.Factory(params)
		if err != nil {
			return nil, &StageError{Index: i + 1, Name: def.Name, Err: err}
		}

		planned[i] = plannedStage{index: i + 1, name: def.Name, params: params, effect: fx}
	}

	return planned, nil
}

// Validate checks that every step names a registered effect with valid
// parameters.
func (c *Chain) Validate(steps []Step) error {
	_, err := c.plan(steps)

	return err
}

// Run applies steps in order, each consuming the previous stage's full
// output. All steps are resolved before the first one runs, so an unknown
// name or bad parameter processes nothing. With capture set, every
// intermediate signal is returned in order.
func (c *Chain) Run(in *signal.Signal, steps []Step, capture bool) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	planned, err := c.plan(steps)
	if err != nil {
		c.log.Errorf("chain rejected: %v", err)

		return nil, err
	}

	start := time.Now()
	res := &Result{Final: in}

	// An empty chain still hands back a signal the caller owns.
	if len(planned) == 0 {
		res.Final = in.Clone()
	}

	if capture {
		res.Stages = make([]Stage, 0, len(planned))
	}

	for _, st := range planned {
		stageStart := time.Now()

		out, err := st.effect.Process(res.Final)
		if err == nil {
			err = signal.CheckFinite(out.Samples)
		}

		if err != nil {
			serr := &StageError{Index: st.index, Name: st.name, Err: err}
			c.log.Errorf("%v", serr)

			return nil, serr
		}

		c.log.Debugf("stage %d %s: %d -> %d samples in %s",
			st.index, st.name, res.Final.Len(), out.Len(), time.Since(stageStart))

		res.Final = out

		if capture {
			res.Stages = append(res.Stages, Stage{Index: st.index, Name: st.name, Params: st.params, Signal: out})
		}
	}

	c.log.Infof("ran %d stages over %s of audio in %s", len(planned), in.Duration(), time.Since(start))

	return res, nil
}

// ApplyEffect runs a single registered effect.
func (c *Chain) ApplyEffect(name string, in *signal.Signal, params Params) (*signal.Signal, error) {
	res, err := c.Run(in, []Step{{Effect: name, Params: params}}, false)
	if err != nil {
		return nil, err
	}

	return res.Final, nil
}

// Run applies steps using a chain over the default registry.
func Run(in *signal.Signal, steps []Step, capture bool) (*Result, error) {
	return New().Run(in, steps, capture)
}

// ApplyEffect runs one effect from the default registry.
func ApplyEffect(name string, in *signal.Signal, params Params) (*signal.Signal, error) {
	return New().ApplyEffect(name, in, params)
}
