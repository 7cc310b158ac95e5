package effectchain

import (
	"bytes"
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

func quietChain(opts ...Option) *Chain {
	factory := &logging.DefaultLoggerFactory{
		Writer:          &bytes.Buffer{},
		DefaultLogLevel: logging.LogLevelDisabled,
		ScopeLevels:     map[string]logging.LogLevel{},
	}

	return New(append([]Option{WithLoggerFactory(factory)}, opts...)...)
}

// countingEffect records how often it ran and passes its input through.
type countingEffect struct {
	calls *int
}

func (e countingEffect) Process(in *signal.Signal) (*signal.Signal, error) {
	*e.calls++

	return in.Clone(), nil
}

func registryWithCounter(t *testing.T, calls *int) *Registry {
	t.Helper()

	r := DefaultRegistry()
	require.NoError(t, r.Register(Definition{
		Name:    "count",
		Factory: func(Params) (Effect, error) { return countingEffect{calls: calls}, nil },
	}))

	return r
}
