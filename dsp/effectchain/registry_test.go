package effectchain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

func passthrough(Params) (Effect, error) {
	return EffectFunc(func(in *signal.Signal) (*signal.Signal, error) { return in.Clone(), nil }), nil
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("registers and looks up definition", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		require.NoError(t, r.Register(Definition{Name: "Boost", Aliases: []string{"gain"}, Factory: passthrough}))

		def, err := r.Lookup("boost")
		require.NoError(t, err)
		assert.Equal(t, "boost", def.Name)

		byAlias, err := r.Lookup(" GAIN ")
		require.NoError(t, err)
		assert.Same(t, def, byAlias)
	})

	t.Run("rejects empty effect type", func(t *testing.T) {
		t.Parallel()

		assert.Error(t, NewRegistry().Register(Definition{Factory: passthrough}))
	})

	t.Run("rejects nil factory", func(t *testing.T) {
		t.Parallel()

		assert.Error(t, NewRegistry().Register(Definition{Name: "boost"}))
	})

	t.Run("rejects duplicate names and aliases", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		require.NoError(t, r.Register(Definition{Name: "boost", Aliases: []string{"gain"}, Factory: passthrough}))

		err := r.Register(Definition{Name: "boost", Factory: passthrough})
		assert.True(t, errors.Is(err, errDuplicateEffect))

		err = r.Register(Definition{Name: "gain", Factory: passthrough})
		assert.True(t, errors.Is(err, errDuplicateEffect))

		err = r.Register(Definition{Name: "level", Aliases: []string{"boost"}, Factory: passthrough})
		assert.True(t, errors.Is(err, errDuplicateEffect))
	})

	t.Run("rejects bad parameter schema", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		assert.Error(t, r.Register(Definition{
			Name:    "boost",
			Params:  []ParamSpec{{Name: "gain", Default: 5, Min: 0, Max: 1}},
			Factory: passthrough,
		}))
		assert.Error(t, r.Register(Definition{
			Name:    "boost",
			Params:  []ParamSpec{{Name: "gain", Max: 1}, {Name: "gain", Max: 1}},
			Factory: passthrough,
		}))
	})
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister(Definition{Name: "boost", Factory: passthrough})

	assert.Panics(t, func() { r.MustRegister(Definition{Name: "boost", Factory: passthrough}) })
}

func TestRegistryLookupUnknown(t *testing.T) {
	t.Parallel()

	_, err := DefaultRegistry().Lookup("wha")
	require.ErrorIs(t, err, ErrUnknownEffect)
	assert.Contains(t, err.Error(), "wha")
}

func TestDefaultRegistryNamesAndAliases(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	assert.Equal(t,
		[]string{"bitcrush", "compressor", "fuzz", "hardclip", "octave", "rotary", "tape", "vibe", "wah"},
		r.Names())

	aliases := map[string]string{
		"univibe": "vibe",
		"octavia": "octave",
		"leslie":  "rotary",
		"echo":    "tape",
	}
	for alias, want := range aliases {
		def, err := r.Lookup(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, def.Name, alias)
	}
}

func TestDefaultRegistryDefaultsBuild(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	for _, name := range r.Names() {
		def, err := r.Lookup(name)
		require.NoError(t, err)

		params, err := def.Resolve(nil)
		require.NoError(t, err, name)
		assert.Equal(t, def.Defaults(), params, name)

		fx, err := def.Factory(params)
		require.NoError(t, err, name)
		assert.NotNil(t, fx, name)
	}
}

func TestDefaultChainOrder(t *testing.T) {
	t.Parallel()

	var names []string
	for _, st := range DefaultChain() {
		names = append(names, st.Effect)
	}

	assert.Equal(t, []string{"fuzz", "wah", "vibe", "octave", "rotary", "tape"}, names)
}
