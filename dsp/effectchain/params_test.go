package effectchain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

func TestDefinitionResolve(t *testing.T) {
	t.Parallel()

	def, err := DefaultRegistry().Lookup("tape")
	require.NoError(t, err)

	t.Run("fills defaults", func(t *testing.T) {
		t.Parallel()

		got, err := def.Resolve(Params{"feedback": 0.3})
		require.NoError(t, err)
		assert.Equal(t, Params{"delay_ms": 120, "feedback": 0.3, "hf_loss": 0.75}, got)
	})

	bad := map[string]Params{
		"unknown key":       {"mix": 0.5},
		"non-finite":        {"delay_ms": math.NaN()},
		"exclusive max":     {"feedback": 1},
		"below min":         {"hf_loss": -0.1},
		"non-positive time": {"delay_ms": 0},
	}
	for name, raw := range bad {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := def.Resolve(raw)
			assert.ErrorIs(t, err, core.ErrInvalidParameter)
		})
	}
}

func TestDefinitionResolveInteger(t *testing.T) {
	t.Parallel()

	def, err := DefaultRegistry().Lookup("bitcrush")
	require.NoError(t, err)

	_, err = def.Resolve(Params{"bits": 7.5})
	require.ErrorIs(t, err, core.ErrInvalidParameter)

	got, err := def.Resolve(Params{"bits": 12})
	require.NoError(t, err)
	assert.Equal(t, 12.0, got["bits"])
}
