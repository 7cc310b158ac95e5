package effectchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

func TestParseSteps(t *testing.T) {
	t.Parallel()

	steps, err := ParseSteps(" fuzz, wah:rate_hz=2:q=3 ,tape:feedback=0.4,")
	require.NoError(t, err)
	assert.Equal(t, []Step{
		{Effect: "fuzz"},
		{Effect: "wah", Params: Params{"rate_hz": 2, "q": 3}},
		{Effect: "tape", Params: Params{"feedback": 0.4}},
	}, steps)
}

func TestParseStepsErrors(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", " , ", ":q=2", "wah:rate", "wah:=2", "wah:q=fast"} {
		_, err := ParseSteps(text)
		assert.ErrorIs(t, err, core.ErrInvalidParameter, text)
	}
}
