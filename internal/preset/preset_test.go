package preset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/effectchain"
)

const crosstown = `
name: crosstown
tone:
  freq_hz: 110
  seconds: 2
chain:
  - effect: fuzz
    params: {drive: 10}
  - effect: wah
    params:
      rate_hz: 2
      q: 3
  - effect: tape
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(crosstown))
	require.NoError(t, err)

	assert.Equal(t, "crosstown", p.Name)
	require.NotNil(t, p.Tone)
	assert.Equal(t, Tone{FreqHz: 110, Seconds: 2}, *p.Tone)

	steps := p.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, "fuzz", steps[0].Effect)
	assert.Equal(t, 10.0, steps[0].Params["drive"])
	assert.Equal(t, 3.0, steps[1].Params["q"])
	assert.Equal(t, "tape", steps[2].Effect)
	assert.Empty(t, steps[2].Params)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("chain:\n  - effect: fuzz\n    gain: 2\n"))
	require.Error(t, err)
}

func TestParseRejectsEmptyChain(t *testing.T) {
	for _, doc := range []string{"", "name: nothing\n", "chain: []\n"} {
		_, err := Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrEmptyChain, "document %q", doc)
	}
}

func TestParseRejectsMissingEffect(t *testing.T) {
	_, err := Parse([]byte("chain:\n  - params: {drive: 2}\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := effectchain.New()

	p, err := Parse([]byte(crosstown))
	require.NoError(t, err)
	require.NoError(t, p.Validate(c))

	bad, err := Parse([]byte("chain:\n  - effect: fuzz\n    params: {drive: 1000}\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, bad.Validate(c), core.ErrInvalidParameter)

	unknown, err := Parse([]byte("chain:\n  - effect: flanger\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, unknown.Validate(c), effectchain.ErrUnknownEffect)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")

	p := FromSteps("default", effectchain.DefaultChain())
	require.NoError(t, p.Save(path))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "default", got.Name)
	assert.Nil(t, got.Tone)

	want := effectchain.DefaultChain()
	steps := got.Steps()
	require.Len(t, steps, len(want))

	for i := range want {
		assert.Equal(t, want[i].Effect, steps[i].Effect)
		assert.Equal(t, len(want[i].Params), len(steps[i].Params))

		for k, v := range want[i].Params {
			assert.Equal(t, v, steps[i].Params[k])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}
