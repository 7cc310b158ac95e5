// Package preset loads and stores effect chains as YAML documents:
//
//	name: crosstown
//	tone:
//	  freq_hz: 110
//	  seconds: 4
//	chain:
//	  - effect: fuzz
//	    params: {drive: 10}
//	  - effect: wah
//	    params: {rate_hz: 2}
//	  - effect: tape
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-hendrix/dsp/effectchain"
)

// ErrEmptyChain is returned for presets without steps.
var ErrEmptyChain = errors.New("preset: chain is empty")

// Preset is a named effect chain with an optional synthetic source tone.
type Preset struct {
	Name  string `yaml:"name,omitempty"`
	Tone  *Tone  `yaml:"tone,omitempty"`
	Chain []Step `yaml:"chain"`
}

// Tone describes the guitar-like test note used when no input file is given.
type Tone struct {
	FreqHz  float64 `yaml:"freq_hz"`
	Seconds float64 `yaml:"seconds"`
}

// Step is one chain entry.
type Step struct {
	Effect string             `yaml:"effect"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Parse decodes a preset. Unknown fields are rejected.
func Parse(data []byte) (*Preset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Preset
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyChain
		}

		return nil, fmt.Errorf("preset: %w", err)
	}

	if len(p.Chain) == 0 {
		return nil, ErrEmptyChain
	}

	for i, s := range p.Chain {
		if s.Effect == "" {
			return nil, fmt.Errorf("preset: chain step %d has no effect name", i+1)
		}
	}

	return &p, nil
}

// Load reads and parses the preset at path.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// FromSteps wraps chain steps as a preset.
func FromSteps(name string, steps []effectchain.Step) *Preset {
	p := &Preset{Name: name, Chain: make([]Step, len(steps))}
	for i, s := range steps {
		p.Chain[i] = Step{Effect: s.Effect, Params: s.Params.Clone()}
	}

	return p
}

// Steps converts the preset chain for effectchain.Run.
func (p *Preset) Steps() []effectchain.Step {
	steps := make([]effectchain.Step, len(p.Chain))
	for i, s := range p.Chain {
		steps[i] = effectchain.Step{Effect: s.Effect, Params: effectchain.Params(s.Params).Clone()}
	}

	return steps
}

// Validate resolves every step against the chain's registry without
// processing audio.
func (p *Preset) Validate(c *effectchain.Chain) error {
	return c.Validate(p.Steps())
}

// Marshal encodes the preset as YAML.
func (p *Preset) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(p); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Save writes the preset to path.
func (p *Preset) Save(path string) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
