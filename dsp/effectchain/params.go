package effectchain

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

// Params holds numeric effect parameters keyed by name.
type Params map[string]float64

// Clone returns a copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}

	return out
}

// ParamSpec describes one numeric parameter of an effect.
type ParamSpec struct {
	Name    string
	Default float64
	Min     float64
	Max     float64
	// MaxExclusive makes Max an open bound.
	MaxExclusive bool
	Integer      bool
	Unit         string
}

func (s ParamSpec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty parameter name", core.ErrInvalidParameter)
	}

	if s.Min > s.Max {
		return fmt.Errorf("%w: parameter %s has min %g > max %g", core.ErrInvalidParameter, s.Name, s.Min, s.Max)
	}

	return s.check(s.Default)
}

func (s ParamSpec) check(v float64) error {
	if !core.IsFinite(v) {
		return fmt.Errorf("%w: %s must be finite: %f", core.ErrInvalidParameter, s.Name, v)
	}

	upper := "]"
	if s.MaxExclusive {
		upper = ")"
	}

	if v < s.Min || v > s.Max || (s.MaxExclusive && v == s.Max) {
		return fmt.Errorf("%w: %s must be in [%g, %g%s: %g", core.ErrInvalidParameter, s.Name, s.Min, s.Max, upper, v)
	}

	if s.Integer && v != math.Trunc(v) {
		return fmt.Errorf("%w: %s must be an integer: %g", core.ErrInvalidParameter, s.Name, v)
	}

	return nil
}

// Resolve validates raw against the definition's schema and fills in
// defaults for missing keys. Unknown keys are rejected.
func (d *Definition) Resolve(raw Params) (Params, error) {
	var unknown []string

	for key := range raw {
		if _, ok := d.Param(key); !ok {
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)

		return nil, fmt.Errorf("%w: %s has no parameter %s", core.ErrInvalidParameter, d.Name, strings.Join(unknown, ", "))
	}

	out := make(Params, len(d.Params))
	for _, spec := range d.Params {
		v, ok := raw[spec.Name]
		if !ok {
			out[spec.Name] = spec.Default

			continue
		}

		if err := spec.check(v); err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}

		out[spec.Name] = v
	}

	return out, nil
}

// Defaults returns the default value of every parameter.
func (d *Definition) Defaults() Params {
	out := make(Params, len(d.Params))
	for _, spec := range d.Params {
		out[spec.Name] = spec.Default
	}

	return out
}
