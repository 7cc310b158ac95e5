package effectchain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

// ParseSteps parses a textual chain such as
//
//	fuzz, wah:rate_hz=2:q=3, tape:feedback=0.4
//
// Steps are separated by commas; a step's parameters follow its name, each
// introduced by a colon. Names are not checked against a registry.
func ParseSteps(text string) ([]Step, error) {
	var steps []Step

	for i, field := range strings.Split(text, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		parts := strings.Split(field, ":")
		step := Step{Effect: strings.TrimSpace(parts[0])}

		if step.Effect == "" {
			return nil, fmt.Errorf("%w: chain step %d has no effect name", core.ErrInvalidParameter, i+1)
		}

		for _, kv := range parts[1:] {
			key, raw, ok := strings.Cut(kv, "=")
			key = strings.TrimSpace(key)

			if !ok || key == "" {
				return nil, fmt.Errorf("%w: chain step %d (%s): parameter %q is not key=value",
					core.ErrInvalidParameter, i+1, step.Effect, kv)
			}

			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: chain step %d (%s): %s: %v",
					core.ErrInvalidParameter, i+1, step.Effect, key, err)
			}

			if step.Params == nil {
				step.Params = Params{}
			}

			step.Params[key] = v
		}

		steps = append(steps, step)
	}

	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty chain", core.ErrInvalidParameter)
	}

	return steps, nil
}
