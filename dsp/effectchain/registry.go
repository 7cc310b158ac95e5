package effectchain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Factory builds one Effect from resolved parameters.
type Factory func(p Params) (Effect, error)

// Definition describes a registered effect: its parameter schema and how to
// build it.
type Definition struct {
	Name    string
	Aliases []string
	Summary string
	Params  []ParamSpec
	Factory Factory
}

// Param returns the spec named key.
func (d *Definition) Param(key string) (ParamSpec, bool) {
	for _, p := range d.Params {
		if p.Name == key {
			return p, true
		}
	}

	return ParamSpec{}, false
}

// Registry maps effect names and aliases to their definitions.
type Registry struct {
	defs    map[string]*Definition
	aliases map[string]string
}

var errDuplicateEffect = errors.New("duplicate effect type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:    make(map[string]*Definition),
		aliases: make(map[string]string),
	}
}

// Register adds def under its name and aliases.
func (r *Registry) Register(def Definition) error {
	name := canonicalName(def.Name)
	if name == "" {
		return errors.New("empty effect type")
	}

	if def.Factory == nil {
		return errors.New("nil factory")
	}

	if r.known(name) {
		return fmt.Errorf("%w: %s", errDuplicateEffect, name)
	}

	seen := map[string]struct{}{}
	for _, p := range def.Params {
		if err := p.validate(); err != nil {
			return fmt.Errorf("effect %s: %w", name, err)
		}

		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("effect %s: duplicate parameter %q", name, p.Name)
		}

		seen[p.Name] = struct{}{}
	}

	for _, alias := range def.Aliases {
		if a := canonicalName(alias); a == "" || a == name || r.known(a) {
			return fmt.Errorf("%w: alias %q of %s", errDuplicateEffect, alias, name)
		}
	}

	def.Name = name
	r.defs[name] = &def

	for _, alias := range def.Aliases {
		r.aliases[canonicalName(alias)] = name
	}

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(def Definition) {
	err := r.Register(def)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the definition for a name or alias. Names are matched
// case-insensitively.
func (r *Registry) Lookup(name string) (*Definition, error) {
	key := canonicalName(name)
	if target, ok := r.aliases[key]; ok {
		key = target
	}

	def, ok := r.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}

	return def, nil
}

// Names returns the canonical effect names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *Registry) known(name string) bool {
	_, isDef := r.defs[name]
	_, isAlias := r.aliases[name]

	return isDef || isAlias
}

func canonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
