package script

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir/kpath"
	"github.com/signadot/ydoc/shared"
)

// Script is a parsed operation script.
type Script struct {
	Roots map[string]string `yaml:"roots"`
	Steps []*Step           `yaml:"steps"`
}

// Step is one operation.  Which fields apply depends on Op.
type Step struct {
	Op     string         `yaml:"op"`
	Target string         `yaml:"target"`
	Index  int            `yaml:"index"`
	Length int            `yaml:"length"`
	Key    string         `yaml:"key"`
	Value  any            `yaml:"value"`
	Values []any          `yaml:"values"`
	Text   string         `yaml:"text"`
	Attrs  map[string]any `yaml:"attrs"`
	Tag    string         `yaml:"tag"`
}

// Ops lists the step operations.
var Ops = []string{"insert", "push", "delete", "set", "remove", "format", "element", "xmltext"}

// Load reads a script.
func Load(r io.Reader) (*Script, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d)
}

// Parse parses and validates a script.
func Parse(d []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(d, s); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return s, nil
}

func (s *Script) validate() error {
	for name, k := range s.Roots {
		if name == "" {
			return fmt.Errorf("empty root name")
		}
		if _, err := engine.ParseKind(k); err != nil {
			return fmt.Errorf("root %q: %w", name, err)
		}
	}
	for i, st := range s.Steps {
		if st == nil {
			return fmt.Errorf("step %d: empty step", i)
		}
		if !slices.Contains(Ops, st.Op) {
			return fmt.Errorf("step %d: unknown op %q", i, st.Op)
		}
		p, err := kpath.Parse(st.Target)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if p == nil || p.Field == nil {
			return fmt.Errorf("step %d: target must start with a root name", i)
		}
		if _, ok := s.Roots[*p.Field]; !ok {
			return fmt.Errorf("step %d: unknown root %q", i, *p.Field)
		}
	}
	return nil
}

// RootNames returns the root names in sorted order.
func (s *Script) RootNames() []string {
	return slices.Sorted(maps.Keys(s.Roots))
}

// HostValue converts a decoded YAML value to a host value, turning
// {$array: [...]}, {$map: {...}} and {$text: s} into preliminary shared
// containers.
func HostValue(v any) (any, error) {
	switch x := v.(type) {
	case []any:
		res := make([]any, len(x))
		for i := range x {
			hv, err := HostValue(x[i])
			if err != nil {
				return nil, err
			}
			res[i] = hv
		}
		return res, nil
	case map[string]any:
		if len(x) == 1 {
			for k, mv := range x {
				switch k {
				case "$array":
					return prelimArray(mv)
				case "$map":
					return prelimMap(mv)
				case "$text":
					s, ok := mv.(string)
					if !ok {
						return nil, fmt.Errorf("$text: expected a string, got %T", mv)
					}
					return shared.NewText(s), nil
				}
			}
		}
		res := make(map[string]any, len(x))
		for k, mv := range x {
			hv, err := HostValue(mv)
			if err != nil {
				return nil, err
			}
			res[k] = hv
		}
		return res, nil
	}
	return v, nil
}

// HostValues applies HostValue to each of vs.
func HostValues(vs []any) ([]any, error) {
	res := make([]any, len(vs))
	for i := range vs {
		hv, err := HostValue(vs[i])
		if err != nil {
			return nil, err
		}
		res[i] = hv
	}
	return res, nil
}

func prelimArray(v any) (any, error) {
	xs, ok := v.([]any)
	if !ok && v != nil {
		return nil, fmt.Errorf("$array: expected a list, got %T", v)
	}
	vals, err := HostValues(xs)
	if err != nil {
		return nil, err
	}
	return shared.NewArray(vals...), nil
}

func prelimMap(v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok && v != nil {
		return nil, fmt.Errorf("$map: expected a mapping, got %T", v)
	}
	res := make(map[string]any, len(m))
	for k, mv := range m {
		hv, err := HostValue(mv)
		if err != nil {
			return nil, err
		}
		res[k] = hv
	}
	return shared.NewMap(res), nil
}
