package eval

import (
	"fmt"
	"io"

	"github.com/norn-lang/norn/pkg/environ"
	"github.com/norn-lang/norn/pkg/value"
	"gopkg.in/yaml.v3"
)

// Manifest is a yaml description of a realm's initial state, used by the
// cli to seed scripted runs.
//
//	strict: true
//	globals:
//	  - name: debug
//	    kind: const
//	    value: false
type Manifest struct {
	Strict  bool             `yaml:"strict"`
	Globals []ManifestGlobal `yaml:"globals"`
}

// ManifestGlobal declares one global binding.  Kind defaults to var.
type ManifestGlobal struct {
	Name  string      `yaml:"name"`
	Kind  string      `yaml:"kind"`
	Value interface{} `yaml:"value"`
}

// LoadManifest decodes a manifest from r.
func LoadManifest(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.NewDecoder(r).Decode(m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return m, nil
}

// Options converts m to realm options.
func (m *Manifest) Options() ([]Option, error) {
	opts := []Option{WithStrict(m.Strict)}
	for _, g := range m.Globals {
		if g.Name == "" {
			return nil, fmt.Errorf("manifest: global with no name")
		}
		v, err := manifestValue(g.Value)
		if err != nil {
			return nil, fmt.Errorf("manifest: global %q: %w", g.Name, err)
		}
		var kind environ.Kind
		switch g.Kind {
		case "", "var":
			kind = environ.KindVar
		case "let":
			kind = environ.KindLet
		case "const":
			kind = environ.KindConst
		default:
			return nil, fmt.Errorf("manifest: global %q: bad kind %q", g.Name, g.Kind)
		}
		name := g.Name
		opts = append(opts, func(r *Realm) {
			r.global.Define(name, v, kind)
		})
	}
	return opts, nil
}

func manifestValue(raw interface{}) (value.V, error) {
	switch raw := raw.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Boolean(raw), nil
	case int:
		return value.Number(float64(raw)), nil
	case int64:
		return value.Number(float64(raw)), nil
	case float64:
		return value.Number(raw), nil
	case string:
		return value.String(raw), nil
	default:
		return value.V{}, fmt.Errorf("unsupported value type %T", raw)
	}
}
