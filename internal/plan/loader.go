package plan

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/stevehiehn/drt/internal/action"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses an action file. Relative template paths in it are
// resolved against the file's directory.
func LoadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading action file: %w", err)
	}
	p, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.BaseDir = filepath.Dir(path)
	return p, nil
}

// Load parses action file YAML bytes. Unknown keys are rejected.
func Load(data []byte) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(p.Steps) == 0 && len(p.Vars) == 0 {
		return nil, fmt.Errorf("action file has no steps")
	}
	if p.Name == "" {
		return nil, fmt.Errorf("action file has no name")
	}
	return &p, nil
}

// Actions converts the plan into engine actions: file-level vars first, in key
// order, then each step in order.
func (p *Plan) Actions() []action.Action {
	var out []action.Action

	keys := make([]string, 0, len(p.Vars))
	for k := range p.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, action.SetVar{Name: k, Value: p.Vars[k]})
	}

	for _, s := range p.Steps {
		switch {
		case s.Var != nil:
			out = append(out, action.SetVar{Name: s.Var.Name, Value: s.Var.Value})
		case s.Template != nil:
			out = append(out, action.Template{
				Source: p.resolve(s.Template.Source),
				Dest:   p.resolve(s.Template.Dest),
			})
		case len(s.Exec) > 0:
			argv := make([]string, len(s.Exec))
			copy(argv, s.Exec)
			out = append(out, action.Exec{Argv: argv})
		default:
			out = append(out, action.NoOp{})
		}
	}
	return out
}

func (p *Plan) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || p.BaseDir == "" {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}
