// Package script runs tengo programs that drive scripted Beings.
package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/porp/prefabs"
	"github.com/milk9111/porp/vmath"
)

// ErrUndefined is returned when a script leaves an output unset.
var ErrUndefined = errors.New("script: undefined variable")

// Modules are the stdlib modules a script may import.
var Modules = []string{"math", "rand", "text", "times", "fmt", "enum"}

// Program is a compiled script plus the state map it keeps between runs.
// A Program is not safe for concurrent use; Clone one per Being.
type Program struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// Compile compiles src with the given globals predeclared. Every global a
// later Run sets must be declared here. The global "state" is always
// declared and persists across runs.
func Compile(name string, src []byte, globals map[string]any) (*Program, error) {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(Modules...))
	if err := s.Add("state", map[string]any{}); err != nil {
		return nil, fmt.Errorf("script: %s: declare state: %w", name, err)
	}
	for k, v := range globals {
		if err := s.Add(k, v); err != nil {
			return nil, fmt.Errorf("script: %s: declare %s: %w", name, k, err)
		}
	}

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Program{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Load compiles the named script from prefabs/scripts.
func Load(name string, globals map[string]any) (*Program, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src, globals)
}

func (p *Program) Name() string { return p.name }

// Clone returns an independent copy with its own globals and empty state.
func (p *Program) Clone() *Program {
	return &Program{
		name:     p.name,
		compiled: p.compiled.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
}

// Run sets inputs and executes the program once.
func (p *Program) Run(ctx context.Context, inputs map[string]any) error {
	if err := p.compiled.Set("state", p.state); err != nil {
		return fmt.Errorf("script: %s: set state: %w", p.name, err)
	}
	for k, v := range inputs {
		if err := p.compiled.Set(k, v); err != nil {
			return fmt.Errorf("script: %s: set %s: %w", p.name, k, err)
		}
	}
	if err := p.compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("script: run %s: %w", p.name, err)
	}
	return nil
}

func (p *Program) Float(name string) (float64, error) {
	v := p.compiled.Get(name)
	if v.IsUndefined() {
		return 0, fmt.Errorf("script: %s: %s: %w", p.name, name, ErrUndefined)
	}
	switch x := v.Value().(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	}
	return 0, fmt.Errorf("script: %s: %s is %s, not a number", p.name, name, v.ValueType())
}

// Vec3 reads an array of three numbers.
func (p *Program) Vec3(name string) (vmath.Vec3, error) {
	v := p.compiled.Get(name)
	if v.IsUndefined() {
		return vmath.Vec3{}, fmt.Errorf("script: %s: %s: %w", p.name, name, ErrUndefined)
	}
	arr := v.Array()
	if len(arr) != 3 {
		return vmath.Vec3{}, fmt.Errorf("script: %s: %s must be an array of 3 numbers", p.name, name)
	}
	var out vmath.Vec3
	for i, e := range arr {
		switch x := e.(type) {
		case float64:
			out[i] = float32(x)
		case int64:
			out[i] = float32(x)
		default:
			return vmath.Vec3{}, fmt.Errorf("script: %s: %s[%d] is not a number", p.name, name, i)
		}
	}
	return out, nil
}

// Vec3Value converts v to a value Run accepts.
func Vec3Value(v vmath.Vec3) []any {
	return []any{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Params converts a float map to a value Run accepts.
func Params(m map[string]float64) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
