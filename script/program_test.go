package script

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/porp/vmath"
)

var spinnerGlobals = map[string]any{
	"tick":     0,
	"dt":       0.0,
	"position": []any{0.0, 0.0, 0.0},
	"params":   map[string]any{},
	"rotation": nil,
	"offset":   nil,
}

func TestCompileAndRun(t *testing.T) {
	p, err := Compile("double", []byte(`out = value * 2`), map[string]any{"value": 0, "out": nil})
	require.NoError(t, err)

	require.NoError(t, p.Run(context.Background(), map[string]any{"value": 21}))
	got, err := p.Float("out")
	require.NoError(t, err)
	require.Equal(t, 42.0, got)
}

func TestCompileError(t *testing.T) {
	_, err := Compile("broken", []byte(`out = (`), map[string]any{"out": nil})
	require.ErrorContains(t, err, "script: compile broken")
}

func TestOutputs(t *testing.T) {
	p, err := Compile("outputs", []byte(`
v = [1, 2.5, -3]
bad = [1, "x", 3]
short = [1, 2]
`), map[string]any{"v": nil, "bad": nil, "short": nil, "unset": nil})
	require.NoError(t, err)
	require.NoError(t, p.Run(context.Background(), nil))

	v, err := p.Vec3("v")
	require.NoError(t, err)
	require.Equal(t, vmath.Vec3{1, 2.5, -3}, v)

	_, err = p.Vec3("bad")
	require.ErrorContains(t, err, "bad[1]")
	_, err = p.Vec3("short")
	require.Error(t, err)
	_, err = p.Vec3("unset")
	require.ErrorIs(t, err, ErrUndefined)
	_, err = p.Float("unset")
	require.ErrorIs(t, err, ErrUndefined)
}

func TestStatePersistsPerClone(t *testing.T) {
	p, err := Compile("counter", []byte(`
if is_undefined(state.n) { state.n = 0 }
state.n = state.n + 1
n = state.n
`), map[string]any{"n": nil})
	require.NoError(t, err)

	a, b := p.Clone(), p.Clone()
	for i := 0; i < 3; i++ {
		require.NoError(t, a.Run(context.Background(), nil))
	}
	require.NoError(t, b.Run(context.Background(), nil))

	n, err := a.Float("n")
	require.NoError(t, err)
	require.Equal(t, 3.0, n)
	n, err = b.Float("n")
	require.NoError(t, err)
	require.Equal(t, 1.0, n)
}

func TestSpinnerScript(t *testing.T) {
	p, err := Load("spinner", spinnerGlobals)
	require.NoError(t, err)
	require.Equal(t, "spinner", p.Name())

	require.NoError(t, p.Run(context.Background(), map[string]any{
		"tick":     60,
		"dt":       1.0 / 60.0,
		"position": Vec3Value(vmath.Vec3{0, 0, 0}),
		"params":   Params(map[string]float64{"speed": 2, "bob": 0}),
	}))

	rot, err := p.Vec3("rotation")
	require.NoError(t, err)
	require.InDelta(t, 2.0, rot[1], 1e-5)

	off, err := p.Vec3("offset")
	require.NoError(t, err)
	require.Equal(t, vmath.Vec3{0, 0, 0}, off)
}

func TestClonesRunConcurrently(t *testing.T) {
	p, err := Load("spinner", spinnerGlobals)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		c := p.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tick := 0; tick < 50 && errs[i] == nil; tick++ {
				errs[i] = c.Run(context.Background(), map[string]any{
					"tick":     tick,
					"dt":       1.0 / 60.0,
					"position": Vec3Value(vmath.Vec3{float32(i), 0, 0}),
					"params":   Params(map[string]float64{"speed": 1, "bob": 0.5}),
				})
			}
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
}
