package gfx

import (
	"fmt"
	"strings"
)

// DepthTest selects the depth comparison used when drawing.
type DepthTest uint8

const (
	DepthNone DepthTest = iota
	DepthIfLess
)

// CullMode selects which triangle winding is discarded.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullClockwise
	CullCounterClockwise
)

// DrawMethod is the draw-parameter set a renderer keys by draw parameter id.
type DrawMethod struct {
	Depth DepthTest
	Cull  CullMode
}

// Both enables a depth test and culling.
func Both(d DepthTest, c CullMode) DrawMethod { return DrawMethod{Depth: d, Cull: c} }

// DepthOnly enables a depth test without culling.
func DepthOnly(d DepthTest) DrawMethod { return DrawMethod{Depth: d} }

// CullOnly enables culling without a depth test.
func CullOnly(c CullMode) DrawMethod { return DrawMethod{Cull: c} }

// Neither draws every triangle in submission order.
func Neither() DrawMethod { return DrawMethod{} }

func (d DepthTest) String() string {
	switch d {
	case DepthIfLess:
		return "if_less"
	default:
		return "none"
	}
}

func (c CullMode) String() string {
	switch c {
	case CullClockwise:
		return "clockwise"
	case CullCounterClockwise:
		return "counter_clockwise"
	default:
		return "none"
	}
}

func (m DrawMethod) String() string {
	return fmt.Sprintf("depth=%s cull=%s", m.Depth, m.Cull)
}

// ParseCullMode accepts the names produced by CullMode.String.
func ParseCullMode(s string) (CullMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CullNone, nil
	case "clockwise", "cw":
		return CullClockwise, nil
	case "counter_clockwise", "ccw":
		return CullCounterClockwise, nil
	}
	return CullNone, fmt.Errorf("gfx: unknown cull mode %q", s)
}
