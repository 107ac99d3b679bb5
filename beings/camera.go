package beings

import (
	"math"
	"sync/atomic"

	"github.com/milk9111/porp/ecs"
	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/input"
	"github.com/milk9111/porp/prefabs"
	"github.com/milk9111/porp/vmath"
)

const KindCamera ecs.Kind = "camera"

type pose struct {
	position   vmath.Vec3
	pitch, yaw float32 // degrees
}

// Camera owns the perspective and view transforms every drawable shares.
// It has no parts of its own.
type Camera struct {
	ecs.Base
	entity *gfx.Entity
	spec   prefabs.CameraSpec
	pose   pose
	aspect float32

	next atomic.Pointer[pose]
}

// NewCamera allocates the camera ids and writes both transforms.
func NewCamera(a *ids.Allocator, t *gfx.Transforms, spec prefabs.CameraSpec, aspect float32) *Camera {
	c := &Camera{
		Base:   ecs.NewBase(vmath.Vec3(spec.Position.Array())),
		entity: gfx.NewEntity(a),
		spec:   spec,
		pose:   pose{position: vmath.Vec3(spec.Position.Array()), pitch: spec.Pitch, yaw: spec.Yaw},
		aspect: aspect,
	}
	c.writeProjection(t)
	c.writeView(t)
	return c
}

func (c *Camera) Kind() ecs.Kind { return KindCamera }

// Entity is the source of the shared perspective and view ids.
func (c *Camera) Entity() *gfx.Entity { return c.entity }

func (c *Camera) Projection() vmath.Mat4 {
	s := c.spec
	if s.Projection == "orthographic" {
		return vmath.Orthographic(s.Near, s.Far, s.FOV, c.aspect)
	}
	return vmath.Perspective(s.Near, s.Far, s.FOV, c.aspect)
}

func (c *Camera) View() vmath.Mat4 {
	return vmath.ViewDeg(c.pose.pitch, c.pose.yaw, c.pose.position)
}

// TickPrep computes the next pose from the held keys.
func (c *Camera) TickPrep(dt float32, w *ecs.World, _ *gfx.Transforms) {
	ctl := c.spec.Controls
	next := c.pose

	axis := func(pos, neg input.KeyCode) float32 {
		var v float32
		if w.Key(pos).Down() {
			v++
		}
		if w.Key(neg).Down() {
			v--
		}
		return v
	}

	next.yaw += axis(input.KeyE, input.KeyQ) * ctl.TurnSpeed * dt
	next.pitch += axis(input.KeyR, input.KeyF) * ctl.TurnSpeed * dt
	if ctl.MinPitch < ctl.MaxPitch {
		next.pitch = min(max(next.pitch, ctl.MinPitch), ctl.MaxPitch)
	}

	yaw := float64(next.yaw) * math.Pi / 180
	sin, cos := float32(math.Sin(yaw)), float32(math.Cos(yaw))
	forward := vmath.Vec3{-sin, 0, -cos}
	right := vmath.Vec3{cos, 0, -sin}
	move := forward.Scale(axis(input.KeyW, input.KeyS)).Add(right.Scale(axis(input.KeyD, input.KeyA)))
	next.position = next.position.Add(move.Scale(ctl.PanSpeed * dt))

	c.next.Store(&next)
}

// Tick commits the pose and follows display resizes.
func (c *Camera) Tick(w *ecs.World, t *gfx.Transforms, _ *ids.Allocator) {
	if next := c.next.Swap(nil); next != nil && *next != c.pose {
		c.pose = *next
		c.SetPosition(next.position)
		c.writeView(t)
	}
	if aspect := w.AspectRatio(); aspect != c.aspect && aspect > 0 {
		c.aspect = aspect
		c.writeProjection(t)
	}
}

func (c *Camera) writeProjection(t *gfx.Transforms) {
	t.Set(gfx.Perspective, c.entity.IDs().Perspective, c.Projection())
}

func (c *Camera) writeView(t *gfx.Transforms) {
	t.Set(gfx.View, c.entity.IDs().View, c.View())
}
