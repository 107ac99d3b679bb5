package beings

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/porp/assets"
	"github.com/milk9111/porp/ecs"
	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/prefabs"
	"github.com/milk9111/porp/script"
	"github.com/milk9111/porp/vmath"
)

const (
	KindSpinner ecs.Kind = "spinner"

	PartSpinner uint64 = 0
)

// spinnerGlobals are the variables a spinner script reads and writes.
var spinnerGlobals = map[string]any{
	"tick":     0,
	"dt":       0.0,
	"position": []any{0.0, 0.0, 0.0},
	"params":   map[string]any{},
	"rotation": nil,
	"offset":   nil,
}

// SpinnerKind is the shared, read-only part of every spinner: its spec,
// compiled script and texture.
type SpinnerKind struct {
	Spec    prefabs.SpinnerSpec
	Program *script.Program
	Texture []byte
	Method  gfx.DrawMethod
}

// LoadSpinnerKind reads spinner.yaml and compiles its script.
func LoadSpinnerKind() (*SpinnerKind, error) {
	spec, err := prefabs.LoadSpinnerSpec()
	if err != nil {
		return nil, err
	}
	return NewSpinnerKind(*spec)
}

func NewSpinnerKind(spec prefabs.SpinnerSpec) (*SpinnerKind, error) {
	prog, err := script.Load(spec.Script, spinnerGlobals)
	if err != nil {
		return nil, err
	}
	method, err := drawMethod(spec.Draw)
	if err != nil {
		return nil, err
	}
	tex, err := assets.Texture(assets.TextureSpec{
		Size:   spec.Texture.Size,
		Border: spec.Texture.Border,
		Fill:   spec.Color.NRGBA(),
		Edge:   spec.Texture.Edge.Color,
	})
	if err != nil {
		return nil, fmt.Errorf("beings: spinner texture: %w", err)
	}
	return &SpinnerKind{Spec: spec, Program: prog, Texture: tex, Method: method}, nil
}

type spinnerPose struct {
	rotation vmath.Vec3
	offset   vmath.Vec3
}

// Spinner is a cube whose motion comes from a script. The script runs in
// Tick, since each run mutates the program's globals.
type Spinner struct {
	ecs.Base
	kind    *SpinnerKind
	program *script.Program
	entity  *gfx.Entity
	log     *logrus.Entry
	pose    spinnerPose
	failed  bool
}

func NewSpinner(a *ids.Allocator, t *gfx.Transforms, camera *gfx.Entity, kind *SpinnerKind, position vmath.Vec3, log *logrus.Entry) (*Spinner, error) {
	e := gfx.NewEntity(a)
	if err := e.UseOldID(camera, ids.Perspective); err != nil {
		return nil, err
	}
	if err := e.UseOldID(camera, ids.View); err != nil {
		return nil, err
	}

	s := &Spinner{
		Base:    ecs.NewBase(position),
		kind:    kind,
		program: kind.Program.Clone(),
		entity:  e,
		log:     log,
	}
	if err := s.AddPart(PartSpinner, e); err != nil {
		return nil, err
	}

	verts, idx := Cube()
	q := s.RenderQueue()
	q.PushVertices(PartSpinner, verts)
	q.PushIndices(PartSpinner, idx)
	q.PushTexture(PartSpinner, kind.Texture)
	q.PushDrawMethod(PartSpinner, kind.Method)

	s.writeModel(t)
	return s, nil
}

func (s *Spinner) Kind() ecs.Kind { return KindSpinner }

func (s *Spinner) ModelID() ids.ID { return s.entity.IDs().Model }

func (s *Spinner) Model() vmath.Mat4 {
	size := s.kind.Spec.Size
	return vmath.Translation(s.Position().Add(s.pose.offset)).
		Mul(vmath.Rotation(s.pose.rotation)).
		Mul(vmath.Scale(vmath.Vec3{size, size, size}))
}

func (s *Spinner) TickPrep(float32, *ecs.World, *gfx.Transforms) {}

func (s *Spinner) run(dt float32, tick uint64) (spinnerPose, error) {
	err := s.program.Run(context.Background(), map[string]any{
		"tick":     int64(tick),
		"dt":       float64(dt),
		"position": script.Vec3Value(s.Position()),
		"params":   script.Params(s.kind.Spec.Params),
	})
	if err != nil {
		return spinnerPose{}, err
	}
	rot, err := s.program.Vec3("rotation")
	if err != nil {
		return spinnerPose{}, err
	}
	off, err := s.program.Vec3("offset")
	if err != nil {
		return spinnerPose{}, err
	}
	return spinnerPose{rotation: rot, offset: off}, nil
}

// Tick runs the script and writes the new model. A failing script freezes
// the spinner and is logged once.
func (s *Spinner) Tick(w *ecs.World, t *gfx.Transforms, _ *ids.Allocator) {
	if s.failed {
		return
	}
	p, err := s.run(float32(w.Timestep().Seconds()), w.TickNumber())
	if err != nil {
		s.failed = true
		if s.log != nil {
			s.log.WithError(err).WithField("script", s.program.Name()).Error("spinner script failed")
		}
		return
	}
	s.pose = p
	s.writeModel(t)
}

func (s *Spinner) writeModel(t *gfx.Transforms) {
	t.Set(gfx.Model, s.ModelID(), s.Model())
}
