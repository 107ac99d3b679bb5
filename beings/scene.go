package beings

import (
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/porp/assets"
	"github.com/milk9111/porp/ecs"
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/levels"
	"github.com/milk9111/porp/prefabs"
)

// Scene spawns the camera and the level layer into a game and reloads the
// level when its files change.
type Scene struct {
	log    *logrus.Entry
	camera *Camera
	layer  *Layer

	CameraID ids.ID
	LayerID  ids.ID

	mu    sync.Mutex
	level string
}

// NewScene spawns the scene into g and queues level for the first tick.
func NewScene(g *ecs.Game, level string) (*Scene, error) {
	log := g.Logger().WithField("component", "scene")

	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}
	content, err := LoadContent(level)
	if err != nil {
		return nil, err
	}

	w := g.World()
	camera := NewCamera(g.Allocator(), g.Transforms(), *spec, w.AspectRatio())
	layer := NewLayer(camera.Entity(), assets.NewCache(), log)
	layer.Request(content)

	s := &Scene{
		log:    log,
		camera: camera,
		layer:  layer,
		level:  content.Level.Name,
	}
	s.CameraID = w.Beings().Spawn(camera)
	s.LayerID = w.Beings().Spawn(layer)
	return s, nil
}

func (s *Scene) Camera() *Camera { return s.camera }

func (s *Scene) Layer() *Layer { return s.layer }

// Level is the name of the last level requested.
func (s *Scene) Level() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Reload rereads prefabs and the named level and swaps them in on the next
// tick. An empty name reloads the current level. On error the running
// level is kept.
func (s *Scene) Reload(level string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level == "" {
		level = s.level
	}
	content, err := LoadContent(level)
	if err != nil {
		s.log.WithError(err).WithField("level", level).Warn("reload skipped")
		return err
	}
	s.level = content.Level.Name
	s.layer.Request(content)
	s.log.WithField("level", s.level).Debug("reload requested")
	return nil
}

// HandleChange reloads after an edit to path. Level files switch to that
// level; prefab and script edits rebuild the current one. Other files are
// ignored.
func (s *Scene) HandleChange(path string) error {
	switch {
	case !prefabs.IsSpecFile(path) && !prefabs.IsScriptFile(path):
		return nil
	case isLevelFile(path):
		return s.Reload(levels.NameOf(path))
	default:
		return s.Reload("")
	}
}

func isLevelFile(path string) bool {
	dir := filepath.Base(filepath.Dir(path))
	return dir == filepath.Base(levels.DiskDir) && prefabs.IsSpecFile(path)
}
