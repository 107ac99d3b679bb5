package beings

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/vmath"
)

func TestSceneBuildsLevelOnFirstTick(t *testing.T) {
	h := newHarness(t)
	s, err := NewScene(h.game, "flat")
	require.NoError(t, err)
	reg := h.game.World().Beings()
	require.Equal(t, 2, reg.Len())
	require.Equal(t, "flat", s.Level())

	h.step(t, 1)
	require.Equal(t, 2+16, reg.Len())
	require.Zero(t, reg.Pending())
	require.Equal(t, 16, s.Layer().Children())

	tiles := s.Layer().Tiles()
	require.Len(t, tiles, 16)
	require.Equal(t, vmath.Vec3{-1.5, 0, -1.5}, tiles[0].Position())
	require.Equal(t, vmath.Vec3{1.5, 0, 1.5}, tiles[15].Position())

	// One uploaded texture per palette entry.
	textures := map[ids.ID]bool{}
	for _, tile := range tiles {
		textures[tile.entity.IDs().Texture] = true
	}
	require.Len(t, textures, 2)

	rec := gfx.NewRecorder()
	require.NoError(t, h.game.Render(rec))
	require.Len(t, rec.Calls(), 16)
}

func TestSceneReloadSwapsBetweenTicks(t *testing.T) {
	h := newHarness(t)
	s, err := NewScene(h.game, "flat")
	require.NoError(t, err)
	reg := h.game.World().Beings()
	h.step(t, 1)

	old := s.Layer().Tiles()[0].ModelID()
	require.NoError(t, s.Reload("iso"))
	require.Equal(t, "iso", s.Level())
	require.Equal(t, 2+16, reg.Len())

	h.step(t, 1)
	require.Equal(t, 2+64+2, reg.Len())
	require.Equal(t, "iso", s.Layer().Content().Level.Name)

	// Transforms of the removed tiles go away on the following tick.
	_, err = h.game.Transforms().Matrix(gfx.Model, old)
	require.NoError(t, err)
	h.step(t, 1)
	_, err = h.game.Transforms().Matrix(gfx.Model, old)
	require.ErrorIs(t, err, gfx.ErrUnknownTransform)

	rec := gfx.NewRecorder()
	require.NoError(t, h.game.Render(rec))
	require.Len(t, rec.Calls(), 64+2)
}

func TestSceneKeepsLevelOnBadReload(t *testing.T) {
	h := newHarness(t)
	s, err := NewScene(h.game, "flat")
	require.NoError(t, err)
	reg := h.game.World().Beings()
	h.step(t, 1)

	require.Error(t, s.Reload("no_such_level"))
	require.Equal(t, "flat", s.Level())

	s.Layer().Request(Content{})
	h.step(t, 2)
	require.Equal(t, 2+16, reg.Len())
	require.Equal(t, "flat", s.Layer().Content().Level.Name)
}

func TestLayerRequestReplacesPending(t *testing.T) {
	h := newHarness(t)
	flat, err := LoadContent("flat")
	require.NoError(t, err)
	iso, err := LoadContent("iso")
	require.NoError(t, err)

	cam := NewCamera(h.game.Allocator(), h.game.Transforms(), topDown(), 1)
	layer := NewLayer(cam.Entity(), nil, quietLogger())
	h.game.World().Beings().Spawn(layer)

	layer.Request(iso)
	layer.Request(flat)
	h.step(t, 1)
	require.Equal(t, "flat", layer.Content().Level.Name)
	require.Equal(t, 1+16, h.game.World().Beings().Len())
}

func TestSceneHandleChange(t *testing.T) {
	h := newHarness(t)
	s, err := NewScene(h.game, "flat")
	require.NoError(t, err)

	cases := []struct {
		name string
		path string
		want string
	}{
		{"ignored", "notes/readme.md", "flat"},
		{"level_file", "levels/iso.yaml", "iso"},
		{"prefab_keeps_level", "prefabs/tile.yaml", "iso"},
		{"script_keeps_level", "prefabs/scripts/spinner.tengo", "iso"},
		{"other_level", "/abs/path/levels/flat.yaml", "flat"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.NoError(t, s.HandleChange(c.path))
			require.Equal(t, c.want, s.Level())
		})
	}
}
