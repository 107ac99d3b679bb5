package gfx

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/milk9111/porp/ids"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func quad() ([]Vertex, []Index) {
	return []Vertex{
			{Position: [3]float32{-0.5, -0.5, 0}, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{0.5, -0.5, 0}, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{0.5, 0.5, 0}, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{-0.5, 0.5, 0}, TexCoord: [2]float32{0, 1}},
		},
		[]Index{0, 1, 2, 0, 2, 3}
}

func TestRenderQueueDrainOrder(t *testing.T) {
	q := NewRenderQueue()
	v, i := quad()
	q.PushVertices(1, v)
	q.PushVertices(2, v[:3])
	q.PushIndices(1, i)
	q.PushTexture(1, []byte{1})
	q.PushDrawMethod(1, Neither())
	q.PushDrawMethod(2, CullOnly(CullClockwise))
	require.Equal(t, 6, q.Len())

	data := q.Drain()
	require.Equal(t, 6, data.Len())
	require.Equal(t, []uint64{1, 2}, []uint64{data.Vertices[0].Part, data.Vertices[1].Part})
	require.Equal(t, CullOnly(CullClockwise), data.DrawMethods[1].Method)

	require.Zero(t, q.Len())
	require.Zero(t, q.Drain().Len())
}

func TestRenderQueueApply(t *testing.T) {
	a := ids.NewAllocator()
	parts := map[uint64]*Entity{0: NewEntity(a), 7: NewEntity(a)}
	r := NewRecorder()
	q := NewRenderQueue()

	v, i := quad()
	tex := testPNG(t, 4, 2)
	for _, part := range []uint64{0, 7} {
		q.PushVertices(part, v)
		q.PushIndices(part, i)
		q.PushTexture(part, tex)
		q.PushDrawMethod(part, Both(DepthIfLess, CullCounterClockwise))
	}

	require.NoError(t, q.Apply(r, parts))
	require.Zero(t, q.Len())

	for _, part := range []uint64{0, 7} {
		e := parts[part].IDs()
		got, ok := r.Vertices(e.Vertex)
		require.True(t, ok)
		require.Equal(t, v, got)
		gotIdx, ok := r.Indices(e.Index)
		require.True(t, ok)
		require.Equal(t, i, gotIdx)
		info, ok := r.Texture(e.Texture)
		require.True(t, ok)
		require.Equal(t, TextureInfo{Width: 4, Height: 2, Format: "png"}, info)
		m, ok := r.DrawMethod(e.DrawParameter)
		require.True(t, ok)
		require.Equal(t, Both(DepthIfLess, CullCounterClockwise), m)
	}

	// Applying an already drained queue changes nothing.
	require.NoError(t, q.Apply(r, parts))
}

func TestRenderQueueApplyUnknownPart(t *testing.T) {
	a := ids.NewAllocator()
	parts := map[uint64]*Entity{0: NewEntity(a)}
	r := NewRecorder()
	q := NewRenderQueue()

	v, _ := quad()
	q.PushVertices(3, v)
	q.PushVertices(0, v)

	err := q.Apply(r, parts)
	require.ErrorIs(t, err, ErrUnknownPart)
	require.Contains(t, err.Error(), "part 3")

	// The known part is still applied and the queue is drained.
	_, ok := r.Vertices(parts[0].IDs().Vertex)
	require.True(t, ok)
	require.Zero(t, q.Len())
}
