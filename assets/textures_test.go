package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestFramed(t *testing.T) {
	img, err := Framed(TextureSpec{Size: 8, Border: 2, Fill: colornames.Red, Edge: colornames.Black})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	require.Equal(t, color.NRGBA{A: 0xff}, img.NRGBAAt(1, 4))
	require.Equal(t, color.NRGBA{A: 0xff}, img.NRGBAAt(6, 6))
	require.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, img.NRGBAAt(2, 2))
	require.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, img.NRGBAAt(5, 5))
}

func TestFramedDefaultEdgeIsShaded(t *testing.T) {
	img, err := Framed(TextureSpec{Size: 4, Border: 1, Fill: color.NRGBA{R: 200, G: 100, B: 50, A: 255}})
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{R: 100, G: 50, B: 25, A: 255}, img.NRGBAAt(0, 0))
}

func TestFramedRejectsBadSizes(t *testing.T) {
	cases := []TextureSpec{
		{Size: 0},
		{Size: 4, Border: 2},
		{Size: 4, Border: -1},
	}
	for _, s := range cases {
		_, err := Framed(s)
		require.Error(t, err)
	}
}

func TestTextureDecodes(t *testing.T) {
	raw, err := Texture(TextureSpec{Size: 16, Border: 1, Fill: colornames.Steelblue})
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 16, cfg.Width)
}

func TestNamed(t *testing.T) {
	c, ok := Named("ForestGreen")
	require.True(t, ok)
	require.Equal(t, colornames.Forestgreen, c)
	_, ok = Named("not-a-color")
	require.False(t, ok)
}

func TestCache(t *testing.T) {
	c := NewCache()
	calls := 0
	build := func() ([]byte, error) {
		calls++
		return []byte{1}, nil
	}
	for i := 0; i < 3; i++ {
		b, err := c.Get("a", build)
		require.NoError(t, err)
		require.Equal(t, []byte{1}, b)
	}
	require.Equal(t, 1, calls)

	_, err := c.Get("b", func() ([]byte, error) { return nil, errors.New("nope") })
	require.Error(t, err)
	require.Equal(t, 1, c.Len())
}
