// Package assets generates the textures the demo uploads. Tiles are plain
// colors with a darker frame so neighbouring columns stay readable.
package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
)

// TextureSpec describes a framed square texture.
type TextureSpec struct {
	Size   int
	Border int
	Fill   color.Color
	Edge   color.Color
}

// Framed renders s as an image.
func Framed(s TextureSpec) (*image.NRGBA, error) {
	if s.Size < 1 {
		return nil, fmt.Errorf("assets: texture size %d", s.Size)
	}
	if s.Border < 0 || 2*s.Border >= s.Size {
		return nil, fmt.Errorf("assets: border %d does not fit size %d", s.Border, s.Size)
	}
	fill := s.Fill
	if fill == nil {
		fill = colornames.White
	}
	edge := s.Edge
	if edge == nil {
		edge = Shade(fill, 0.5)
	}

	img := image.NewNRGBA(image.Rect(0, 0, s.Size, s.Size))
	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			c := fill
			if x < s.Border || y < s.Border || x >= s.Size-s.Border || y >= s.Size-s.Border {
				c = edge
			}
			img.Set(x, y, c)
		}
	}
	return img, nil
}

// EncodePNG encodes img for Renderer.AllocateTexture.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("assets: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Texture renders and encodes s.
func Texture(s TextureSpec) ([]byte, error) {
	img, err := Framed(s)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

// Shade scales the color channels of c by f, keeping alpha.
func Shade(c color.Color, f float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	scale := func(v uint8) uint8 {
		s := float64(v) * f
		if s > 255 {
			return 255
		}
		return uint8(s)
	}
	return color.NRGBA{R: scale(n.R), G: scale(n.G), B: scale(n.B), A: n.A}
}

// Named looks up an SVG color name.
func Named(name string) (color.Color, bool) {
	c, ok := colornames.Map[strings.ToLower(name)]
	return c, ok
}

// Cache memoizes encoded textures by key.
type Cache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewCache() *Cache {
	return &Cache{items: make(map[string][]byte)}
}

// Get returns the bytes stored under key, building them on first use.
func (c *Cache) Get(key string, build func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.items[key]; ok {
		return b, nil
	}
	b, err := build()
	if err != nil {
		return nil, err
	}
	c.items[key] = b
	return b, nil
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
