package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphgraph/surface"
)

// Heightmap is a top-down texture of a sampled surface. Pixel (u, v) shows the
// sample's y coordinate on a blue-to-yellow ramp.
type Heightmap struct {
	texture rl.Texture2D
	pixels  []color.RGBA
	size    int32
	loaded  bool
}

// NewHeightmap allocates a size×size texture. Requires an open window.
func NewHeightmap(size int32) *Heightmap {
	img := rl.GenImageColor(int(size), int(size), rl.Black)
	h := &Heightmap{
		texture: rl.LoadTextureFromImage(img),
		pixels:  make([]color.RGBA, size*size),
		size:    size,
		loaded:  true,
	}
	rl.SetTextureFilter(h.texture, rl.FilterBilinear)
	rl.UnloadImage(img)
	return h
}

// Update uploads positions laid out row-major with the given resolution.
// Resolution must equal the heightmap size.
func (h *Heightmap) Update(positions []surface.Point3) {
	for i := range h.pixels {
		if i >= len(positions) {
			h.pixels[i] = color.RGBA{A: 255}
			continue
		}
		h.pixels[i] = heightColor(float32(positions[i].Y))
	}
	rl.UpdateTexture(h.texture, h.pixels)
}

// Draw renders the texture scaled to a square of side px at (x, y).
func (h *Heightmap) Draw(x, y, px float32) {
	src := rl.Rectangle{Width: float32(h.size), Height: float32(h.size)}
	dst := rl.Rectangle{X: x, Y: y, Width: px, Height: px}
	rl.DrawTexturePro(h.texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Size returns the texture edge in pixels.
func (h *Heightmap) Size() int32 { return h.size }

// Unload frees the texture.
func (h *Heightmap) Unload() {
	if h.loaded {
		rl.UnloadTexture(h.texture)
		h.loaded = false
	}
}

// heightColor maps y in [-1,1] from deep blue through teal to yellow.
func heightColor(y float32) color.RGBA {
	t := y*0.5 + 0.5
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if t < 0.5 {
		k := t * 2
		return color.RGBA{R: 20, G: uint8(40 + k*120), B: uint8(120 + k*60), A: 255}
	}
	k := (t - 0.5) * 2
	return color.RGBA{R: uint8(20 + k*220), G: uint8(160 + k*70), B: uint8(180 - k*140), A: 255}
}
