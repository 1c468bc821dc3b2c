// Package scene turns a match snapshot into point-sprite buffers and HUD
// text. It knows nothing about OpenGL; the desktop shell uploads what it
// builds.
package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"baseball/internal/geom"
)

// Stride is the float count of one sprite: x, y, size, r, g, b, a, rotation.
const Stride = 8

// Color is a straight-alpha colour in [0,1].
type Color struct {
	R, G, B, A float32
}

func RGB8(r, g, b uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: 1}
}

func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Scale multiplies the rgb channels, used for glow pre-multiplication.
func (c Color) Scale(k float32) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

var Palette = struct {
	Sky       Color
	GrassA    Color
	GrassB    Color
	Dirt      Color
	Track     Color
	Wall      Color
	Chalk     Color
	Base      Color
	Mound     Color
	Zone      Color
	Shadow    Color
	Ball      Color
	Defense   Color
	Pitcher   Color
	Chaser    Color
	Offense   Color
	Batter    Color
	Cursor    Color
	CursorHot Color
	Text      Color
	TextDim   Color
	Accent    Color
	Alert     Color
}{
	Sky:       RGB8(28, 44, 70),
	GrassA:    RGB8(62, 140, 70),
	GrassB:    RGB8(54, 126, 62),
	Dirt:      RGB8(178, 132, 86),
	Track:     RGB8(150, 110, 72),
	Wall:      RGB8(24, 64, 44),
	Chalk:     RGB8(240, 240, 232),
	Base:      RGB8(250, 250, 250),
	Mound:     RGB8(190, 144, 96),
	Zone:      RGB8(255, 230, 120),
	Shadow:    Color{R: 0, G: 0, B: 0, A: 0.35},
	Ball:      RGB8(255, 255, 255),
	Defense:   RGB8(40, 90, 200),
	Pitcher:   RGB8(70, 130, 240),
	Chaser:    RGB8(120, 200, 255),
	Offense:   RGB8(210, 50, 50),
	Batter:    RGB8(240, 90, 60),
	Cursor:    RGB8(255, 220, 90),
	CursorHot: RGB8(120, 255, 120),
	Text:      RGB8(255, 255, 255),
	TextDim:   RGB8(170, 170, 170),
	Accent:    RGB8(255, 255, 100),
	Alert:     RGB8(255, 90, 90),
}

// Buffer accumulates sprites in Stride-float records.
type Buffer []float32

func (b Buffer) Add(p mgl64.Vec2, size float64, c Color, rot float64) Buffer {
	return append(b, float32(p.X()), float32(p.Y()), float32(size), c.R, c.G, c.B, c.A, float32(rot))
}

func (b Buffer) Len() int { return len(b) / Stride }

// Sprite returns record i as its position, size and colour.
func (b Buffer) Sprite(i int) (mgl64.Vec2, float64, Color) {
	r := b[i*Stride : (i+1)*Stride]
	return mgl64.Vec2{float64(r[0]), float64(r[1])}, float64(r[2]), Color{R: r[3], G: r[4], B: r[5], A: r[6]}
}

// depthSorter collects sprites with a depth key and emits them far to near.
type depthSorter struct {
	items []depthItem
}

type depthItem struct {
	depth float64
	rec   [Stride]float32
}

func (d *depthSorter) add(depth float64, p mgl64.Vec2, size float64, c Color) {
	var it depthItem
	it.depth = depth
	copy(it.rec[:], Buffer(nil).Add(p, size, c, 0))
	d.items = append(d.items, it)
}

func (d *depthSorter) flush(dst Buffer) Buffer {
	sort.SliceStable(d.items, func(i, j int) bool { return d.items[i].depth < d.items[j].depth })
	for _, it := range d.items {
		dst = append(dst, it.rec[:]...)
	}
	d.items = d.items[:0]
	return dst
}

// NewFlat is the default 2.5D projection.
func NewFlat() geom.Flat { return geom.Flat{Lift: 1} }

// Bounds returns the screen rectangle a projector maps the field into,
// used to fit the camera. The behind view is framed for a field-sized
// screen.
func Bounds(f geom.Field, pr geom.Projector) (min, max mgl64.Vec2) {
	if _, ok := pr.(geom.Behind); ok {
		return mgl64.Vec2{0, 0}, mgl64.Vec2{f.W, f.H}
	}
	min = mgl64.Vec2{math.Inf(1), math.Inf(1)}
	max = mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, c := range [...]mgl64.Vec2{{0, 0}, {f.W, 0}, {0, f.H}, {f.W, f.H}} {
		p, _ := geom.Ground(pr, c)
		min = mgl64.Vec2{math.Min(min.X(), p.X()), math.Min(min.Y(), p.Y())}
		max = mgl64.Vec2{math.Max(max.X(), p.X()), math.Max(max.Y(), p.Y())}
	}
	return min, max
}
