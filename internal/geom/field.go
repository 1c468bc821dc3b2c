package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Default field size in field pixels. 3:2 so the diamond and both
// foul lines fit with room for the outfield fence.
const (
	DefaultWidth  = 900
	DefaultHeight = 600
)

// Role identifies one of the six defenders.
type Role int

const (
	Pitcher Role = iota
	Catcher
	FirstBase
	SecondBase
	ThirdBase
	Shortstop
)

// Roles lists every defender in lineup order.
var Roles = [...]Role{Pitcher, Catcher, FirstBase, SecondBase, ThirdBase, Shortstop}

func (r Role) String() string {
	switch r {
	case Pitcher:
		return "P"
	case Catcher:
		return "C"
	case FirstBase:
		return "1B"
	case SecondBase:
		return "2B"
	case ThirdBase:
		return "3B"
	case Shortstop:
		return "SS"
	}
	return "?"
}

// Field maps normalized layout coordinates onto a W x H playing surface.
// x grows to the right, y grows toward home plate.
type Field struct {
	W, H float64
}

func NewField(w, h float64) Field {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return Field{W: w, H: h}
}

// At converts normalized (0..1) coordinates to field pixels.
func (f Field) At(nx, ny float64) mgl64.Vec2 {
	return mgl64.Vec2{nx * f.W, ny * f.H}
}

// Home is the plate, where the batter stands and runners score.
func (f Field) Home() mgl64.Vec2 { return f.At(0.5, 0.78) }

// Mound is the fixed release point of every pitch.
func (f Field) Mound() mgl64.Vec2 { return f.At(0.5, 0.18) }

// Base returns the coordinate of base n. 0 and anything past third is home.
func (f Field) Base(n int) mgl64.Vec2 {
	switch n {
	case 1:
		return f.At(0.78, 0.62)
	case 2:
		return f.At(0.52, 0.38)
	case 3:
		return f.At(0.22, 0.62)
	}
	return f.Home()
}

// FielderHome is where a defender stands at the start of a half.
func (f Field) FielderHome(r Role) mgl64.Vec2 {
	switch r {
	case Pitcher:
		return f.At(0.5, 0.22)
	case Catcher:
		return f.At(0.5, 0.82)
	case FirstBase:
		return f.At(0.78, 0.62)
	case SecondBase:
		return f.At(0.52, 0.38)
	case ThirdBase:
		return f.At(0.22, 0.62)
	case Shortstop:
		return f.At(0.40, 0.46)
	}
	return f.Home()
}

// Band is a closed lateral interval in normalized field units.
type Band struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether field-pixel x lies strictly inside the band.
func (f Field) Contains(b Band, x float64) bool {
	return x > b.Min*f.W && x < b.Max*f.W
}

// Lerp samples the band at t in [0,1] and returns field pixels.
func (f Field) Lerp(b Band, t float64) float64 {
	return (b.Min + (b.Max-b.Min)*t) * f.W
}

// Dist2D is the horizontal (ground plane) distance between two points.
func Dist2D(a, b mgl64.Vec2) float64 {
	return a.Sub(b).Len()
}

// Toward moves from cur to target by at most step and reports arrival.
func Toward(cur, target mgl64.Vec2, step float64) (mgl64.Vec2, bool) {
	d := target.Sub(cur)
	l := d.Len()
	if l <= step || l == 0 {
		return target, true
	}
	return cur.Add(d.Mul(step / l)), false
}

// Ease moves cur a fraction t of the way to target.
func Ease(cur, target mgl64.Vec2, t float64) mgl64.Vec2 {
	t = math.Max(0, math.Min(1, t))
	return cur.Add(target.Sub(cur).Mul(t))
}

// ClampLen limits v to magnitude max, keeping direction.
func ClampLen(v mgl64.Vec2, max float64) mgl64.Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
