package geom

import "github.com/go-gl/mathgl/mgl64"

// Projector maps a field point (x, y on the ground, z height) to screen
// pixels plus a size multiplier for sprites drawn at that point.
type Projector interface {
	Project(p mgl64.Vec3) (mgl64.Vec2, float64)
}

// Flat is the doodle 2.5D view: the field is drawn top-down and height
// lifts a sprite up the screen.
type Flat struct {
	Lift float64 // screen pixels per unit of height
}

func (f Flat) Project(p mgl64.Vec3) (mgl64.Vec2, float64) {
	return mgl64.Vec2{p.X(), p.Y() - p.Z()*f.Lift}, 1
}

// Behind is a pinhole camera placed behind home plate looking out toward
// second base. Depth is measured from the plate toward the outfield.
type Behind struct {
	Field   Field
	Back    float64 // camera distance behind the plate
	Height  float64 // camera height above the ground
	Focal   float64
	Horizon float64 // screen y of the vanishing line
	MinD    float64
}

// NewBehind builds a camera that puts the plate near the bottom of a
// screen the same size as the field.
func NewBehind(f Field) Behind {
	back := 0.35 * f.H
	focal := 1.3 * back
	return Behind{
		Field:   f,
		Back:    back,
		Height:  0.65 * f.H * back / focal,
		Focal:   focal,
		Horizon: 0.25 * f.H,
		MinD:    0.05 * f.H,
	}
}

func (b Behind) Project(p mgl64.Vec3) (mgl64.Vec2, float64) {
	home := b.Field.Home()
	d := b.Back + (home.Y() - p.Y())
	if d < b.MinD {
		d = b.MinD
	}
	s := b.Focal / d
	x := b.Field.W*0.5 + (p.X()-home.X())*s
	y := b.Horizon + (b.Height-p.Z())*s
	return mgl64.Vec2{x, y}, s
}

// Ground projects a point lying on the field surface.
func Ground(pr Projector, p mgl64.Vec2) (mgl64.Vec2, float64) {
	return pr.Project(p.Vec3(0))
}
