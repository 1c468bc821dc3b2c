package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"baseball/internal/geom"
	"baseball/internal/match"
)

// TileSize is the spacing of ground tiles in field pixels.
const TileSize = 20

// maxTileScale drops ground tiles that sit almost under the camera.
const maxTileScale = 3.0

// Ground builds the static turf: striped grass, the dirt infield and the
// warning track behind the fence. It only depends on the field and view,
// so callers cache it.
func Ground(f geom.Field, t match.Tuning, pr geom.Projector) Buffer {
	var b Buffer
	fence := t.FenceDepth * f.H
	for y := TileSize / 2.0; y < f.H; y += TileSize {
		for x := TileSize / 2.0; x < f.W; x += TileSize {
			p := mgl64.Vec2{x, y}
			c := Palette.GrassA
			if int(y/TileSize)%2 == 1 {
				c = Palette.GrassB
			}
			switch {
			case y < fence:
				c = Palette.Wall
			case y < fence+TileSize:
				c = Palette.Track
			case onDirt(f, p):
				c = Palette.Dirt
			}
			sp, s := geom.Ground(pr, p)
			if s > maxTileScale {
				continue
			}
			b = b.Add(sp, (TileSize+1)*s, c, 0)
		}
	}
	return b
}

// onDirt reports whether p is on the skinned infield: inside the base path
// diamond, or near a base or the mound.
func onDirt(f geom.Field, p mgl64.Vec2) bool {
	quad := [4]mgl64.Vec2{f.Home(), f.Base(1), f.Base(2), f.Base(3)}
	if insideConvex(quad[:], p) {
		return true
	}
	for _, c := range append(quad[:], f.Mound()) {
		if geom.Dist2D(c, p) < 0.05*f.H {
			return true
		}
	}
	return false
}

func insideConvex(poly []mgl64.Vec2, p mgl64.Vec2) bool {
	sign := 0.0
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		cross := (b.X()-a.X())*(p.Y()-a.Y()) - (b.Y()-a.Y())*(p.X()-a.X())
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
		} else if math.Signbit(cross) != math.Signbit(sign) {
			return false
		}
	}
	return true
}

// Marks builds the chalk: foul lines, the fence line, the bases, the plate,
// the mound and the strike zone guide.
func Marks(f geom.Field, t match.Tuning, pr geom.Projector) Buffer {
	var b Buffer
	home := f.Home()
	fence := t.FenceDepth * f.H

	for _, n := range []int{1, 3} {
		dir := f.Base(n).Sub(home).Normalize()
		for d := 12.0; ; d += 8 {
			p := home.Add(dir.Mul(d))
			if p.X() < 0 || p.X() > f.W || p.Y() < fence {
				break
			}
			sp, s := geom.Ground(pr, p)
			b = b.Add(sp, 3*s, Palette.Chalk, 0)
		}
	}
	for x := 4.0; x < f.W; x += 10 {
		sp, s := pr.Project(mgl64.Vec3{x, fence, t.FenceHeight})
		b = b.Add(sp, 4*s, Palette.Chalk.WithAlpha(0.8), 0)
	}
	for y := fence + 4; y < t.FoulDepth*f.H; y += 10 {
		for _, bx := range []float64{t.FairBand.Min, t.FairBand.Max} {
			sp, s := geom.Ground(pr, mgl64.Vec2{bx * f.W, y})
			b = b.Add(sp, 2*s, Palette.Chalk.WithAlpha(0.25), 0)
		}
	}

	mp, ms := geom.Ground(pr, f.Mound())
	b = b.Add(mp, 26*ms, Palette.Mound, 0)
	for n := 1; n <= 3; n++ {
		sp, s := geom.Ground(pr, f.Base(n))
		b = b.Add(sp, 12*s, Palette.Base, math.Pi/4)
	}
	hp, hs := geom.Ground(pr, home)
	b = b.Add(hp, 14*hs, Palette.Base, 0)

	zy := t.PlateDepth * f.H
	for x := t.StrikeZone.Min * f.W; x <= t.StrikeZone.Max*f.W; x += 6 {
		sp, s := geom.Ground(pr, mgl64.Vec2{x, zy})
		b = b.Add(sp, 2*s, Palette.Zone.WithAlpha(0.6), 0)
	}
	return b
}
