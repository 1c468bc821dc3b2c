package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"baseball/internal/geom"
	"baseball/internal/match"
)

const (
	playerSize = 16.0
	batterSide = 22.0 // batter stands this far left of the plate
)

// Actors is the per-frame dynamic layer.
type Actors struct {
	Discs Buffer // shadows, players and the ball, far to near
	Glow  Buffer // cursor and contact highlights, additive
}

// Build draws everything that moves. quality is the contact quality the
// batter would get swinging now, used to colour the cursor.
func Build(s match.Snapshot, t match.Tuning, pr geom.Projector, quality float64) Actors {
	var ds depthSorter
	disc := func(p mgl64.Vec3, size float64, c Color) {
		sp, k := pr.Project(p)
		ds.add(p.Y(), sp, size*k, c)
	}
	shadow := func(p mgl64.Vec2, size float64) {
		sp, k := geom.Ground(pr, p)
		// Shadows sort just behind what casts them.
		ds.add(p.Y()-0.01, sp, size*k, Palette.Shadow)
	}

	for i, f := range s.Fielders {
		c := Palette.Defense
		switch {
		case i == s.Chaser:
			c = Palette.Chaser
		case f.Role == geom.Pitcher:
			c = Palette.Pitcher
		}
		shadow(f.Pos, playerSize)
		disc(f.Pos.Vec3(0), playerSize, c)
	}

	atBat := false
	for _, r := range s.Runners {
		c := Palette.Offense
		if r.Base == 0 {
			c = Palette.Batter
			atBat = true
		}
		shadow(r.Pos, playerSize)
		disc(r.Pos.Vec3(0), playerSize, c)
	}
	if !atBat && s.Phase != match.PhaseHalfEnded {
		p := s.Field.Home().Sub(mgl64.Vec2{batterSide, 0})
		shadow(p, playerSize)
		disc(p.Vec3(0), playerSize, Palette.Batter)
	}

	if b := s.Ball; b != nil {
		shadow(b.Pos.Vec2(), b.Radius*2*shadowShrink(b.Pos.Z()))
		disc(b.Pos, b.Radius*2, Palette.Ball)
	}

	a := Actors{Discs: ds.flush(nil)}
	a.Glow = cursorGlow(s, t, pr, quality)
	return a
}

// shadowShrink makes a high ball's shadow smaller.
func shadowShrink(z float64) float64 {
	return 1 / (1 + math.Max(z, 0)/40)
}

func cursorGlow(s match.Snapshot, t match.Tuning, pr geom.Projector, quality float64) Buffer {
	var b Buffer
	if s.Phase == match.PhaseHalfEnded {
		return b
	}
	c := Palette.Cursor
	if quality >= t.MissThreshold {
		c = Palette.CursorHot
	}
	sp, k := geom.Ground(pr, s.Cursor)
	b = b.Add(sp, 2*t.ContactRadius*k, c.Scale(0.25), 0)
	b = b.Add(sp, 10*k, c, 0)
	if s.Phase == match.PhaseBallInPlay && s.Ball != nil {
		bp, bk := pr.Project(s.Ball.Pos)
		b = b.Add(bp, 30*bk, Palette.Ball.Scale(0.3), 0)
	}
	return b
}
