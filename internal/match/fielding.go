package match

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"baseball/internal/geom"
)

// Fielder is one of the six defenders. Fielders are only ever moved,
// never removed, while a half is live.
type Fielder struct {
	Role geom.Role
	Pos  mgl64.Vec2
}

func (m *Match) resetFielders() {
	for i, r := range geom.Roles {
		m.fielders[i] = Fielder{Role: r, Pos: m.field.FielderHome(r)}
	}
	m.chaser = -1
}

// nearestFielder returns the index of the defender closest to p.
func (m *Match) nearestFielder(p mgl64.Vec2) int {
	best, bestD := 0, math.Inf(1)
	for i := range m.fielders {
		if d := geom.Dist2D(m.fielders[i].Pos, p); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// chase locks the nearest fielder onto the ball once it is past the
// infield line and runs them at it. A ball that dies short of the line is
// still picked up. Returns true if the play resolved.
func (m *Match) chase(h float64) bool {
	b := m.ball
	ground := b.Pos.Vec2()
	if m.chaser < 0 {
		if b.Pos.Y() >= m.tun.InfieldDepth*m.field.H && !b.dead() {
			return false
		}
		m.chaser = m.nearestFielder(ground)
	}
	f := &m.fielders[m.chaser]
	f.Pos, _ = geom.Toward(f.Pos, ground, m.tun.FielderSpeed*h)
	if geom.Dist2D(f.Pos, ground) > m.tun.CaptureRadius || b.Pos.Z() > m.tun.ReachHeight {
		return false
	}
	m.attemptPlay(*f)
	return true
}

// dead reports a ball that has stopped rolling.
func (b *Ball) dead() bool {
	return b.Pos.Z() <= 0 && b.Vel.Vec2().Len() < 0.05
}

// attemptPlay is the single Bernoulli trial made when a fielder reaches
// the ball.
func (m *Match) attemptPlay(f Fielder) {
	batter := m.batter
	m.endPlay()
	if m.rnd.Float64() < m.tun.FieldingOdds {
		m.recordOut(f, batter)
		return
	}
	m.hits++
	m.emit(Event{Type: EventAdvance, Message: fmt.Sprintf("%s couldn't make the play; runners advance.", f.Role), At: f.Pos})
	m.advanceRunners()
}

// recordOut retires the lead runner. A batter-runner who was not the one
// retired takes first on the fielder's choice.
func (m *Match) recordOut(f Fielder, batter *Runner) {
	m.outs++
	var lead *Runner
	if len(m.runners) > 0 {
		lead = m.runners[0]
		m.removeRunner(lead)
	}
	m.emit(Event{Type: EventOut, Message: fmt.Sprintf("%s fields the ball and records an out!", f.Role), At: f.Pos})
	if m.checkEndHalf() {
		return
	}
	if batter != nil && batter != lead && batter.Base == 0 {
		batter.Base = 1
		m.forceAhead()
	}
}

// returnFielders walks everyone but the chaser back to their spot.
func (m *Match) returnFielders(h float64) {
	for i := range m.fielders {
		if i == m.chaser {
			continue
		}
		f := &m.fielders[i]
		f.Pos, _ = geom.Toward(f.Pos, m.field.FielderHome(f.Role), m.tun.ReturnSpeed*h)
	}
}
