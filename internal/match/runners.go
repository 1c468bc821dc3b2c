package match

import (
	"github.com/go-gl/mathgl/mgl64"

	"baseball/internal/geom"
)

// Runner is a batter-runner or base runner. Base 0 is the plate, 1..3 the
// bags, 4 means scored.
type Runner struct {
	Base    int
	Pos     mgl64.Vec2
	Speed   float64
	Desired int // furthest base this hit lets the runner take on a misplay
	seq     int
}

// advanceRunners moves every runner one base on a misplay, capped by the
// runner's desired bases, then applies force plays.
func (m *Match) advanceRunners() {
	for _, r := range m.runners {
		if r.Base < r.Desired {
			r.Base += min(1, r.Desired)
		}
	}
	m.forceAhead()
}

// forceAhead pushes a runner off a bag taken by a trailing runner. Runners
// are in creation order, so the older one on a shared base moves up.
func (m *Match) forceAhead() {
	for b := 1; b <= 3; b++ {
		var on []*Runner
		for _, r := range m.runners {
			if r.Base == b {
				on = append(on, r)
			}
		}
		for i := 0; i < len(on)-1; i++ {
			r := on[i]
			r.Base++
			if r.Desired < r.Base {
				r.Desired = r.Base
			}
		}
	}
	m.scoreRunners()
}

// scoreRunners removes every runner who has reached home and credits a run.
func (m *Match) scoreRunners() {
	kept := m.runners[:0]
	scored := 0
	for _, r := range m.runners {
		if r.Base >= 4 {
			scored++
			continue
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(m.runners); i++ {
		m.runners[i] = nil
	}
	m.runners = kept
	for i := 0; i < scored; i++ {
		m.addRuns(1)
		m.emit(Event{Type: EventRun, Message: "Run scored!", Runs: 1})
	}
}

func (m *Match) removeRunner(x *Runner) {
	for i, r := range m.runners {
		if r == x {
			m.runners = append(m.runners[:i], m.runners[i+1:]...)
			return
		}
	}
}

// runBases eases runners toward the next bag while the ball is live.
func (m *Match) runBases(h float64) {
	for _, r := range m.runners {
		target := m.field.Base(r.Base + 1)
		r.Pos = geom.Ease(r.Pos, target, m.tun.RunnerEase*r.Speed*h)
	}
	m.scoreRunners()
	m.returnFielders(h)
}

// settle walks runners onto their current bag and fielders back home
// between plays.
func (m *Match) settle(h float64) {
	for _, r := range m.runners {
		r.Pos = geom.Ease(r.Pos, m.field.Base(r.Base), m.tun.RunnerEase*r.Speed*h)
	}
	m.returnFielders(h)
}

// OccupiedBases returns which of first, second and third hold a runner.
func (m *Match) OccupiedBases() [3]bool {
	var occ [3]bool
	for _, r := range m.runners {
		if r.Base >= 1 && r.Base <= 3 {
			occ[r.Base-1] = true
		}
	}
	return occ
}
