package match

import (
	"fmt"
	"math"
)

// stepBatted integrates the batted ball and checks, in order: over the
// fence, fielded, foul. Runners ease toward their next base meanwhile.
func (m *Match) stepBatted(h float64) {
	b := m.ball
	if b == nil {
		m.phase = PhaseReadyForPitch
		return
	}
	b.Pos = b.Pos.Add(b.Vel.Mul(h))
	b.Vel[2] -= m.tun.Gravity * h
	if b.Pos.Z() <= 0 {
		b.Pos[2] = 0
		if b.Vel.Z() < 0 {
			b.Vel[2] = -b.Vel.Z() * m.tun.Restitution
			b.Vel[0] *= m.tun.BounceDamp
			b.Vel[1] *= m.tun.BounceDamp
		}
		roll := math.Pow(m.tun.RollFriction, h)
		b.Vel[0] *= roll
		b.Vel[1] *= roll
	}

	if m.pastWall() {
		if b.Pos.Z() > m.tun.FenceHeight {
			m.homeRun()
			return
		}
		m.rebound()
	}

	if m.chase(h) {
		return
	}

	if b.Pos.Y() > m.tun.FoulDepth*m.field.H && !m.field.Contains(m.tun.FairBand, b.Pos.X()) {
		m.foulBall()
		return
	}

	m.runBases(h)
}

func (m *Match) pastWall() bool {
	p := m.ball.Pos
	return p.Y() < m.tun.FenceDepth*m.field.H || p.Y() > m.field.H || p.X() < 0 || p.X() > m.field.W
}

// rebound keeps grounders and low liners inside the park.
func (m *Match) rebound() {
	b := m.ball
	fence := m.tun.FenceDepth * m.field.H
	switch {
	case b.Pos.Y() < fence:
		b.Pos[1] = fence
		b.Vel[1] = math.Abs(b.Vel.Y()) * m.tun.WallDamp
	case b.Pos.Y() > m.field.H:
		b.Pos[1] = m.field.H
		b.Vel[1] = -math.Abs(b.Vel.Y()) * m.tun.WallDamp
	}
	switch {
	case b.Pos.X() < 0:
		b.Pos[0] = 0
		b.Vel[0] = math.Abs(b.Vel.X()) * m.tun.WallDamp
	case b.Pos.X() > m.field.W:
		b.Pos[0] = m.field.W
		b.Vel[0] = -math.Abs(b.Vel.X()) * m.tun.WallDamp
	}
}

// homeRun scores the batter plus everyone on base and clears the bases.
func (m *Match) homeRun() {
	runs := 1
	for _, r := range m.runners {
		if r != m.batter && r.Base >= 1 && r.Base <= 3 {
			runs++
		}
	}
	at := m.ball.Pos.Vec2()
	m.addRuns(runs)
	m.hits++
	m.homers++
	m.endPlay()
	m.runners = nil
	m.emit(Event{Type: EventHomeRun, Message: fmt.Sprintf("Over the fence! %d run(s).", runs), Runs: runs, At: at})
}

// foulBall charges a strike below two and drops the batter-runner.
func (m *Match) foulBall() {
	at := m.ball.Pos.Vec2()
	m.foulStrike()
	if m.batter != nil && m.batter.Base == 0 {
		m.removeRunner(m.batter)
	}
	m.endPlay()
	m.emit(Event{Type: EventFoul, Message: "Foul ball!", At: at})
}

// endPlay drops the ball and returns to the pitch-ready phase.
func (m *Match) endPlay() {
	m.ball = nil
	m.batter = nil
	m.chaser = -1
	m.phase = PhaseReadyForPitch
}
