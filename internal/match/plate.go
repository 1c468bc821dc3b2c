package match

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"baseball/internal/geom"
)

// Pitch throws from the mound toward a random target at the plate.
// Valid only when idle or ready for a pitch.
func (m *Match) Pitch() bool {
	if m.phase != PhaseReadyForPitch && m.phase != PhaseIdle {
		return false
	}
	m.pitches++
	mound := m.field.Mound()
	home := m.field.Home()
	tx := m.field.Lerp(m.tun.PitchTarget, m.rnd.Float64())
	fr := m.tun.PitchFrames(m.mode)
	n := rangeF(m.rnd, fr.Min, fr.Max)
	m.ball = &Ball{
		Pos:    mound.Vec3(0),
		Vel:    mgl64.Vec3{(tx - mound.X()) / n, (home.Y() - mound.Y()) / n, 0},
		Radius: m.tun.BallRadius,
		Thrown: true,
	}
	m.phase = PhasePitched
	m.emit(Event{Type: EventPitch, Message: "CPU pitches..."})
	return true
}

// ContactQuality is 1 when the ball sits on the bat cursor, falling to 0
// at the contact radius.
func (m *Match) ContactQuality() float64 {
	if m.ball == nil {
		return 0
	}
	d := geom.Dist2D(m.ball.Pos.Vec2(), m.cursor)
	return geom.Clamp(1-d/m.tun.ContactRadius, 0, 1)
}

// Swing resolves the batter's swing against the pitch in flight.
// Valid only while a pitch is in flight.
func (m *Match) Swing() bool {
	if m.phase != PhasePitched || m.ball == nil {
		return false
	}
	q := m.ContactQuality()
	fluke := m.rnd.Float64() > m.tun.FlukeCutoff
	if q >= m.tun.MissThreshold && !fluke {
		m.putInPlay(q)
		return true
	}

	x := m.ball.Pos.X()
	m.ball = nil
	m.phase = PhaseReadyForPitch
	if !m.field.Contains(m.tun.TipBand, x) {
		m.foulStrike()
		m.emit(Event{Type: EventFoul, Message: "Foul! Pitcher will throw again."})
		return true
	}
	m.emit(Event{Type: EventSwingMiss, Message: "Swing and miss, strike."})
	m.strike("Strikeout! Out recorded.")
	return true
}

func (m *Match) putInPlay(q float64) {
	power := geom.Clamp(q+rangeF(m.rnd, m.tun.Jitter.Min, m.tun.Jitter.Max), m.tun.MinPower, 1)
	angle := (2*m.rnd.Float64() - 1) * m.tun.SprayAngle
	speed := lerp(m.tun.ExitSpeed, power)
	b := m.ball
	b.Pos = mgl64.Vec3{b.Pos.X(), b.Pos.Y(), 0}
	b.Vel = mgl64.Vec3{math.Sin(angle) * speed, -math.Cos(angle) * speed, lerp(m.tun.Loft, power)}
	b.Thrown = false
	m.contact = Contact{Quality: q, Power: power, Angle: angle}

	m.seq++
	m.batter = &Runner{
		Base:    0,
		Pos:     m.field.Home(),
		Speed:   lerp(m.tun.RunnerSpeed, power),
		Desired: m.tun.DesiredBases(power),
		seq:     m.seq,
	}
	m.runners = append(m.runners, m.batter)
	m.chaser = -1
	m.phase = PhaseBallInPlay
	m.emit(Event{Type: EventContact, Message: "Ball hit into play!", At: b.Pos.Vec2()})
}

// stepPitch flies the pitch; crossing the plate without a swing is a
// called strike inside the zone and a ball outside it.
func (m *Match) stepPitch(h float64) {
	b := m.ball
	if b == nil {
		m.phase = PhaseReadyForPitch
		return
	}
	b.Pos = b.Pos.Add(b.Vel.Mul(h))
	b.Vel[1] += m.tun.PitchDrop * h
	if b.Pos.Y() <= m.tun.PlateDepth*m.field.H {
		return
	}
	x := b.Pos.X()
	m.ball = nil
	m.phase = PhaseReadyForPitch
	if m.field.Contains(m.tun.StrikeZone, x) {
		m.emit(Event{Type: EventCalledStrike, Message: "Called strike."})
		m.strike("Strikeout!")
		return
	}
	m.emit(Event{Type: EventBall, Message: "Ball, pitcher to pitch again."})
}

// strike charges a swinging or called strike; the third is an out.
func (m *Match) strike(strikeout string) {
	m.strikes++
	if m.strikes < 3 {
		return
	}
	m.outs++
	m.strikes = 0
	m.emit(Event{Type: EventStrikeout, Message: strikeout})
	m.checkEndHalf()
}

// foulStrike never produces a third strike.
func (m *Match) foulStrike() {
	if m.strikes < 2 {
		m.strikes++
	}
}

// checkEndHalf closes the half at three outs and waits for Start.
func (m *Match) checkEndHalf() bool {
	if m.outs < 3 {
		return false
	}
	m.emit(Event{Type: EventHalfOver, Message: fmt.Sprintf("Three outs, %s of %d ends.", m.halfName(), m.inning)})
	m.outs = 0
	m.strikes = 0
	m.ball = nil
	m.runners = nil
	m.batter = nil
	m.chaser = -1
	m.top = !m.top
	if m.top {
		m.inning++
	}
	m.phase = PhaseHalfEnded
	return true
}

func lerp(r Range, t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}
