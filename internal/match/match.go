// Package match is the frame-driven baseball engine: one Match owns the
// count, the bases, the ball and the six defenders, and advances them one
// reference frame at a time. Input calls made in the wrong phase are
// ignored and report false.
package match

import (
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"baseball/internal/geom"
)

// Score is runs per side. The visitors bat in the top half.
type Score struct {
	Away, Home int
}

// Ball exists only while a pitch or batted ball is in flight.
type Ball struct {
	Pos    mgl64.Vec3 // x lateral, y depth toward the plate, z height
	Vel    mgl64.Vec3
	Radius float64
	Thrown bool // true while pitched, false once batted
}

// Contact describes the last ball put in play.
type Contact struct {
	Quality float64
	Power   float64
	Angle   float64
}

type Match struct {
	ID uuid.UUID

	tun   Tuning
	field geom.Field
	rnd   Source
	bus   *EventBus
	log   *EventLog

	phase   Phase
	mode    Mode
	inning  int
	top     bool
	score   Score
	outs    int
	strikes int

	pitches int
	hits    int
	homers  int
	contact Contact

	ball     *Ball
	runners  []*Runner // creation order, lead runner first
	batter   *Runner   // batter-runner of the play in progress
	fielders [len(geom.Roles)]Fielder
	chaser   int
	cursor   mgl64.Vec2
	steer    mgl64.Vec2
	tick     int
	seq      int
}

// New builds a match in the idle phase. A nil src seeds a Rand from 0.
func New(t Tuning, src Source) *Match {
	if src == nil {
		src = NewRand(0)
	}
	m := &Match{
		tun: t,
		rnd: src,
		bus: NewEventBus(),
		log: NewEventLog(t.LogCapacity),
	}
	m.Reset()
	return m
}

// Reset returns to the idle phase with a zeroed scoreboard and a fresh
// defensive alignment. Bus subscribers survive a reset.
func (m *Match) Reset() {
	m.ID = uuid.New()
	m.field = geom.NewField(m.tun.FieldWidth, m.tun.FieldHeight)
	m.phase = PhaseIdle
	m.mode = ModeGame
	m.inning = 1
	m.top = true
	m.score = Score{}
	m.outs = 0
	m.strikes = 0
	m.pitches = 0
	m.hits = 0
	m.homers = 0
	m.contact = Contact{}
	m.ball = nil
	m.runners = nil
	m.batter = nil
	m.resetFielders()
	m.cursor = m.field.Home()
	m.steer = mgl64.Vec2{}
	m.tick = 0
	m.seq = 0
	m.log.Clear()
	m.emit(Event{Type: EventReady, Message: "Game ready. Press Start."})
}

// Start begins (or resumes after three outs) play in the given mode.
// It clears the count and the bases and sends the fielders home; score and
// inning carry over. Ignored while a ball is live.
func (m *Match) Start(mode Mode) bool {
	switch m.phase {
	case PhasePitched, PhaseBallInPlay:
		return false
	}
	m.mode = mode
	m.outs = 0
	m.strikes = 0
	m.ball = nil
	m.runners = nil
	m.batter = nil
	m.resetFielders()
	m.phase = PhaseReadyForPitch
	m.emit(Event{Type: EventStart, Message: fmt.Sprintf("Starting %s. %s of %d, %s bat.", mode.Title(), m.halfName(), m.inning, m.battingSide())})
	return true
}

// NextHalf resumes play after three outs in the current mode.
func (m *Match) NextHalf() bool {
	if m.phase != PhaseHalfEnded {
		return false
	}
	return m.Start(m.mode)
}

// Steer sets the batter cursor direction. Magnitude is clamped to 1; the
// cursor moves during Step.
func (m *Match) Steer(dir mgl64.Vec2) {
	m.steer = geom.ClampLen(dir, 1)
}

// Step advances the match by dt seconds in reference-frame sized slices.
func (m *Match) Step(dt float64) {
	if dt <= 0 {
		return
	}
	frames := dt * m.tun.FrameRate
	for frames > 1e-9 {
		h := math.Min(1, frames)
		m.frame(h)
		frames -= h
	}
}

// Tick advances exactly one reference frame.
func (m *Match) Tick() { m.frame(1) }

func (m *Match) frame(h float64) {
	m.tick++
	m.moveCursor(h / m.tun.FrameRate)
	switch m.phase {
	case PhasePitched:
		m.stepPitch(h)
		m.settle(h)
	case PhaseBallInPlay:
		m.stepBatted(h)
	default:
		m.settle(h)
	}
}

func (m *Match) moveCursor(sec float64) {
	if m.steer == (mgl64.Vec2{}) {
		return
	}
	p := m.cursor.Add(m.steer.Mul(m.tun.CursorSpeed * sec))
	m.cursor = mgl64.Vec2{
		geom.Clamp(p.X(), m.tun.CursorX.Min*m.field.W, m.tun.CursorX.Max*m.field.W),
		geom.Clamp(p.Y(), m.tun.CursorY.Min*m.field.H, m.tun.CursorY.Max*m.field.H),
	}
}

// MirrorTo copies every event to l, tagged with the match id and tick.
func (m *Match) MirrorTo(l *log.Logger) {
	m.bus.SubscribeAll(func(e Event) {
		l.Printf("match=%s tick=%d %s", m.ID, e.Tick, e.Message)
	})
}

func (m *Match) emit(e Event) {
	e.Tick = m.tick
	m.log.Append(e.Message)
	m.bus.Emit(e)
}

func (m *Match) addRuns(n int) {
	if m.top {
		m.score.Away += n
	} else {
		m.score.Home += n
	}
}

func (m *Match) halfName() string {
	if m.top {
		return "Top"
	}
	return "Bottom"
}

func (m *Match) battingSide() string {
	if m.top {
		return "visitors"
	}
	return "home"
}

func (m *Match) Phase() Phase         { return m.phase }
func (m *Match) Mode() Mode           { return m.mode }
func (m *Match) Inning() int          { return m.inning }
func (m *Match) Top() bool            { return m.top }
func (m *Match) Score() Score         { return m.score }
func (m *Match) Outs() int            { return m.outs }
func (m *Match) Strikes() int         { return m.strikes }
func (m *Match) Field() geom.Field    { return m.field }
func (m *Match) Tuning() Tuning       { return m.tun }
func (m *Match) Bus() *EventBus       { return m.bus }
func (m *Match) Log() *EventLog       { return m.log }
func (m *Match) Cursor() mgl64.Vec2   { return m.cursor }
func (m *Match) LastContact() Contact { return m.contact }
