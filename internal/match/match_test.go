package match

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newScripted(draws ...float64) *Match {
	return New(DefaultTuning(), NewScript(draws...))
}

// tickWhile advances one frame at a time while phase holds, failing after
// limit frames.
func tickWhile(t *testing.T, m *Match, phase Phase, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if m.Phase() != phase {
			return
		}
		m.Tick()
	}
	t.Fatalf("still %s after %d frames", phase, limit)
}

func logContains(m *Match, s string) bool {
	for _, l := range m.Log().Lines(0) {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

func (m *Match) addTestRunner(base, desired int) *Runner {
	m.seq++
	r := &Runner{Base: base, Pos: m.field.Base(base), Speed: 1.5, Desired: desired, seq: m.seq}
	m.runners = append(m.runners, r)
	return r
}

func TestNewMatchIsIdle(t *testing.T) {
	m := newScripted()
	if m.Phase() != PhaseIdle {
		t.Fatalf("phase got=%s want=%s", m.Phase(), PhaseIdle)
	}
	if m.Inning() != 1 || !m.Top() {
		t.Fatalf("inning got=%d top=%v", m.Inning(), m.Top())
	}
	if got := m.Log().Latest(); got != "Game ready. Press Start." {
		t.Fatalf("latest log got=%q", got)
	}
	if n := len(m.Snapshot().Fielders); n != 6 {
		t.Fatalf("fielders got=%d want=6", n)
	}
}

func TestOperationsOutsideTheirPhaseAreIgnored(t *testing.T) {
	m := newScripted()
	if m.Swing() {
		t.Fatal("swing accepted while idle")
	}
	if m.NextHalf() {
		t.Fatal("next half accepted while idle")
	}
	if !m.Start(ModeGame) {
		t.Fatal("start rejected while idle")
	}
	if m.Swing() {
		t.Fatal("swing accepted with no pitch in flight")
	}
	before := m.Log().Len()
	if !m.Pitch() {
		t.Fatal("pitch rejected while ready")
	}
	if m.Pitch() {
		t.Fatal("second pitch accepted while a pitch is in flight")
	}
	if m.Start(ModeDerby) {
		t.Fatal("start accepted while a pitch is in flight")
	}
	if m.Mode() != ModeGame {
		t.Fatalf("mode changed by rejected start: %s", m.Mode())
	}
	if got := m.Log().Len(); got != before+1 {
		t.Fatalf("log lines got=%d want=%d", got, before+1)
	}
}

func TestPitchFromIdleAutoStartsCount(t *testing.T) {
	m := newScripted(0.5, 0.5)
	if !m.Pitch() {
		t.Fatal("pitch rejected while idle")
	}
	if m.Phase() != PhasePitched {
		t.Fatalf("phase got=%s", m.Phase())
	}
	s := m.Snapshot()
	if s.Ball == nil || !s.Ball.Thrown {
		t.Fatalf("expected thrown ball, got %+v", s.Ball)
	}
	if s.Pitches != 1 {
		t.Fatalf("pitches got=%d want=1", s.Pitches)
	}
}

func TestCalledThirdStrikeIsAnOut(t *testing.T) {
	m := newScripted(0.5, 0.5)
	m.Start(ModeGame)
	m.strikes = 2
	m.Pitch()
	tickWhile(t, m, PhasePitched, 100)

	if m.Phase() != PhaseReadyForPitch {
		t.Fatalf("phase got=%s want=%s", m.Phase(), PhaseReadyForPitch)
	}
	if m.Outs() != 1 || m.Strikes() != 0 {
		t.Fatalf("count got outs=%d strikes=%d want outs=1 strikes=0", m.Outs(), m.Strikes())
	}
	if !logContains(m, "Strikeout!") {
		t.Fatalf("log missing strikeout: %v", m.Log().Lines(0))
	}
}

func TestPitchOutsideZoneIsBall(t *testing.T) {
	m := newScripted(0, 0.5)
	m.Start(ModeGame)
	m.strikes = 1
	m.Pitch()
	tickWhile(t, m, PhasePitched, 100)

	if m.Strikes() != 1 || m.Outs() != 0 {
		t.Fatalf("count changed: strikes=%d outs=%d", m.Strikes(), m.Outs())
	}
	if got := m.Log().Latest(); got != "Ball, pitcher to pitch again." {
		t.Fatalf("latest log got=%q", got)
	}
}

func TestSwingingThirdStrike(t *testing.T) {
	m := newScripted(0.5, 0.5, 0.5)
	m.Start(ModeGame)
	m.strikes = 2
	m.Pitch()
	// The ball is still at the mound, far from the cursor.
	if q := m.ContactQuality(); q != 0 {
		t.Fatalf("quality got=%v want=0", q)
	}
	if !m.Swing() {
		t.Fatal("swing rejected")
	}
	if m.Outs() != 1 || m.Strikes() != 0 {
		t.Fatalf("count got outs=%d strikes=%d", m.Outs(), m.Strikes())
	}
	if m.Snapshot().Ball != nil {
		t.Fatal("ball survived a miss")
	}
	if got := m.Log().Latest(); got != "Strikeout! Out recorded." {
		t.Fatalf("latest log got=%q", got)
	}
}

func TestFoulTipNeverMakesThirdStrike(t *testing.T) {
	m := newScripted()
	m.Start(ModeGame)
	for i := 0; i < 5; i++ {
		if !m.Pitch() {
			t.Fatalf("pitch %d rejected in %s", i, m.Phase())
		}
		m.ball.Pos[0] = 100 // wide of the tip band
		m.Swing()
		if m.Outs() != 0 {
			t.Fatalf("foul %d recorded an out", i)
		}
		if want := min(i+1, 2); m.Strikes() != want {
			t.Fatalf("foul %d strikes got=%d want=%d", i, m.Strikes(), want)
		}
	}
	if got := m.Log().Latest(); got != "Foul! Pitcher will throw again." {
		t.Fatalf("latest log got=%q", got)
	}
}

// hitAtPlate throws a pitch, lets it reach the plate and swings with the
// cursor dist pixels from the ball.
func hitAtPlate(t *testing.T, m *Match, dist float64) {
	t.Helper()
	m.Pitch()
	for i := 0; i < 8; i++ {
		m.Tick()
	}
	if m.Phase() != PhasePitched {
		t.Fatalf("pitch resolved early: %s", m.Phase())
	}
	m.cursor = m.ball.Pos.Vec2().Add(mgl64.Vec2{0, dist})
	if !m.Swing() {
		t.Fatal("swing rejected")
	}
}

func TestSolidContactGoesOverTheFence(t *testing.T) {
	// target, speed, fluke, jitter, angle
	m := newScripted(0.5, 0.5, 0.5, 0.2, 0.5)
	m.Start(ModeGame)
	hitAtPlate(t, m, 6)

	if m.Phase() != PhaseBallInPlay {
		t.Fatalf("phase got=%s want=%s", m.Phase(), PhaseBallInPlay)
	}
	c := m.LastContact()
	if math.Abs(c.Quality-0.9) > 1e-9 {
		t.Fatalf("quality got=%v want=0.9", c.Quality)
	}
	if c.Power < 0.8 {
		t.Fatalf("power got=%v want>=0.8", c.Power)
	}
	if m.batter == nil || m.batter.Desired != 4 {
		t.Fatalf("batter desired got=%+v want 4", m.batter)
	}

	tickWhile(t, m, PhaseBallInPlay, 600)
	s := m.Snapshot()
	if s.Score.Away != 1 || s.Score.Home != 0 {
		t.Fatalf("score got=%+v want away 1", s.Score)
	}
	if len(s.Runners) != 0 {
		t.Fatalf("runners left on base: %+v", s.Runners)
	}
	if s.HomeRuns != 1 || s.Hits != 1 {
		t.Fatalf("homers=%d hits=%d", s.HomeRuns, s.Hits)
	}
	if got := m.Log().Latest(); got != "Over the fence! 1 run(s)." {
		t.Fatalf("latest log got=%q", got)
	}
}

func TestHomeRunScoresEveryRunner(t *testing.T) {
	m := newScripted(0.5, 0.5, 0.5, 0.2, 0.5)
	m.Start(ModeGame)
	m.addTestRunner(1, 1)
	m.addTestRunner(3, 1)
	hitAtPlate(t, m, 6)
	tickWhile(t, m, PhaseBallInPlay, 600)

	if got := m.Score().Away; got != 3 {
		t.Fatalf("runs got=%d want=3", got)
	}
	if occ := m.OccupiedBases(); occ != [3]bool{} {
		t.Fatalf("bases not cleared: %v", occ)
	}
}

func TestWeakContactTiersSingle(t *testing.T) {
	m := newScripted(0.5, 0.5, 0.5, 0, 0.5)
	m.Start(ModeGame)
	hitAtPlate(t, m, 30) // quality 0.5, jitter -0.1
	if got := m.batter.Desired; got != 1 {
		t.Fatalf("desired got=%d want=1 (power %v)", got, m.LastContact().Power)
	}
}

func TestFieldedBallRetiresExactlyOneRunner(t *testing.T) {
	m := newScripted(0.1)
	m.Start(ModeGame)
	lead := m.addTestRunner(2, 2)
	second := m.addTestRunner(1, 1)
	batter := m.addTestRunner(0, 1)
	m.batter = batter
	m.phase = PhaseBallInPlay

	m.attemptPlay(m.fielders[0])

	if m.Outs() != 1 {
		t.Fatalf("outs got=%d want=1", m.Outs())
	}
	if len(m.runners) != 2 {
		t.Fatalf("runners got=%d want=2", len(m.runners))
	}
	for _, r := range m.runners {
		if r == lead {
			t.Fatal("lead runner survived the out")
		}
	}
	if batter.Base != 1 || second.Base != 2 {
		t.Fatalf("bases got batter=%d second=%d want 1 and 2", batter.Base, second.Base)
	}
	if m.Score() != (Score{}) {
		t.Fatalf("score changed: %+v", m.Score())
	}
	if m.Phase() != PhaseReadyForPitch {
		t.Fatalf("phase got=%s", m.Phase())
	}
}

func TestMisplayAdvancesRunners(t *testing.T) {
	m := newScripted(0.9)
	m.Start(ModeGame)
	onThird := m.addTestRunner(3, 3)
	onFirst := m.addTestRunner(1, 2)
	batter := m.addTestRunner(0, 2)
	m.batter = batter
	m.phase = PhaseBallInPlay

	m.attemptPlay(m.fielders[2])

	if m.Outs() != 0 {
		t.Fatalf("outs got=%d", m.Outs())
	}
	// The runner on third already holds its desired base and is not forced.
	if onThird.Base != 3 || onFirst.Base != 2 || batter.Base != 1 {
		t.Fatalf("bases got %d/%d/%d want 3/2/1", onThird.Base, onFirst.Base, batter.Base)
	}
	if m.Snapshot().Hits != 1 {
		t.Fatalf("hits got=%d want=1", m.Snapshot().Hits)
	}
	if !strings.Contains(m.Log().Lines(0)[0], "couldn't make the play") {
		t.Fatalf("latest log got=%q", m.Log().Latest())
	}
}

func TestSingleNeverRunsPastFirstOnItsOwn(t *testing.T) {
	m := newScripted()
	m.Start(ModeGame)
	r := m.addTestRunner(0, 1)
	for i := 0; i < 3; i++ {
		m.advanceRunners()
		if r.Base != 1 {
			t.Fatalf("after misplay %d base got=%d want=1", i+1, r.Base)
		}
	}
	if m.Score() != (Score{}) {
		t.Fatalf("score changed: %+v", m.Score())
	}
}

func TestForcedRunnerScores(t *testing.T) {
	m := newScripted()
	m.Start(ModeGame)
	m.addTestRunner(3, 3)
	m.addTestRunner(2, 2)
	m.addTestRunner(1, 1)
	m.addTestRunner(0, 1)
	m.advanceRunners()

	if got := m.Score().Away; got != 1 {
		t.Fatalf("runs got=%d want=1", got)
	}
	if occ := m.OccupiedBases(); occ != [3]bool{true, true, true} {
		t.Fatalf("occupied got=%v", occ)
	}
	if len(m.runners) != 3 {
		t.Fatalf("runners got=%d want=3", len(m.runners))
	}
}

func TestThreeOutsEndTheHalf(t *testing.T) {
	m := newScripted(0.5, 0.5)
	m.Start(ModeGame)
	m.addTestRunner(2, 2)
	m.outs, m.strikes = 2, 2
	m.Pitch()
	tickWhile(t, m, PhasePitched, 100)

	if m.Phase() != PhaseHalfEnded {
		t.Fatalf("phase got=%s want=%s", m.Phase(), PhaseHalfEnded)
	}
	if m.Outs() != 0 || m.Strikes() != 0 || len(m.runners) != 0 {
		t.Fatalf("half not reset: outs=%d strikes=%d runners=%d", m.Outs(), m.Strikes(), len(m.runners))
	}
	if m.Top() || m.Inning() != 1 {
		t.Fatalf("got top=%v inning=%d want bottom of 1", m.Top(), m.Inning())
	}
	if m.Pitch() {
		t.Fatal("pitch accepted after three outs")
	}
	if !m.NextHalf() {
		t.Fatal("next half rejected")
	}
	if m.Phase() != PhaseReadyForPitch {
		t.Fatalf("phase got=%s", m.Phase())
	}

	m.outs, m.strikes = 2, 2
	m.Pitch()
	tickWhile(t, m, PhasePitched, 100)
	if !m.Top() || m.Inning() != 2 {
		t.Fatalf("got top=%v inning=%d want top of 2", m.Top(), m.Inning())
	}
}

func TestFieldedThirdOutEndsHalf(t *testing.T) {
	m := newScripted(0.1)
	m.Start(ModeGame)
	m.outs = 2
	m.addTestRunner(1, 1)
	m.batter = m.addTestRunner(0, 1)
	m.phase = PhaseBallInPlay

	m.attemptPlay(m.fielders[3])

	if m.Phase() != PhaseHalfEnded || len(m.runners) != 0 {
		t.Fatalf("phase=%s runners=%d", m.Phase(), len(m.runners))
	}
}

func TestFoulBallInPlayDropsBatter(t *testing.T) {
	m := newScripted(0.5, 0.5, 0.5, 0.2, 0.5)
	m.Start(ModeGame)
	m.addTestRunner(2, 2)
	hitAtPlate(t, m, 30)
	m.ball.Pos = mgl64.Vec3{100, 400, 0}
	m.ball.Vel = mgl64.Vec3{-1, 0, 0}
	m.Tick()

	if m.Phase() != PhaseReadyForPitch {
		t.Fatalf("phase got=%s", m.Phase())
	}
	if m.Strikes() != 1 {
		t.Fatalf("strikes got=%d want=1", m.Strikes())
	}
	if len(m.runners) != 1 || m.runners[0].Base != 2 {
		t.Fatalf("runners got=%+v", m.runners)
	}
	if got := m.Log().Latest(); got != "Foul ball!" {
		t.Fatalf("latest log got=%q", got)
	}
}

func TestStartKeepsScoreAndInning(t *testing.T) {
	m := newScripted()
	m.Start(ModeGame)
	m.score = Score{Away: 2, Home: 1}
	m.inning = 4
	m.outs = 1
	m.addTestRunner(1, 1)
	if !m.Start(ModeDerby) {
		t.Fatal("start rejected while ready")
	}
	if m.Score() != (Score{Away: 2, Home: 1}) || m.Inning() != 4 {
		t.Fatalf("got score=%+v inning=%d", m.Score(), m.Inning())
	}
	if m.Outs() != 0 || len(m.runners) != 0 || m.Mode() != ModeDerby {
		t.Fatalf("got outs=%d runners=%d mode=%s", m.Outs(), len(m.runners), m.Mode())
	}
	if got := m.Log().Latest(); got != "Starting Home Run Derby. Top of 4, visitors bat." {
		t.Fatalf("latest log got=%q", got)
	}
}

func TestResetZeroesEverything(t *testing.T) {
	m := newScripted()
	oldID := m.ID
	m.Start(ModeDerby)
	m.score = Score{Away: 3}
	m.Pitch()
	m.Reset()
	if m.Phase() != PhaseIdle || m.Score() != (Score{}) || m.Mode() != ModeGame {
		t.Fatalf("got phase=%s score=%+v mode=%s", m.Phase(), m.Score(), m.Mode())
	}
	if m.ID == oldID {
		t.Fatal("reset kept the match id")
	}
	if m.Log().Len() != 1 {
		t.Fatalf("log got=%v", m.Log().Lines(0))
	}
}

func TestSteerMovesAndClampsCursor(t *testing.T) {
	m := newScripted()
	home := m.Cursor()
	m.Steer(mgl64.Vec2{10, 0})
	m.Step(0.1)
	if got, want := m.Cursor().X(), home.X()+30; math.Abs(got-want) > 1e-6 {
		t.Fatalf("cursor x got=%v want=%v", got, want)
	}
	m.Step(5)
	if got, want := m.Cursor().X(), 0.8*m.Field().W; math.Abs(got-want) > 1e-9 {
		t.Fatalf("cursor x got=%v want clamp %v", got, want)
	}
	m.Steer(mgl64.Vec2{})
	x := m.Cursor().X()
	m.Step(1)
	if m.Cursor().X() != x {
		t.Fatal("cursor moved without input")
	}
}

func TestStepSubdividesIntoFrames(t *testing.T) {
	a := newScripted(0.5, 0.5)
	b := newScripted(0.5, 0.5)
	a.Pitch()
	b.Pitch()
	a.Step(4.0 / 60)
	for i := 0; i < 4; i++ {
		b.Tick()
	}
	pa, pb := a.Snapshot().Ball.Pos, b.Snapshot().Ball.Pos
	if pa.Sub(pb).Len() > 1e-9 {
		t.Fatalf("step and tick disagree: %v vs %v", pa, pb)
	}
	a.Step(0)
	a.Step(-1)
	if a.Snapshot().Tick != 4 {
		t.Fatalf("tick got=%d want=4", a.Snapshot().Tick)
	}
}

func TestBusReceivesEventsInOrder(t *testing.T) {
	m := newScripted(0.5, 0.5)
	var got []EventType
	var pitches int
	m.Bus().SubscribeAll(func(e Event) { got = append(got, e.Type) })
	m.Bus().Subscribe(EventPitch, func(Event) { pitches++ })

	m.Start(ModeGame)
	m.Pitch()
	tickWhile(t, m, PhasePitched, 100)

	want := []EventType{EventStart, EventPitch, EventCalledStrike}
	if len(got) != len(want) {
		t.Fatalf("events got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d got=%v want=%v", i, got[i], want[i])
		}
	}
	if pitches != 1 {
		t.Fatalf("pitch handler calls got=%d want=1", pitches)
	}
}
