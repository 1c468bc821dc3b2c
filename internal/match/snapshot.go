package match

import (
	"github.com/go-gl/mathgl/mgl64"

	"baseball/internal/geom"
)

// RunnerView is a read-only copy of a runner for presentation.
type RunnerView struct {
	ID   int
	Base int
	Pos  mgl64.Vec2
}

// Snapshot is everything a renderer needs to draw one frame. It shares no
// memory with the match.
type Snapshot struct {
	ID       string
	Tick     int
	Phase    Phase
	Mode     Mode
	Inning   int
	Top      bool
	Score    Score
	Outs     int
	Strikes  int
	Pitches  int
	Hits     int
	HomeRuns int
	Contact  Contact

	Field    geom.Field
	Ball     *Ball
	Runners  []RunnerView
	Fielders [len(geom.Roles)]Fielder
	Chaser   int // index into Fielders, -1 when nobody is chasing
	Cursor   mgl64.Vec2
	Occupied [3]bool
}

func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		ID:       m.ID.String(),
		Tick:     m.tick,
		Phase:    m.phase,
		Mode:     m.mode,
		Inning:   m.inning,
		Top:      m.top,
		Score:    m.score,
		Outs:     m.outs,
		Strikes:  m.strikes,
		Pitches:  m.pitches,
		Hits:     m.hits,
		HomeRuns: m.homers,
		Contact:  m.contact,
		Field:    m.field,
		Fielders: m.fielders,
		Chaser:   m.chaser,
		Cursor:   m.cursor,
		Occupied: m.OccupiedBases(),
	}
	if m.ball != nil {
		b := *m.ball
		s.Ball = &b
	}
	s.Runners = make([]RunnerView, 0, len(m.runners))
	for _, r := range m.runners {
		s.Runners = append(s.Runners, RunnerView{ID: r.seq, Base: r.Base, Pos: r.Pos})
	}
	return s
}
