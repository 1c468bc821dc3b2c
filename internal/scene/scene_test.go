package scene

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"baseball/internal/geom"
	"baseball/internal/match"
)

func testField() geom.Field { return geom.NewField(geom.DefaultWidth, geom.DefaultHeight) }

func TestGroundCoversFlatField(t *testing.T) {
	f := testField()
	g := Ground(f, match.DefaultTuning(), NewFlat())
	want := int(f.W/TileSize) * int(f.H/TileSize)
	if g.Len() != want {
		t.Fatalf("tiles got=%d want=%d", g.Len(), want)
	}
	dirt := 0
	for i := 0; i < g.Len(); i++ {
		_, size, c := g.Sprite(i)
		if size <= 0 {
			t.Fatalf("tile %d has size %v", i, size)
		}
		if c == Palette.Dirt {
			dirt++
		}
	}
	if dirt == 0 || dirt == g.Len() {
		t.Fatalf("dirt tiles got=%d of %d", dirt, g.Len())
	}
}

func TestGroundBehindDropsTilesUnderCamera(t *testing.T) {
	f := testField()
	g := Ground(f, match.DefaultTuning(), geom.NewBehind(f))
	if g.Len() == 0 {
		t.Fatal("no tiles in behind view")
	}
	for i := 0; i < g.Len(); i++ {
		if _, size, _ := g.Sprite(i); size > (TileSize+1)*maxTileScale {
			t.Fatalf("tile %d too large: %v", i, size)
		}
	}
}

func TestOnDirt(t *testing.T) {
	f := testField()
	cases := []struct {
		name string
		p    mgl64.Vec2
		want bool
	}{
		{"home", f.Home(), true},
		{"mound", f.Mound(), true},
		{"between bases", f.At(0.5, 0.55), true},
		{"deep center", f.At(0.5, 0.08), false},
		{"foul corner", f.At(0.03, 0.97), false},
	}
	for _, c := range cases {
		if got := onDirt(f, c.p); got != c.want {
			t.Fatalf("%s: got=%v want=%v", c.name, got, c.want)
		}
	}
}

func TestMarksIncludeBases(t *testing.T) {
	f := testField()
	m := Marks(f, match.DefaultTuning(), NewFlat())
	found := 0
	for i := 0; i < m.Len(); i++ {
		p, _, c := m.Sprite(i)
		if c != Palette.Base {
			continue
		}
		for n := 1; n <= 3; n++ {
			if p.Sub(f.Base(n)).Len() < 1e-3 {
				found++
			}
		}
	}
	if found != 3 {
		t.Fatalf("bases drawn got=%d want=3", found)
	}
}

func TestBuildSortsFarToNear(t *testing.T) {
	m := match.New(match.DefaultTuning(), match.NewScript(0.5, 0.5))
	m.Start(match.ModeGame)
	m.Pitch()
	m.Tick()
	s := m.Snapshot()

	a := Build(s, m.Tuning(), NewFlat(), m.ContactQuality())
	// 6 fielders and the batter, each with a shadow, plus the ball and its shadow.
	if got, want := a.Discs.Len(), 2*7+2; got != want {
		t.Fatalf("discs got=%d want=%d", got, want)
	}
	prev := -1.0
	for i := 0; i < a.Discs.Len(); i++ {
		p, _, c := a.Discs.Sprite(i)
		if c == Palette.Shadow {
			if p.Y() < prev-1e-6 {
				t.Fatalf("shadow %d drawn out of order: %v after %v", i, p.Y(), prev)
			}
			prev = p.Y()
		}
	}
	if a.Glow.Len() < 2 {
		t.Fatalf("cursor glow missing: %d", a.Glow.Len())
	}
}

func TestFlatLiftsBallByHeight(t *testing.T) {
	f := testField()
	s := match.Snapshot{
		Field:  f,
		Phase:  match.PhaseBallInPlay,
		Chaser: -1,
		Ball:   &match.Ball{Pos: mgl64.Vec3{450, 300, 40}, Radius: 7},
		Cursor: f.Home(),
	}
	a := Build(s, match.DefaultTuning(), NewFlat(), 0)
	for i := 0; i < a.Discs.Len(); i++ {
		p, size, c := a.Discs.Sprite(i)
		if c == Palette.Ball && size == 14 {
			if p.Y() != 260 {
				t.Fatalf("ball y got=%v want=260", p.Y())
			}
			return
		}
	}
	t.Fatal("ball not drawn")
}

func TestHUD(t *testing.T) {
	m := match.New(match.DefaultTuning(), nil)
	var log []string
	for i := 0; i < 20; i++ {
		log = append(log, "line")
	}
	texts := HUD(m.Snapshot(), log, 1100, 760)

	var sawScore, sawPrompt bool
	logCount := 0
	for _, tx := range texts {
		switch {
		case tx.Str == "AWAY 0  HOME 0":
			sawScore = true
		case strings.HasPrefix(tx.Str, "ENTER: full game"):
			sawPrompt = true
		case tx.Str == "line":
			logCount++
		}
		if tx.X < 0 || tx.X+TextWidth(tx.Str, tx.Scale) > 1100 {
			t.Fatalf("text %q off screen at x=%d", tx.Str, tx.X)
		}
	}
	if !sawScore || !sawPrompt {
		t.Fatalf("score=%v prompt=%v in %+v", sawScore, sawPrompt, texts)
	}
	if logCount != LogLines {
		t.Fatalf("log lines got=%d want=%d", logCount, LogLines)
	}
}

func TestTextWidth(t *testing.T) {
	if got := TextWidth("abc", 1); got != 21 {
		t.Fatalf("width got=%d want=21", got)
	}
	if got := TextWidth("ab\nabcd", 2); got != 56 {
		t.Fatalf("multiline width got=%d want=56", got)
	}
}

func TestBounds(t *testing.T) {
	f := testField()
	lo, hi := Bounds(f, NewFlat())
	if lo != (mgl64.Vec2{0, 0}) || hi != (mgl64.Vec2{f.W, f.H}) {
		t.Fatalf("flat bounds got=%v %v", lo, hi)
	}
	lo, hi = Bounds(f, geom.NewBehind(f))
	if hi.X()-lo.X() != f.W {
		t.Fatalf("behind bounds got=%v %v", lo, hi)
	}
}
