package scene

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"baseball/internal/match"
)

// Text is one HUD string placed in screen pixels (top-left origin).
type Text struct {
	X, Y  int
	Scale float32
	Color Color
	Str   string
}

// Face is the HUD font. The desktop shell rasterises the same face into
// its texture atlas, so widths measured here match what is drawn.
var Face = basicfont.Face7x13

// TextWidth returns the width of s in screen pixels at scale.
func TextWidth(s string, scale float32) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		if lw := font.MeasureString(Face, line).Ceil(); lw > w {
			w = lw
		}
	}
	return int(float32(w) * scale)
}

// LogLines is how many event-log lines the HUD shows.
const LogLines = 8

// HUD lays out the scoreboard, the prompt for the current phase and the
// most recent event-log lines.
func HUD(s match.Snapshot, log []string, fbW, fbH int) []Text {
	const margin = 10
	scale := float32(1.4)
	if fbW < 700 {
		scale = 1
	}
	line := int(float32(Face.Metrics().Height.Ceil()) * scale * 1.3)

	var out []Text
	put := func(x, y int, sc float32, c Color, str string) {
		out = append(out, Text{X: x, Y: y, Scale: sc, Color: c, Str: str})
	}
	right := func(y int, sc float32, c Color, str string) {
		put(fbW-margin-TextWidth(str, sc), y, sc, c, str)
	}

	// Scoreboard.
	y := margin
	put(margin, y, scale, Palette.Text, fmt.Sprintf("AWAY %d  HOME %d", s.Score.Away, s.Score.Home))
	y += line
	half := "Bottom"
	if s.Top {
		half = "Top"
	}
	put(margin, y, scale, Palette.Text, fmt.Sprintf("%s %d", half, s.Inning))
	y += line
	put(margin, y, scale, Palette.Accent, fmt.Sprintf("Outs %s  Strikes %s", pips(s.Outs, 3), pips(s.Strikes, 3)))
	y += line
	put(margin, y, scale, Palette.TextDim, "Bases "+bases(s.Occupied))

	// Mode and counters.
	right(margin, scale, Palette.Text, s.Mode.Title())
	right(margin+line, scale, Palette.TextDim, fmt.Sprintf("Pitches %d  Hits %d  HR %d", s.Pitches, s.Hits, s.HomeRuns))
	if s.Contact.Quality > 0 {
		right(margin+2*line, scale, Palette.TextDim, fmt.Sprintf("Contact %.2f  Power %.2f", s.Contact.Quality, s.Contact.Power))
	}

	// Prompt.
	prompt, pc := Prompt(s.Phase)
	big := scale * 1.3
	put(fbW/2-TextWidth(prompt, big)/2, fbH-margin-int(float32(line)*1.3), big, pc, prompt)

	// Event log, newest on top, fading with age.
	ly := fbH - margin - 3*line - LogLines*line
	for i, l := range log {
		if i >= LogLines {
			break
		}
		c := Palette.Text
		if i > 0 {
			c = Palette.TextDim.WithAlpha(1 - float32(i)/float32(LogLines+2))
		}
		put(margin, ly+i*line, scale*0.85, c, l)
	}
	return out
}

// Prompt tells the player what the current phase is waiting for.
func Prompt(p match.Phase) (string, Color) {
	switch p {
	case match.PhaseIdle:
		return "ENTER: full game   H: home run derby", Palette.Accent
	case match.PhaseReadyForPitch:
		return "P: pitch", Palette.Text
	case match.PhasePitched:
		return "SPACE: swing!", Palette.CursorHot
	case match.PhaseBallInPlay:
		return "Ball in play", Palette.Text
	case match.PhaseHalfEnded:
		return "Three outs. ENTER: next half", Palette.Alert
	}
	return "", Palette.Text
}

func pips(n, of int) string {
	if n > of {
		n = of
	}
	return strings.Repeat("*", n) + strings.Repeat(".", of-n)
}

func bases(occ [3]bool) string {
	names := [3]string{"1B", "2B", "3B"}
	var parts []string
	for i, on := range occ {
		if on {
			parts = append(parts, names[i])
		}
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}
