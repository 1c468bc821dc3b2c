package match

import (
	"fmt"
	"strings"
)

// Phase is the plate-appearance state machine.
type Phase int

const (
	PhaseIdle          Phase = iota // fresh match, waiting for Start
	PhaseReadyForPitch              // between pitches
	PhasePitched                    // pitch in flight, swing allowed
	PhaseBallInPlay                 // batted ball live, fielders chasing
	PhaseHalfEnded                  // three outs, waiting for Start
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReadyForPitch:
		return "ready"
	case PhasePitched:
		return "pitched"
	case PhaseBallInPlay:
		return "ball-in-play"
	case PhaseHalfEnded:
		return "half-ended"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Mode selects the pitch speed range.
type Mode int

const (
	ModeGame Mode = iota
	ModeDerby
)

func (m Mode) String() string {
	if m == ModeDerby {
		return "derby"
	}
	return "game"
}

// Title is the human name used in the log.
func (m Mode) Title() string {
	if m == ModeDerby {
		return "Home Run Derby"
	}
	return "Full Game"
}

// ParseMode accepts the config names plus the short "hr" alias for the
// derby.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "game", "full":
		return ModeGame, nil
	case "derby", "hr", "homerunderby":
		return ModeDerby, nil
	}
	return ModeGame, fmt.Errorf("unknown mode %q", s)
}

// UnmarshalText lets env and yaml decoders fill a Mode directly.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
