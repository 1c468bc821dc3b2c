package match

import (
	"errors"
	"fmt"

	"baseball/internal/geom"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Tuning holds every gameplay constant. Distances are field pixels,
// velocities are pixels per reference frame and lateral bands are
// fractions of the field width.
type Tuning struct {
	FieldWidth  float64 `yaml:"field_width"`
	FieldHeight float64 `yaml:"field_height"`
	FrameRate   float64 `yaml:"frame_rate"` // reference frames per second

	// Pitching.
	PitchTarget geom.Band `yaml:"pitch_target"`
	StrikeZone  geom.Band `yaml:"strike_zone"`
	GameFrames  Range     `yaml:"game_pitch_frames"`  // mound-to-plate travel time
	DerbyFrames Range     `yaml:"derby_pitch_frames"` // home run derby pitches are slower
	PitchDrop   float64   `yaml:"pitch_gravity"`
	PlateDepth  float64   `yaml:"plate_depth"` // fraction of field height
	BallRadius  float64   `yaml:"ball_radius"`

	// Swing.
	ContactRadius float64   `yaml:"contact_radius"`
	MissThreshold float64   `yaml:"miss_threshold"`
	FlukeCutoff   float64   `yaml:"fluke_cutoff"`
	TipBand       geom.Band `yaml:"tip_band"` // misses outside it are foul tips
	Jitter        Range     `yaml:"power_jitter"`
	MinPower      float64   `yaml:"min_power"`
	SprayAngle    float64   `yaml:"spray_angle"` // radians either side of straightaway
	ExitSpeed     Range     `yaml:"exit_speed"`  // at power 0 and power 1
	Loft          Range     `yaml:"loft"`
	TwoBasePower  float64   `yaml:"two_base_power"`
	HomeRunPower  float64   `yaml:"home_run_power"`

	// Ball in play.
	Gravity       float64   `yaml:"gravity"`
	Restitution   float64   `yaml:"restitution"`
	BounceDamp    float64   `yaml:"bounce_damp"`
	RollFriction  float64   `yaml:"roll_friction"`
	WallDamp      float64   `yaml:"wall_damp"`
	FenceDepth    float64   `yaml:"fence_depth"` // fraction of field height
	FenceHeight   float64   `yaml:"fence_height"`
	FairBand      geom.Band `yaml:"fair_band"`
	FoulDepth     float64   `yaml:"foul_depth"`     // fouls only count nearer the plate than this
	InfieldDepth  float64   `yaml:"infield_depth"`  // fielders react once the ball is past this
	FielderSpeed  float64   `yaml:"fielder_speed"`  // per frame
	ReturnSpeed   float64   `yaml:"return_speed"`   // fielders drifting back between plays
	CaptureRadius float64   `yaml:"capture_radius"` // ground distance
	ReachHeight   float64   `yaml:"reach_height"`
	FieldingOdds  float64   `yaml:"fielding_success"`

	// Runners.
	RunnerSpeed Range   `yaml:"runner_speed"` // at power 0 and power 1
	RunnerEase  float64 `yaml:"runner_ease"`

	// Batter cursor.
	CursorSpeed float64   `yaml:"cursor_speed"` // pixels per second at full deflection
	CursorX     geom.Band `yaml:"cursor_x"`
	CursorY     geom.Band `yaml:"cursor_y"` // fractions of field height

	LogCapacity int `yaml:"log_capacity"`
}

// DefaultTuning returns the arcade feel of the 2.5D variant.
func DefaultTuning() Tuning {
	return Tuning{
		FieldWidth:  geom.DefaultWidth,
		FieldHeight: geom.DefaultHeight,
		FrameRate:   60,

		PitchTarget: geom.Band{Min: 0.26, Max: 0.74},
		StrikeZone:  geom.Band{Min: 0.35, Max: 0.65},
		GameFrames:  Range{Min: 7, Max: 11},
		DerbyFrames: Range{Min: 6, Max: 9},
		PitchDrop:   0.12,
		PlateDepth:  0.75,
		BallRadius:  7,

		ContactRadius: 60,
		MissThreshold: 0.2,
		FlukeCutoff:   0.98,
		TipBand:       geom.Band{Min: 0.28, Max: 0.72},
		Jitter:        Range{Min: -0.1, Max: 0.15},
		MinPower:      0.1,
		SprayAngle:    0.85,
		ExitSpeed:     Range{Min: 4, Max: 12},
		Loft:          Range{Min: 2, Max: 6},
		TwoBasePower:  0.55,
		HomeRunPower:  0.8,

		Gravity:       0.2,
		Restitution:   0.25,
		BounceDamp:    0.95,
		RollFriction:  0.96,
		WallDamp:      0.3,
		FenceDepth:    0.04,
		FenceHeight:   10,
		FairBand:      geom.Band{Min: 0.22, Max: 0.78},
		FoulDepth:     0.5,
		InfieldDepth:  0.72,
		FielderSpeed:  2.6,
		ReturnSpeed:   1.5,
		CaptureRadius: 8,
		ReachHeight:   14,
		FieldingOdds:  0.7,

		RunnerSpeed: Range{Min: 1.2, Max: 2.0},
		RunnerEase:  0.06,

		CursorSpeed: 300,
		CursorX:     geom.Band{Min: 0.2, Max: 0.8},
		CursorY:     geom.Band{Min: 0.7, Max: 0.85},

		LogCapacity: 200,
	}
}

// Validate reports every field that would break the simulation.
func (t Tuning) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", name, v))
		}
	}
	band := func(name string, b geom.Band) {
		if b.Min < 0 || b.Max > 1 || b.Min >= b.Max {
			errs = append(errs, fmt.Errorf("%s must satisfy 0 <= min < max <= 1, got [%v,%v]", name, b.Min, b.Max))
		}
	}
	ordered := func(name string, r Range) {
		if r.Min > r.Max {
			errs = append(errs, fmt.Errorf("%s min %v exceeds max %v", name, r.Min, r.Max))
		}
	}

	positive("field_width", t.FieldWidth)
	positive("field_height", t.FieldHeight)
	positive("frame_rate", t.FrameRate)
	band("pitch_target", t.PitchTarget)
	band("strike_zone", t.StrikeZone)
	band("tip_band", t.TipBand)
	band("fair_band", t.FairBand)
	band("cursor_x", t.CursorX)
	band("cursor_y", t.CursorY)
	ordered("game_pitch_frames", t.GameFrames)
	ordered("derby_pitch_frames", t.DerbyFrames)
	positive("game_pitch_frames.min", t.GameFrames.Min)
	positive("derby_pitch_frames.min", t.DerbyFrames.Min)
	ordered("power_jitter", t.Jitter)
	ordered("exit_speed", t.ExitSpeed)
	ordered("loft", t.Loft)
	ordered("runner_speed", t.RunnerSpeed)
	unit("plate_depth", t.PlateDepth)
	unit("fence_depth", t.FenceDepth)
	unit("foul_depth", t.FoulDepth)
	unit("infield_depth", t.InfieldDepth)
	unit("miss_threshold", t.MissThreshold)
	unit("fluke_cutoff", t.FlukeCutoff)
	unit("min_power", t.MinPower)
	unit("fielding_success", t.FieldingOdds)
	unit("restitution", t.Restitution)
	unit("bounce_damp", t.BounceDamp)
	unit("roll_friction", t.RollFriction)
	unit("wall_damp", t.WallDamp)
	unit("runner_ease", t.RunnerEase)
	positive("contact_radius", t.ContactRadius)
	positive("capture_radius", t.CaptureRadius)
	positive("fielder_speed", t.FielderSpeed)
	positive("ball_radius", t.BallRadius)
	if t.TwoBasePower > t.HomeRunPower {
		errs = append(errs, fmt.Errorf("two_base_power %v exceeds home_run_power %v", t.TwoBasePower, t.HomeRunPower))
	}
	if t.LogCapacity <= 0 {
		errs = append(errs, fmt.Errorf("log_capacity must be positive, got %d", t.LogCapacity))
	}
	return errors.Join(errs...)
}

// PitchFrames returns the travel-time range for mode.
func (t Tuning) PitchFrames(m Mode) Range {
	if m == ModeDerby {
		return t.DerbyFrames
	}
	return t.GameFrames
}

// DesiredBases tiers a hit by power: home run attempt, double, single.
func (t Tuning) DesiredBases(power float64) int {
	switch {
	case power >= t.HomeRunPower:
		return 4
	case power >= t.TwoBasePower:
		return 2
	}
	return 1
}
