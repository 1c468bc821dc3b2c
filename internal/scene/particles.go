package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"baseball/internal/geom"
	"baseball/internal/match"
)

// MaxParticles caps the live effect particles.
const MaxParticles = 1024

type ParticleKind uint8

const (
	ParticleDust     ParticleKind = iota // dirt kicked up by a play
	ParticleConfetti                     // home run celebration
	ParticleSpark                        // bat contact flash, drawn additive
)

const (
	particleGravity = 320.0
	particleBounce  = 0.25
	particleAirDrag = 1.65
)

type Particle struct {
	Pos mgl64.Vec3
	Vel mgl64.Vec3

	Size float64

	Life    float64 // negative = delayed start
	MaxLife float64

	Col  Color
	Kind ParticleKind
}

// ParticleSystem is a fixed-capacity pool of short-lived effects.
type ParticleSystem struct {
	Max    int
	P      []Particle
	rng    *match.Rand
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &ParticleSystem{
		Max: maxParticles,
		P:   make([]Particle, 0, maxParticles),
		rng: match.NewRand(seed),
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

func (ps *ParticleSystem) rangeF(min, max float64) float64 {
	return min + (max-min)*ps.rng.Float64()
}

func (ps *ParticleSystem) radial(spdMin, spdMax float64) mgl64.Vec2 {
	ang := ps.rangeF(0, 2*math.Pi)
	spd := ps.rangeF(spdMin, spdMax)
	return mgl64.Vec2{math.Cos(ang) * spd, math.Sin(ang) * spd}
}

// SpawnDust throws a low cloud of dirt around a field point.
func (ps *ParticleSystem) SpawnDust(at mgl64.Vec2, intensity float64) {
	for n := 0; n < int(18*intensity); n++ {
		v := ps.radial(10, 45)
		col := Palette.Dirt.Scale(float32(ps.rangeF(0.85, 1.1)))
		ps.Add(Particle{
			Pos:  at.Vec3(ps.rangeF(0, 2)),
			Vel:  v.Vec3(ps.rangeF(10, 40)),
			Size: ps.rangeF(3, 6), MaxLife: ps.rangeF(0.35, 0.7),
			Col: col, Kind: ParticleDust,
		})
	}
}

// SpawnSparks flashes at the contact point.
func (ps *ParticleSystem) SpawnSparks(at mgl64.Vec2, quality float64) {
	for n := 0; n < 6+int(14*quality); n++ {
		v := ps.radial(40, 140*(0.5+quality))
		ps.Add(Particle{
			Pos:  at.Vec3(ps.rangeF(4, 10)),
			Vel:  v.Vec3(ps.rangeF(20, 80)),
			Size: ps.rangeF(4, 8), MaxLife: ps.rangeF(0.12, 0.3),
			Col: Palette.Accent, Kind: ParticleSpark,
		})
	}
}

var confettiColors = [...]Color{
	RGB8(255, 90, 90), RGB8(255, 220, 90), RGB8(120, 200, 255),
	RGB8(120, 255, 120), RGB8(250, 250, 250),
}

// SpawnConfetti bursts high above a point and drifts down, staggered so the
// shower lasts a couple of seconds.
func (ps *ParticleSystem) SpawnConfetti(at mgl64.Vec2) {
	for i := 0; i < 90; i++ {
		v := ps.radial(20, 90)
		ps.Add(Particle{
			Pos:  at.Vec3(ps.rangeF(30, 60)),
			Vel:  v.Vec3(ps.rangeF(120, 220)),
			Size: ps.rangeF(3, 5), Life: -ps.rangeF(0, 0.6), MaxLife: ps.rangeF(1.4, 2.4),
			Col: confettiColors[i%len(confettiColors)], Kind: ParticleConfetti,
		})
	}
}

// Bind spawns effects from match events. Fielding events also raise dust
// when the play fails.
func (ps *ParticleSystem) Bind(bus *match.EventBus, quality func() float64) {
	bus.Subscribe(match.EventContact, func(e match.Event) {
		ps.SpawnSparks(e.At, quality())
		ps.SpawnDust(e.At, 0.5)
	})
	bus.Subscribe(match.EventHomeRun, func(e match.Event) { ps.SpawnConfetti(e.At) })
	bus.Subscribe(match.EventOut, func(e match.Event) { ps.SpawnDust(e.At, 1) })
	bus.Subscribe(match.EventAdvance, func(e match.Event) { ps.SpawnDust(e.At, 0.6) })
	bus.Subscribe(match.EventFoul, func(e match.Event) { ps.SpawnDust(e.At, 0.4) })
}

// Update advances every particle and drops the expired ones.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	drag := math.Exp(-particleAirDrag * dt)
	for i := 0; i < len(ps.P); {
		p := &ps.P[i]
		p.Life += dt
		if p.Life >= p.MaxLife {
			last := len(ps.P) - 1
			ps.P[i] = ps.P[last]
			ps.P = ps.P[:last]
			continue
		}
		if p.Life < 0 {
			i++
			continue
		}

		vz := p.Vel.Z() - particleGravity*dt
		if p.Kind == ParticleConfetti && vz < -30 {
			vz = -30 // flutter
		}
		xy := p.Vel.Vec2().Mul(drag)
		p.Vel = xy.Vec3(vz)
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		if p.Pos.Z() < 0 {
			p.Pos[2] = 0
			p.Vel = p.Vel.Vec2().Mul(0.5).Vec3(-p.Vel.Z() * particleBounce)
		}
		i++
	}
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

// RenderData splits particles into glow (additive) and normal (alpha blend)
// buffers in screen space.
func (ps *ParticleSystem) RenderData(pr geom.Projector, glowBuf, normBuf Buffer) (Buffer, Buffer) {
	glowBuf = glowBuf[:0]
	normBuf = normBuf[:0]

	for _, p := range ps.P {
		if p.Life < 0 {
			continue
		}
		t := geom.Clamp(p.Life/p.MaxLife, 0, 1)
		a := 1 - t
		if p.Kind == ParticleDust {
			a *= 0.8
		}
		sp, k := pr.Project(p.Pos)
		size := p.Size * k
		if p.Kind == ParticleDust {
			size *= 1 + t
		}
		if p.Kind == ParticleSpark {
			glowBuf = glowBuf.Add(sp, size, p.Col.Scale(float32(a)).WithAlpha(float32(a)), 0)
			continue
		}
		// Confetti tumbles.
		rot := 0.0
		if p.Kind == ParticleConfetti {
			rot = p.Life * 9
		}
		normBuf = normBuf.Add(sp, size, p.Col.WithAlpha(float32(a)), rot)
	}
	return glowBuf, normBuf
}
