package match

// Source supplies uniform draws in [0,1). Every random decision in a match
// (pitch target, pitch speed, fluke misses, hit jitter, spray, fielding)
// goes through one Source, so a seeded Source replays a match exactly.
type Source interface {
	Float64() float64
}

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	seed = splitmix64(seed)
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

// Script replays a fixed list of draws and then repeats the last one.
// An empty Script always returns 0.5.
type Script struct {
	Draws []float64
	n     int
}

func NewScript(draws ...float64) *Script {
	return &Script{Draws: draws}
}

func (s *Script) Float64() float64 {
	if len(s.Draws) == 0 {
		return 0.5
	}
	i := s.n
	if i >= len(s.Draws) {
		i = len(s.Draws) - 1
	}
	s.n++
	return s.Draws[i]
}

// Used reports how many draws have been consumed.
func (s *Script) Used() int { return s.n }

// Push appends more draws to the script.
func (s *Script) Push(draws ...float64) {
	if s.n > len(s.Draws) {
		s.n = len(s.Draws)
	}
	s.Draws = append(s.Draws, draws...)
}

// rangeF maps one draw onto [min, max).
func rangeF(src Source, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*src.Float64()
}
