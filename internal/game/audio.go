package game

import (
	"fmt"
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"baseball/internal/geom"
	"baseball/internal/match"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundStart SoundKind = iota
	SoundPitch
	SoundBat
	SoundStrike
	SoundBall
	SoundFoul
	SoundOut
	SoundSafe
	SoundRun
	SoundHomeRun
	SoundHalfOver
)

// AudioSystem manages procedural sound effects.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

// activeSounds limits overlapping effects to avoid speaker clipping.
var activeSounds int32

const maxActiveSounds = 4

var sfxVolume = 0.58

// InitAudio initializes the audio system.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return fmt.Errorf("oto context: %w", err)
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// PlaySound plays a procedurally generated sound effect.
func PlaySound(kind SoundKind) {
	playSoundWithGain(kind, 1.0)
}

func playSoundWithGain(kind SoundKind, gain float64) {
	if globalAudio == nil || gain <= 0 {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	if atomic.AddInt32(&activeSounds, 1) > maxActiveSounds {
		atomic.AddInt32(&activeSounds, -1)
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		atomic.AddInt32(&activeSounds, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&activeSounds, -1)
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume * geom.Clamp(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// SoundFor maps a match event to the effect played for it.
func SoundFor(t match.EventType) (SoundKind, bool) {
	switch t {
	case match.EventStart:
		return SoundStart, true
	case match.EventPitch:
		return SoundPitch, true
	case match.EventContact:
		return SoundBat, true
	case match.EventCalledStrike, match.EventSwingMiss, match.EventStrikeout:
		return SoundStrike, true
	case match.EventBall:
		return SoundBall, true
	case match.EventFoul:
		return SoundFoul, true
	case match.EventOut:
		return SoundOut, true
	case match.EventAdvance:
		return SoundSafe, true
	case match.EventRun:
		return SoundRun, true
	case match.EventHomeRun:
		return SoundHomeRun, true
	case match.EventHalfOver:
		return SoundHalfOver, true
	}
	return 0, false
}

// BindAudio plays the matching effect for every match event.
func BindAudio(bus *match.EventBus) {
	bus.SubscribeAll(func(e match.Event) {
		if k, ok := SoundFor(e.Type); ok {
			PlaySound(k)
		}
	})
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation with no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundStart:
		return genOrgan([]float64{392, 523.25, 659.25, 783.99}, 0.11)
	case SoundPitch:
		return genWhoosh()
	case SoundBat:
		return genBatCrack()
	case SoundStrike:
		return genStrike()
	case SoundBall:
		return genBallTick()
	case SoundFoul:
		return genFoul()
	case SoundOut:
		return genOut()
	case SoundSafe:
		return genSafe()
	case SoundRun:
		return genOrgan([]float64{523.25, 659.25, 783.99}, 0.07)
	case SoundHomeRun:
		return genHomeRun()
	case SoundHalfOver:
		return genHalfOver()
	}
	return nil
}

// bells mixes staggered FM bell notes into one buffer.
func bells(freqs []float64, step, tail, modRatio float64) []float64 {
	noteStep := int(step * SampleRate)
	total := len(freqs)*noteStep + int(tail*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range freqs {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, modRatio, 4.5*env) * env * 0.3
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
			mix[start+j] += s
		}
	}
	return mix
}

func render(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genOrgan: ballpark organ run, one square-ish voice per note.
func genOrgan(freqs []float64, step float64) []byte {
	noteLen := int(step * SampleRate)
	total := len(freqs)*noteLen + int(0.2*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range freqs {
		start := fi * noteLen
		dur := noteLen
		if fi == len(freqs)-1 {
			dur = total - start
		}
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.02, 0.2, 0.7, 0.2)
			s := (math.Sin(2*math.Pi*freq*t) + 0.5*math.Sin(2*math.Pi*freq*2*t) + 0.25*math.Sin(2*math.Pi*freq*4*t)) * env * 0.18
			mix[start+j] += s
		}
	}
	return render(mix)
}

// genWhoosh: band-limited noise swell for the pitch leaving the hand.
func genWhoosh() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(24681)
	lp, lp2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		raw := lcg(&seed)
		k := 0.08 + 0.3*p
		lp = lp*(1-k) + raw*k
		lp2 = lp2*0.7 + lp*0.3
		env := math.Sin(math.Pi*p) * 0.5
		putStereoF32(buf, i, softSat((lp-lp2)*2.2*env))
	}
	return buf
}

// genBatCrack: sharp wooden transient with a short resonant knock.
func genBatCrack() []byte {
	n := int(0.14 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(13579)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		crack := 0.0
		if p < 0.02 {
			crack = lcg(&seed) * (1 - p/0.02) * 0.9
		}
		knock := fm(t, 820, 1.41, 2.0) * math.Exp(-p*30) * 0.5
		body := math.Sin(2*math.Pi*210*t) * math.Exp(-p*18) * 0.35
		putStereoF32(buf, i, softSat(crack+knock+body))
	}
	return buf
}

// genStrike: low buzz, descending.
func genStrike() []byte {
	n := int(0.18 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 260 - 140*p
		s := fm(t, freq, 1.5, 2.8*(1-p)) * env * 0.5
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genBallTick: soft mitt pop.
func genBallTick() []byte {
	n := int(0.08 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(1122)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		lp = lp*0.8 + lcg(&seed)*0.2
		s := (math.Sin(2*math.Pi*140*t)*0.5 + lp*0.4) * math.Exp(-p*14)
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genFoul: thin tick followed by a short falling tone.
func genFoul() []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.5, 0.0, 0.2)
		freq := 1100 - 600*p
		s := fm(t, freq, 1.0, 0.8) * env * 0.32
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genOut: two descending notes, umpire style.
func genOut() []byte {
	return render(bells([]float64{587.33, 392}, 0.12, 0.2, 2.0))
}

// genSafe: quick rising pair.
func genSafe() []byte {
	return render(bells([]float64{440, 659.25}, 0.08, 0.15, 2.756))
}

// genHomeRun: bell fanfare over a crowd roar.
func genHomeRun() []byte {
	mix := bells([]float64{523.25, 659.25, 783.99, 1046.5, 1318.51}, 0.09, 0.6, 3.5)
	seed := uint64(97531)
	lp := 0.0
	for i := range mix {
		p := float64(i) / float64(len(mix))
		lp = lp*0.92 + lcg(&seed)*0.08
		mix[i] += lp * math.Sin(math.Pi*p) * 0.9
	}
	return render(mix)
}

// genHalfOver: slow descending minor chord, staggered.
func genHalfOver() []byte {
	dur := 0.75
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	return render(mix)
}
