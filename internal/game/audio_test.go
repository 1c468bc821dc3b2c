package game

import (
	"io"
	"math"
	"testing"

	"baseball/internal/match"
)

func TestEveryMatchEventHasASound(t *testing.T) {
	for e := match.EventStart; e <= match.EventHalfOver; e++ {
		if _, ok := SoundFor(e); !ok {
			t.Fatalf("event %d has no sound", e)
		}
	}
	if _, ok := SoundFor(match.EventReady); ok {
		t.Fatalf("ready should be silent")
	}
}

func TestGeneratedSoundsAreStereoFloat(t *testing.T) {
	for k := SoundStart; k <= SoundHalfOver; k++ {
		buf := generateSound(k)
		if len(buf) == 0 || len(buf)%8 != 0 {
			t.Fatalf("sound %d len=%d", k, len(buf))
		}
		for i := 0; i < len(buf); i += 4 {
			bits := uint32(buf[i]) | uint32(buf[i+1])<<8 | uint32(buf[i+2])<<16 | uint32(buf[i+3])<<24
			v := float64(math.Float32frombits(bits))
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("sound %d sample %d is %v", k, i/4, v)
			}
		}
	}
}

func TestSoundReaderDrains(t *testing.T) {
	r := &soundReader{data: make([]byte, 20)}
	p := make([]byte, 8)
	total := 0
	for {
		n, err := r.Read(p)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if total != 20 {
		t.Fatalf("read got=%d want=20", total)
	}
}

func TestADSRShape(t *testing.T) {
	if v := adsr(0, 0.1, 0.1, 0.5, 0.2); v != 0 {
		t.Fatalf("start got=%v", v)
	}
	if v := adsr(0.1, 0.1, 0.1, 0.5, 0.2); v != 1 {
		t.Fatalf("peak got=%v", v)
	}
	if v := adsr(0.5, 0.1, 0.1, 0.5, 0.2); v != 0.5 {
		t.Fatalf("sustain got=%v", v)
	}
	if v := adsr(1, 0.1, 0.1, 0.5, 0.2); math.Abs(v) > 1e-9 {
		t.Fatalf("end got=%v", v)
	}
}
