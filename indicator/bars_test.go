package indicator

import (
	"math"
	"testing"
)

func TestListeningBarsStayInRange(t *testing.T) {
	for _, level := range []float64{0, 0.04, 0.5, 0.95, 1} {
		for phase := 0.0; phase < 2*math.Pi; phase += 0.1 {
			for i, b := range Bars(level, phase, Listening) {
				if b < listenFloor || b > 1 {
					t.Fatalf("bar %d = %v at level %v phase %v, outside [%v,1]",
						i, b, level, phase, listenFloor)
				}
			}
		}
	}
}

func TestListeningFloorDuringSilence(t *testing.T) {
	bars := Bars(0, 0, Listening)
	for i, b := range bars {
		if b < listenFloor {
			t.Errorf("bar %d = %v during silence, below floor", i, b)
		}
	}
}

func TestListeningWaveTravels(t *testing.T) {
	bars := Bars(0.5, 1.0, Listening)
	same := true
	for i := 1; i < NumBars; i++ {
		if bars[i] != bars[0] {
			same = false
		}
	}
	if same {
		t.Error("all bars equal; per-bar phase offset missing")
	}
}

func TestPulseBarsExactFormula(t *testing.T) {
	phase := 0.37
	bars := Bars(0.8, phase, Processing)
	for i, b := range bars {
		offset := float64(i) / NumBars * 1.5 * math.Pi
		want := pulseBase + (math.Sin(phase+offset)+1)*pulseDepth
		if math.Abs(b-want) > 1e-12 {
			t.Errorf("bar %d = %v, want %v", i, b, want)
		}
	}
}

// Two runs with different prior displayed levels but identical phase
// must render identically outside Listening.
func TestPulseIgnoresLevel(t *testing.T) {
	for _, state := range []State{Processing, Cancelling} {
		a := Bars(0.1, 2.2, state)
		b := Bars(0.9, 2.2, state)
		if a != b {
			t.Errorf("%v bars depend on displayed level: %v vs %v", state, a, b)
		}
	}
}

func TestPulseRange(t *testing.T) {
	// 0.2 + (sin+1)*0.12 stays within [0.2, 0.44]
	for phase := 0.0; phase < 4*math.Pi; phase += 0.05 {
		for i, b := range Bars(0, phase, Cancelling) {
			if b < pulseBase || b > pulseBase+2*pulseDepth {
				t.Fatalf("pulse bar %d = %v at phase %v, outside range", i, b, phase)
			}
		}
	}
}

func TestBucketsClasses(t *testing.T) {
	bars := Bars(1, 0, Listening)
	for i, c := range Buckets(bars) {
		if c < 0 || c > 10 {
			t.Errorf("bucket %d = %d, outside 0..10", i, c)
		}
	}
}
