package indicator

import (
	"math"

	"pulsebar/signal"
)

const (
	// NumBars is the width of the visualization.
	NumBars = 9
	// PhaseStep is the phase advance per frame, in radians.
	PhaseStep = 0.14

	waveDepth   = 0.16 // sine ripple on top of the live level
	listenFloor = 0.08 // bars stay faintly visible during silence
	pulseBase   = 0.2
	pulseDepth  = 0.12
)

// Bars maps the smoothed level, phase and lifecycle state to the nine
// bar intensities. While Listening a travelling sine wave rides on the
// live level; any other state pulses on its own, fully decoupled from
// the microphone.
func Bars(level, phase float64, state State) [NumBars]float64 {
	var out [NumBars]float64
	for i := range out {
		offset := float64(i) / NumBars * 1.5 * math.Pi
		if state == Listening {
			b := level + math.Sin(phase+offset)*waveDepth
			if b < listenFloor {
				b = listenFloor
			}
			if b > 1 {
				b = 1
			}
			out[i] = b
		} else {
			out[i] = pulseBase + (math.Sin(phase+offset)+1)*pulseDepth
		}
	}
	return out
}

// Buckets maps bar intensities to their 11-class display styles.
func Buckets(bars [NumBars]float64) [NumBars]int {
	var out [NumBars]int
	for i, b := range bars {
		out[i] = signal.Bucket(b)
	}
	return out
}
