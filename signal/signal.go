// Package signal holds the pure numeric helpers behind the bar
// visualization: sample sanitizing, exponential smoothing and the
// discrete display bucket mapping.
package signal

import "math"

// SmoothAlpha is the EMA weight pulling the displayed level toward the
// target level on each frame.
const SmoothAlpha = 0.3

// Clamp sanitizes a raw sample into [0,1]. NaN and infinities map to 0.
func Clamp(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Smooth advances prev one EMA step toward target.
func Smooth(prev, target float64) float64 {
	return prev + (target-prev)*SmoothAlpha
}

// Bucket maps a bar value to one of 11 display classes (0..10). The
// class only selects a rendering style; the continuous value is kept.
func Bucket(x float64) int {
	return int(math.Round(Clamp(x) * 10))
}
