package bot

import "math"

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// orZero replaces NaN and infinities with 0
func orZero(x float64) float64 {
	if !finite(x) {
		return 0
	}
	return x
}

// safeTanh is tanh that never returns NaN
func safeTanh(x float64) float64 {
	return math.Tanh(orZero(x))
}

// safeDiv returns 0 when the quotient is undefined
func safeDiv(num, den float64) float64 {
	if den == 0 || !finite(den) {
		return 0
	}
	return orZero(num / den)
}

func clamp(x, lo, hi float64) float64 {
	if !finite(x) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}

func clamp01(x float64) float64 {
	return clamp(x, 0, 1)
}

// sign returns -1, 0 or 1
func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
