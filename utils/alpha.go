package utils

import "math"

func clamp(t, min, max float64) float64 {
	min, max = math.Min(min, max), math.Max(min, max)
	return math.Max(math.Min(t, max), min)
}

// AlphaByte converts an opacity in [0,1] to a byte, clamping out of range values.
func AlphaByte(opacity float64) uint8 {
	return uint8(math.Round(clamp(opacity, 0, 1) * 255))
}
