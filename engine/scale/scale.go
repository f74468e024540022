package scale

import "math"

func clamp(t, min, max float64) float64 {
	min, max = math.Min(min, max), math.Max(min, max)
	return math.Max(math.Min(t, max), min)
}

// Clamp returns a function that linearly maps [rMin,rMax] onto [tMin,tMax], clamping
// results that fall outside the target interval.
func Clamp(rMin, rMax, tMin, tMax float64) func(m float64) float64 {
	return func(m float64) float64 {
		if rMax == rMin {
			return clamp(tMax, tMin, tMax)
		}
		v := (m-rMin)/(rMax-rMin)*(tMax-tMin) + tMin
		return clamp(v, tMin, tMax)
	}
}

// ToUnitClamp returns a function that scales a number from the interval [rMin,rMax]
// to the unit interval ([0,1]), if the result falls outside [0,1], it is clamped
// to 0 or 1.
func ToUnitClamp(rMin, rMax float64) func(m float64) float64 {
	return Clamp(rMin, rMax, 0, 1)
}

// Unit clamps v to [0,1].
func Unit(v float64) float64 {
	return clamp(v, 0, 1)
}
