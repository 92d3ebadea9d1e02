package interp

// Lerp blends from a to b by t. t is not clamped.
// t == 1 returns b exactly.
func Lerp(a, b, t float64) float64 {
	if t == 1 {
		return b
	}
	return a + (b-a)*t
}

// LerpExp blends from a to b by t raised to power.
// For t <= 0 it returns a, so a non-positive power never produces an
// infinity at the origin.
func LerpExp(a, b, t, power float64) float64 {
	if t <= 0 {
		return a
	}

	return Lerp(a, b, mathPow(t, power))
}

// LerpLog blends from a to b along log_base(1 + t*(base-1)).
// The mapping sends 0 to a and 1 to b. A base of 1 or less degenerates to
// [Lerp].
func LerpLog(a, b, t, base float64) float64 {
	if base <= 1 {
		return Lerp(a, b, t)
	}

	if t <= 0 {
		return a
	}

	return Lerp(a, b, mathLog(1+t*(base-1))/mathLog(base))
}

// Scale maps value from [fromMin, fromMax] onto [toMin, toMax].
// A collapsed source range maps everything to toMax.
func Scale(value, fromMin, fromMax, toMin, toMax float64) float64 {
	span := fromMax - fromMin
	if span == 0 {
		return toMax
	}

	return toMin + (value-fromMin)*(toMax-toMin)/span
}
