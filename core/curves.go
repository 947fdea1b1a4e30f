package core

// The altitude falloff and distance curves are policies, not recoverable
// formulas, so both are exposed as swappable function types on the Engine.
// Replacements must keep the documented shape: threshold met yields the
// full base value, moving further past the threshold is monotonically
// non-increasing, and the result is never negative.

// Tunable curve parameters.
const (
	// DefaultAltitudeSpan is how many feet past the crew's max-altitude
	// threshold the score takes to decay to zero.
	DefaultAltitudeSpan = 2000.0

	// DefaultGainSpan is how many feet of daily elevation gain past the
	// crew's threshold the score takes to decay to zero.
	DefaultGainSpan = 500.0

	// DefaultTargetDistance is the preferred trek length in miles when a
	// crew has no configured distance preference.
	DefaultTargetDistance = 50.0

	// DefaultDistanceSpread is how far from the target distance the
	// distance score takes to decay to zero, in miles.
	DefaultDistanceSpread = 50.0
)

// FalloffCurve scores a value against a threshold: the full base when the
// value is at or under the threshold, decaying toward zero beyond it.
type FalloffCurve func(value, threshold, base float64) float64

// DistanceCurve scores an itinerary's distance against the crew's
// preference band, scaled by the DISTANCE factor base value.
type DistanceCurve func(distanceMiles, base float64) float64

// LinearFalloff returns a FalloffCurve that decays linearly from base to 0
// over span units past the threshold.
func LinearFalloff(span float64) FalloffCurve {
	return func(value, threshold, base float64) float64 {
		if value <= threshold {
			return base
		}
		if span <= 0 {
			return 0
		}
		over := value - threshold
		if over >= span {
			return 0
		}
		return base * (1 - over/span)
	}
}

// TriangularDistance returns a DistanceCurve peaking at target and
// decaying linearly to 0 at target±spread. The score increases
// monotonically up to the target and decreases monotonically past it.
func TriangularDistance(target, spread float64) DistanceCurve {
	return func(distanceMiles, base float64) float64 {
		if spread <= 0 {
			return 0
		}
		diff := distanceMiles - target
		if diff < 0 {
			diff = -diff
		}
		if diff >= spread {
			return 0
		}
		return base * (1 - diff/spread)
	}
}
