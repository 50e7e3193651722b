package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Up is world up. The motion core works in y-up coordinates.
var Up = cp.Vector{X: 0, Y: 1}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards moves current towards target by at most maxDelta without overshooting.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AngleBetween returns the unsigned angle between a and b in degrees.
// Zero-length inputs yield 0.
func AngleBetween(a, b cp.Vector) float64 {
	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := Clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(cos) * 180 / math.Pi
}
