package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1 depending on the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
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

// SmoothDamp moves current towards target using a critically damped spring
// that reaches the target in roughly smoothTime seconds. currentVelocity is
// carried between calls by the caller. The result never overshoots target.
func SmoothDamp(current, target float64, currentVelocity *float64, smoothTime, maxSpeed, deltaTime float64) float64 {
	if currentVelocity == nil || deltaTime <= 0 {
		return current
	}

	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime

	x := omega * deltaTime
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTo := target

	maxChange := maxSpeed * smoothTime
	change = Clamp(change, -maxChange, maxChange)
	target = current - change

	temp := (*currentVelocity + omega*change) * deltaTime
	*currentVelocity = (*currentVelocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// prevent overshooting
	if (originalTo-current > 0) == (output > originalTo) {
		output = originalTo
		*currentVelocity = (output - originalTo) / deltaTime
	}

	return output
}
