package trajectory

import "math"

// Brake computes up to two pre-trajectory segments that bring a state
// already outside (or about to exceed) the velocity/acceleration limits
// back into the feasible interior, so Step1 can start from a compliant
// state. The common case is an empty brake (both durations zero).
func Brake(v0, a0, vMax, aMax, jMax float64) (t [2]float64, j [2]float64) {
	if math.Abs(a0) > aMax+epsBrake {
		return accelerationBrake(v0, a0, vMax, aMax, jMax)
	}

	// Projected velocity if a0 were allowed to decay to zero at jMax.
	vProjected := v0 + sign(a0)*a0*a0/(2*jMax)
	if math.Abs(v0) > vMax+epsBrake || math.Abs(vProjected) > vMax+epsBrake {
		return velocityBrake(v0, a0, vMax, aMax, jMax)
	}

	return t, j
}

// accelerationBrake handles |a0| > aMax: ramp acceleration down in
// magnitude to aMax with jerk of the opposite sign. If the velocity reached
// along the way would still exceed vMax, a single-segment cap isn't enough;
// fall back to a two-segment rise-then-fall (or fall-then-rise) that lands
// exactly on (vTarget, 0), which is always within aMax since 0 is.
func accelerationBrake(v0, a0, vMax, aMax, jMax float64) (t [2]float64, j [2]float64) {
	s := sign(a0)
	j[0] = -s * jMax
	t[0] = (math.Abs(a0) - aMax) / jMax

	_, v1, a1 := Integrate(t[0], 0, v0, a0, j[0])

	// Where would velocity end up if acceleration were allowed to decay
	// from a1 all the way to zero at jMax?
	vEnd := v1 + sign(a1)*a1*a1/(2*jMax)
	if math.Abs(v1) <= vMax+epsBrake && math.Abs(vEnd) <= vMax+epsBrake {
		return t, j
	}

	sv := sign(vEnd)
	if sv == 0 {
		sv = s
	}
	rising := j[0] > 0
	t0, t1, ok := twoUnknownRamp(v0, a0, sv*vMax, 0, jMax, rising)
	if ok {
		t[0], t[1] = t0, t1
		j[1] = -j[0]
		return t, j
	}

	// Degenerate fallback: keep continuing the same jerk until v lands on
	// target; rare, only reached when the two-segment solve has no
	// non-negative root (e.g. jMax tiny relative to the overshoot).
	j[1] = -s * jMax
	t[1] = brakeVelocityDuration(v1, a1, vMax, jMax, s)
	return t, j
}

// velocityBrake handles |v0| > vMax (or a velocity overshoot projected from
// a0): bring (v, a) to exactly (s*vMax, 0) via a rise-then-fall (or
// fall-then-rise) constant-jerk pair. Landing the second segment at a=0
// rather than merely "whatever aMax allows" keeps the result inside aMax
// regardless of how large the initial overshoot is.
func velocityBrake(v0, a0, vMax, aMax, jMax float64) (t [2]float64, j [2]float64) {
	s := sign(v0)
	if v0 == 0 {
		s = sign(a0)
	}
	j[0] = -s * jMax
	t[0] = brakeVelocityDuration(v0, a0, vMax, jMax, s)

	_, _, a1 := Integrate(t[0], 0, v0, a0, j[0])
	if math.Abs(a1) <= aMax+epsBrake {
		return t, j
	}

	// The single-segment solution overshoots aMax; solve for the
	// two-segment pair that lands exactly on (s*vMax, 0) instead.
	rising := j[0] > 0
	t0, t1, ok := twoUnknownRamp(v0, a0, s*vMax, 0, jMax, rising)
	if ok {
		t[0], t[1] = t0, t1
		j[1] = -j[0]
		return t, j
	}

	// Degenerate fallback, mirrors the pre-fix single-cap behavior.
	t[0] = (aMax*sign(a1) - a0) / j[0]
	if t[0] < 0 {
		t[0] = 0
	}
	_, v1, a1b := Integrate(t[0], 0, v0, a0, j[0])
	j[1] = -j[0]
	t[1] = brakeVelocityDuration(v1, a1b, vMax, jMax, sign(a1b))
	return t, j
}

// brakeVelocityDuration solves for the duration of a constant jerk of
// magnitude jMax (direction -s) that brings v0 (with initial acceleration
// a0) to exactly s*vMax, clamping the radicand at zero.
func brakeVelocityDuration(v0, a0, vMax, jMax, s float64) float64 {
	j := -s * jMax
	// v0 + a0*t + 0.5*j*t^2 = s*vMax
	A, B, C := 0.5*j, a0, v0-s*vMax
	if math.Abs(A) < 1e-15 {
		if math.Abs(B) < 1e-15 {
			return 0
		}
		t := -C / B
		return math.Max(t, 0)
	}
	disc := clampSqrt(B*B - 4*A*C)
	t1 := (-B + disc) / (2 * A)
	t2 := (-B - disc) / (2 * A)
	return smallestNonNegative(t1, t2)
}

func smallestNonNegative(a, b float64) float64 {
	switch {
	case a >= 0 && b >= 0:
		return math.Min(a, b)
	case a >= 0:
		return a
	case b >= 0:
		return b
	default:
		return 0
	}
}
