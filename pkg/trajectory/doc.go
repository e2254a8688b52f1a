// Package trajectory implements an online, time-optimal, jerk-limited
// motion generator for multi-degree-of-freedom systems. Given a current
// kinematic state and a target state plus per-DoF velocity/acceleration/
// jerk limits, it produces a piecewise constant-jerk trajectory that
// reaches the target in minimum time and synchronizes every DoF so they
// finish together.
//
// Copyright (C) 2026 Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.
package trajectory

import "math"

const (
	// epsState bounds the boundary-condition checks on position, velocity
	// and acceleration (p[7], v[7], a[7] against the target).
	epsState = 1e-8

	// epsLimit bounds the velocity/acceleration saturation checks.
	epsLimit = 1e-9

	// epsBrake bounds the brake sub-segment sizing.
	epsBrake = 2e-15
)

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func clampSqrt(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}
