package trajectory

// The eight builders below each construct a UDDU-pattern Profile for the
// "up" direction (everything moves in the positive sense) reaching from
// (p0, v0, a0) to (pf, vf, af) for one combination of saturated limits.
// Step1 negates inputs and calls these for the "down" direction too.
//
// Segment layout (UDDU): ramp to peak accel (t0), hold (t1), ramp to zero
// accel at cruise velocity (t2), cruise (t3), ramp to trough accel (t4),
// hold (t5), ramp to af (t6).

// buildACC0ACC1VEL is the full seven-segment trapezoid: both acceleration
// plateaus and the velocity cruise are all reached.
func buildACC0ACC1VEL(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (Profile, bool) {
	if aMax <= 0 || jMax <= 0 {
		return Profile{}, false
	}
	t0, j0 := rampTime(a0, aMax, jMax)
	t2, j2 := rampTime(aMax, 0, jMax)
	t4, j4 := rampTime(0, -aMax, jMax)
	t6, j6 := rampTime(-aMax, af, jMax)

	_, v1, _ := Integrate(t0, p0, v0, a0, j0)
	_, dv2, _ := Integrate(t2, 0, 0, aMax, j2)
	delta2 := dv2

	t1 := (vMax - v1 - delta2) / aMax
	if t1 < -1e-9 {
		return Profile{}, false
	}
	if t1 < 0 {
		t1 = 0
	}

	_, dv4, _ := Integrate(t4, 0, 0, 0, j4)
	_, dv6, _ := Integrate(t6, 0, 0, -aMax, j6)
	v4 := vMax + dv4
	t5 := (v4 + dv6 - vf) / aMax
	if t5 < -1e-9 {
		return Profile{}, false
	}
	if t5 < 0 {
		t5 = 0
	}

	p := Profile{T: [7]float64{t0, t1, t2, 0, t4, t5, t6}, Direction: Up, Teeth: UDDU}
	p.evaluate(p0, v0, a0, jMax)
	p7WithoutCruise := p.P[7]
	t3 := (pf - p7WithoutCruise) / vMax
	if t3 < -1e-9 {
		return Profile{}, false
	}
	if t3 < 0 {
		t3 = 0
	}
	p.T[3] = t3
	p.Limits = LimitsACC0Acc1Vel
	return p, true
}

// buildVEL reaches the velocity cruise without either acceleration plateau
// holding: the rise and fall each use a free two-segment ramp pair.
func buildVEL(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (Profile, bool) {
	if jMax <= 0 {
		return Profile{}, false
	}
	t0, t2, ok := twoUnknownRamp(v0, a0, vMax, 0, jMax, true)
	if !ok {
		return Profile{}, false
	}
	t4, t6, ok := twoUnknownRamp(vMax, 0, vf, af, jMax, false)
	if !ok {
		return Profile{}, false
	}
	p := Profile{T: [7]float64{t0, 0, t2, 0, t4, 0, t6}, Direction: Up, Teeth: UDDU}
	p.evaluate(p0, v0, a0, jMax)
	t3 := (pf - p.P[7]) / vMax
	if t3 < -1e-9 {
		return Profile{}, false
	}
	if t3 < 0 {
		t3 = 0
	}
	p.T[3] = t3
	p.Limits = LimitsVel
	return p, true
}

// buildACC0VEL holds the initial acceleration plateau and the velocity
// cruise, but lets the final descent run without a hold at -aMax.
func buildACC0VEL(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (Profile, bool) {
	if aMax <= 0 || jMax <= 0 {
		return Profile{}, false
	}
	t0, j0 := rampTime(a0, aMax, jMax)
	t2, j2 := rampTime(aMax, 0, jMax)
	_, v1, _ := Integrate(t0, p0, v0, a0, j0)
	_, delta2, _ := Integrate(t2, 0, 0, aMax, j2)
	t1 := (vMax - v1 - delta2) / aMax
	if t1 < -1e-9 {
		return Profile{}, false
	}
	if t1 < 0 {
		t1 = 0
	}

	t4, t6, ok := twoUnknownRamp(vMax, 0, vf, af, jMax, false)
	if !ok {
		return Profile{}, false
	}
	p := Profile{T: [7]float64{t0, t1, t2, 0, t4, 0, t6}, Direction: Up, Teeth: UDDU}
	p.evaluate(p0, v0, a0, jMax)
	t3 := (pf - p.P[7]) / vMax
	if t3 < -1e-9 {
		return Profile{}, false
	}
	if t3 < 0 {
		t3 = 0
	}
	p.T[3] = t3
	p.Limits = LimitsAcc0Vel
	return p, true
}

// buildACC1VEL is the mirror of buildACC0VEL: the rise has no hold, the
// descent holds at -aMax, and the cruise reaches vMax.
func buildACC1VEL(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (Profile, bool) {
	if aMax <= 0 || jMax <= 0 {
		return Profile{}, false
	}
	t0, t2, ok := twoUnknownRamp(v0, a0, vMax, 0, jMax, true)
	if !ok {
		return Profile{}, false
	}
	t4, j4 := rampTime(0, -aMax, jMax)
	t6, j6 := rampTime(-aMax, af, jMax)
	_, delta4, _ := Integrate(t4, 0, 0, 0, j4)
	_, delta6, _ := Integrate(t6, 0, 0, -aMax, j6)
	v4 := vMax + delta4
	t5 := (v4 + delta6 - vf) / aMax
	if t5 < -1e-9 {
		return Profile{}, false
	}
	if t5 < 0 {
		t5 = 0
	}
	p := Profile{T: [7]float64{t0, 0, t2, 0, t4, t5, t6}, Direction: Up, Teeth: UDDU}
	p.evaluate(p0, v0, a0, jMax)
	t3 := (pf - p.P[7]) / vMax
	if t3 < -1e-9 {
		return Profile{}, false
	}
	if t3 < 0 {
		t3 = 0
	}
	p.T[3] = t3
	p.Limits = LimitsAcc1Vel
	return p, true
}

// buildACC0ACC1 holds both acceleration plateaus with no velocity cruise:
// t1 and t5 are solved jointly against the final velocity and position via
// newton2DRobust, seeded across the move's characteristic timescales so a
// feasible root isn't missed just because the origin seed doesn't converge.
func buildACC0ACC1(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (Profile, bool) {
	if aMax <= 0 || jMax <= 0 {
		return Profile{}, false
	}
	t0, _ := rampTime(a0, aMax, jMax)
	t2, _ := rampTime(aMax, 0, jMax)
	t4, _ := rampTime(0, -aMax, jMax)
	t6, _ := rampTime(-aMax, af, jMax)

	build := func(t1, t5 float64) Profile {
		p := Profile{T: [7]float64{t0, t1, t2, 0, t4, t5, t6}, Direction: Up, Teeth: UDDU}
		p.evaluate(p0, v0, a0, jMax)
		return p
	}
	residual := func(t1, t5 float64) (float64, float64) {
		p := build(t1, t5)
		return p.V[7] - vf, p.P[7] - pf
	}
	scales := candidateScales(vf-v0, pf-p0, aMax, jMax)
	t1, t5, ok := newton2DRobust(residual, scales, scales)
	if !ok {
		return Profile{}, false
	}
	p := build(t1, t5)
	p.Limits = LimitsAcc0Acc1
	return p, true
}

// buildACC0 holds the initial acceleration plateau only; the descent merges
// its ramp-down and ramp-to-trough into a single continuum (no cruise, no
// final hold), solved jointly with the initial hold duration via
// newton2DRobust's multi-seed search.
func buildACC0(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (Profile, bool) {
	if aMax <= 0 || jMax <= 0 {
		return Profile{}, false
	}
	t0, _ := rampTime(a0, aMax, jMax)

	build := func(t1, tDown float64) Profile {
		t6, _ := rampTime(aMax-jMax*tDown, af, jMax)
		p := Profile{T: [7]float64{t0, t1, tDown, 0, 0, 0, t6}, Direction: Up, Teeth: UDDU}
		p.evaluate(p0, v0, a0, jMax)
		return p
	}
	residual := func(t1, tDown float64) (float64, float64) {
		p := build(t1, tDown)
		return p.V[7] - vf, p.P[7] - pf
	}
	scales := candidateScales(vf-v0, pf-p0, aMax, jMax)
	t1, tDown, ok := newton2DRobust(residual, scales, scales)
	if !ok {
		return Profile{}, false
	}
	p := build(t1, tDown)
	p.Limits = LimitsAcc0
	return p, true
}

// buildACC1 is the mirror of buildACC0: the rise merges ramp-up and
// ramp-down to zero accel into a continuum (t0 free, t2 derived from accel
// continuity), and the final hold at -aMax is solved jointly with t0 via
// newton2DRobust's multi-seed search.
func buildACC1(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (Profile, bool) {
	if aMax <= 0 || jMax <= 0 {
		return Profile{}, false
	}
	t4, _ := rampTime(0, -aMax, jMax)
	t6, _ := rampTime(-aMax, af, jMax)

	build := func(t0, t5 float64) Profile {
		t2 := t0 + a0/jMax
		if t2 < 0 {
			t2 = 0
		}
		p := Profile{T: [7]float64{t0, 0, t2, 0, t4, t5, t6}, Direction: Up, Teeth: UDDU}
		p.evaluate(p0, v0, a0, jMax)
		return p
	}
	residual := func(t0, t5 float64) (float64, float64) {
		p := build(t0, t5)
		return p.V[7] - vf, p.P[7] - pf
	}
	scales := candidateScales(vf-v0, pf-p0, aMax, jMax)
	t0, t5, ok := newton2DRobust(residual, scales, scales)
	if !ok {
		return Profile{}, false
	}
	p := build(t0, t5)
	p.Limits = LimitsAcc1
	return p, true
}

// buildNONE is the fully unconstrained case: neither acceleration plateau
// holds and there is no velocity cruise. The rise (t0) and the merged
// descent (tDown) are solved jointly against the final velocity, position
// and acceleration via newton2DRobust, with t6 derived from continuity at
// the trough.
func buildNONE(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (Profile, bool) {
	if jMax <= 0 {
		return Profile{}, false
	}
	build := func(t0, tDown float64) Profile {
		peak := a0 + jMax*t0
		trough := peak - jMax*tDown
		t6, _ := rampTime(trough, af, jMax)
		p := Profile{T: [7]float64{t0, 0, tDown, 0, 0, 0, t6}, Direction: Up, Teeth: UDDU}
		p.evaluate(p0, v0, a0, jMax)
		return p
	}
	residual := func(t0, tDown float64) (float64, float64) {
		p := build(t0, tDown)
		return p.V[7] - vf, p.P[7] - pf
	}
	scales := candidateScales(vf-v0, pf-p0, aMax, jMax)
	t0, tDown, ok := newton2DRobust(residual, scales, scales)
	if !ok {
		return Profile{}, false
	}
	p := build(t0, tDown)
	p.Limits = LimitsNone
	return p, true
}
