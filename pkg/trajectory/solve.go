package trajectory

import "math"

// solveQuadratic returns the real roots of A*t^2 + B*t + C = 0 in
// ascending order. ok is false if A and B are both (numerically) zero.
func solveQuadratic(a, b, c float64) (t1, t2 float64, ok bool) {
	if math.Abs(a) < 1e-14 {
		if math.Abs(b) < 1e-14 {
			return 0, 0, false
		}
		t := -c / b
		return t, t, true
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		disc = 0
	}
	sq := math.Sqrt(disc)
	r1 := (-b + sq) / (2 * a)
	r2 := (-b - sq) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return r1, r2, true
}

// smallestNonNegativeRoot picks the smallest t >= -tol among the two roots,
// clamping tiny negative numerical noise to zero.
func smallestNonNegativeRoot(t1, t2 float64) (float64, bool) {
	const tol = 1e-11
	candidates := make([]float64, 0, 2)
	for _, t := range []float64{t1, t2} {
		if t >= -tol {
			if t < 0 {
				t = 0
			}
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c < best {
			best = c
		}
	}
	return best, true
}

// rampTime returns the non-negative duration needed to move acceleration
// from `from` to `to` under jerk of magnitude jMax, and that jerk with its
// sign chosen to match the direction of travel. Equal endpoints give a zero
// duration; a non-positive jMax gives (0, 0).
func rampTime(from, to, jMax float64) (float64, float64) {
	if jMax <= 0 {
		return 0, 0
	}
	d := to - from
	j := jMax
	if d < 0 {
		j = -jMax
	}
	t := d / j
	if t < 0 {
		t = 0
	}
	return t, j
}

// newton1D finds a root of f within [lo, hi] by bisection with a bounded
// iteration count, guaranteeing termination. f must
// be continuous; the search assumes f(lo) and f(hi) bracket a sign change,
// falling back to whichever endpoint has smaller |f| if they don't.
func newton1D(f func(float64) float64, lo, hi float64) float64 {
	const maxIter = 64
	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return lo
	}
	if fhi == 0 {
		return hi
	}
	if (flo > 0) == (fhi > 0) {
		if math.Abs(flo) < math.Abs(fhi) {
			return lo
		}
		return hi
	}

	x := 0.5 * (lo + hi)
	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if fx == 0 {
			return x
		}
		if (fx > 0) == (flo > 0) {
			lo, flo = x, fx
		} else {
			hi, fhi = x, fx
		}
		x = 0.5 * (lo + hi)
		if hi-lo < 1e-13 {
			break
		}
	}
	return x
}

// twoUnknownRamp solves for the durations of a rise-then-fall (or
// fall-then-rise, via rising) constant-jerk pair that carries (v0, a0) to
// exactly (vTarget, aTarget) with no hold between them. The first segment's
// jerk is +jMax if rising, -jMax otherwise; the second is the opposite sign.
// Returns false if no non-negative pair of durations solves it.
func twoUnknownRamp(v0, a0, vTarget, aTarget, jMax float64, rising bool) (t1, t2 float64, ok bool) {
	j1 := jMax
	if !rising {
		j1 = -jMax
	}
	// a0 + j1*t1 - j1*t2 = aTarget  =>  t2 = t1 + (a0-aTarget)/j1
	c := (a0 - aTarget) / j1

	// Substitute t2 = t1+c into the velocity equation
	//   v0 + a0*t1 + 0.5*j1*t1^2 + (a0+j1*t1)*t2 - 0.5*j1*t2^2 = vTarget
	// and collect in t1:
	//   v0 + a0*c + 0.5*j1*c^2 + (2*a0 + j1*c)*t1 + j1*t1^2 = vTarget
	coeffA := j1
	coeffB := 2*a0 + j1*c
	coeffC := v0 + a0*c + 0.5*j1*c*c - vTarget
	r1, r2, okq := solveQuadratic(coeffA, coeffB, coeffC)
	if !okq {
		return 0, 0, false
	}
	for _, cand := range []float64{r1, r2} {
		if cand < -1e-9 {
			continue
		}
		if cand < 0 {
			cand = 0
		}
		t2c := cand + c
		if t2c < -1e-9 {
			continue
		}
		if t2c < 0 {
			t2c = 0
		}
		return cand, t2c, true
	}
	return 0, 0, false
}

// candidateScales returns a small set of physically-motivated duration
// scales for a jerk-limited move between the given boundary conditions:
// zero, the accel-ramp time (aMax/jMax) and its double, the velocity-ramp
// time (sqrt(|dv|/jMax)) and the position-ramp time (cbrt(|dp|/jMax)). These
// bracket the true root of most Step1 shape residuals regardless of
// which one dominates, so seeding a 2D search from their cross product
// covers cases a single fixed seed misses.
func candidateScales(dv, dp, aMax, jMax float64) []float64 {
	scales := []float64{0}
	if jMax > 0 {
		if aMax > 0 {
			scales = append(scales, aMax/jMax, 2*aMax/jMax)
		}
		if dv < 0 {
			dv = -dv
		}
		scales = append(scales, math.Sqrt(dv/jMax))
		if dp < 0 {
			dp = -dp
		}
		scales = append(scales, math.Cbrt(dp/jMax))
	}
	return scales
}

// newton2DRobust runs newton2D from every (x, y) pair in the cross product
// of xScales and yScales and returns the first candidate whose residual is
// independently verified near zero with both coordinates non-negative. A
// bounded Newton iteration from a single fixed seed can converge to a
// spurious fixed point or fail to converge at all when the true root sits
// far from that seed; trying several physically-motivated seeds means a
// move that genuinely has a feasible solution isn't reported infeasible
// just because the first guess missed it.
func newton2DRobust(f func(x, y float64) (float64, float64), xScales, yScales []float64) (x, y float64, ok bool) {
	const tol = 1e-6
	for _, sx := range xScales {
		for _, sy := range yScales {
			cx, cy, cok := newton2D(f, sx, sy)
			if !cok {
				continue
			}
			if cx < -1e-9 || cy < -1e-9 {
				continue
			}
			if cx < 0 {
				cx = 0
			}
			if cy < 0 {
				cy = 0
			}
			fx, fy := f(cx, cy)
			if math.Abs(fx) < tol && math.Abs(fy) < tol {
				return cx, cy, true
			}
		}
	}
	return 0, 0, false
}

// newton2D solves a 2x2 system f(x,y)=(0,0) via Newton's method with a
// finite-difference Jacobian, seeded at (x0, y0) and clamped to stay
// non-negative. Bounded iteration count guarantees termination.
func newton2D(f func(x, y float64) (float64, float64), x0, y0 float64) (x, y float64, ok bool) {
	const (
		maxIter = 80
		h       = 1e-6
		tol     = 1e-9
	)
	x, y = x0, y0
	for iter := 0; iter < maxIter; iter++ {
		fx, fy := f(x, y)
		if math.Abs(fx) < tol && math.Abs(fy) < tol {
			return x, y, true
		}
		fx1, fy1 := f(x+h, y)
		fx2, fy2 := f(x, y+h)
		j11 := (fx1 - fx) / h
		j21 := (fy1 - fy) / h
		j12 := (fx2 - fx) / h
		j22 := (fy2 - fy) / h
		det := j11*j22 - j12*j21
		if math.Abs(det) < 1e-14 {
			break
		}
		dx := (fx*j22 - fy*j12) / det
		dy := (fy*j11 - fx*j21) / det
		nx := x - dx
		ny := y - dy
		if nx < 0 {
			nx = 0
		}
		if ny < 0 {
			ny = 0
		}
		x, y = nx, ny
	}
	fx, fy := f(x, y)
	return x, y, math.Abs(fx) < 1e-6 && math.Abs(fy) < 1e-6
}
