package trajectory

import "math"

// Step2 solves the fixed-duration profile for a single DoF: given a target
// finish time tf (typically the synchronized time chosen across all DoFs),
// find a profile that reaches it exactly, reducing the effective jerk
// magnitude below JMax if the boundary condition allows it to reach tf with
// less aggressive segments.
type Step2 struct {
	P0, V0, A0       float64
	PF, VF, AF       float64
	VMax, AMax, JMax float64
}

// GetProfile tries every limit class (both directions) and, for each,
// searches for an effective jerk jf in (0, JMax] whose resulting profile
// duration matches tf exactly. The first direction/class in enumeration
// order (up before down, then limit-class order) whose profile passes the
// check is returned.
func (s *Step2) GetProfile(tf float64) (Profile, bool) {
	for _, negate := range []bool{false, true} {
		p0, v0, a0, pf, vf, af := s.P0, s.V0, s.A0, s.PF, s.VF, s.AF
		if negate {
			p0, v0, a0, pf, vf, af = -p0, -v0, -a0, -pf, -vf, -af
		}
		for class, build := range step1Builders {
			p, ok := solveStep2Duration(tf, s.JMax, func(jf float64) (Profile, bool) {
				return build(p0, v0, a0, pf, vf, af, s.VMax, s.AMax, jf)
			})
			if !ok {
				continue
			}
			jf := p.jfUsed
			if negate {
				p.negate()
				jf = -jf
			}
			if !p.CheckWithJerk(tf, s.P0, s.V0, s.A0, s.PF, s.VF, s.AF, jf, s.VMax, s.AMax, s.JMax) {
				continue
			}
			p.Limits = Limits(class)
			return p, true
		}
	}
	return Profile{}, false
}

// solveStep2Duration searches jf in (epsilon, jMax] for a profile whose
// total duration equals tf, via bounded bisection on the duration
// residual. Builds that fail for a trial jf are treated as infinitely long,
// steering the search toward larger jf.
func solveStep2Duration(tf, jMax float64, build func(jf float64) (Profile, bool)) (Profile, bool) {
	const lo = 1e-6
	residual := func(jf float64) float64 {
		p, ok := build(jf)
		if !ok {
			return 1e9
		}
		return p.Duration() - tf
	}
	jf := newton1D(residual, lo, jMax)
	p, ok := build(jf)
	if !ok {
		return Profile{}, false
	}
	p.jfUsed = math.Abs(jf)
	return p, true
}
