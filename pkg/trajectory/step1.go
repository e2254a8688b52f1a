package trajectory

// Step1 solves the free-duration, time-optimal profile for a single DoF:
// given a boundary condition and limits, find the minimum-duration
// constant-jerk profile that satisfies it.
type Step1 struct {
	P0, V0, A0 float64
	PF, VF, AF float64
	VMax, AMax, JMax float64
}

type step1Builder func(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (Profile, bool)

var step1Builders = [8]step1Builder{
	LimitsACC0Acc1Vel: buildACC0ACC1VEL,
	LimitsVel:         buildVEL,
	LimitsAcc0:        buildACC0,
	LimitsAcc1:        buildACC1,
	LimitsAcc0Acc1:    buildACC0ACC1,
	LimitsAcc0Vel:     buildACC0VEL,
	LimitsAcc1Vel:     buildACC1VEL,
	LimitsNone:        buildNONE,
}

// GetBlock enumerates every (direction, limit class) candidate, keeps those
// that satisfy the boundary conditions and limits, and returns the
// minimum-duration one as the Block's accepted profile. Blocked intervals
// are not tracked (HasA/HasB stay false), so the Synchronizer sees only
// each DoF's TMin (see DESIGN.md).
func (s *Step1) GetBlock() (Block, bool) {
	var best Profile
	haveBest := false

	tryDirection := func(negate bool) {
		p0, v0, a0, pf, vf, af := s.P0, s.V0, s.A0, s.PF, s.VF, s.AF
		if negate {
			p0, v0, a0, pf, vf, af = -p0, -v0, -a0, -pf, -vf, -af
		}
		for class, build := range step1Builders {
			p, ok := build(p0, v0, a0, pf, vf, af, s.VMax, s.AMax, s.JMax)
			if !ok {
				continue
			}
			// Check re-derives J from jf, so a mirrored profile needs the
			// mirrored jerk sign.
			jf := s.JMax
			if negate {
				p.negate()
				jf = -jf
			}
			if !p.Check(s.P0, s.V0, s.A0, s.PF, s.VF, s.AF, jf, s.VMax, s.AMax) {
				continue
			}
			p.Limits = Limits(class)
			if !haveBest || p.Duration() < best.Duration() {
				best, haveBest = p, true
			}
		}
	}

	tryDirection(false)
	tryDirection(true)

	if !haveBest {
		return Block{}, false
	}
	return Block{TMin: best.Duration(), PMin: best}, true
}
