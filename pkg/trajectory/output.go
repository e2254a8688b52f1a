package trajectory

// Trajectory is a complete synchronized plan: one Profile per DoF (each
// including its own brake pre-segments, if any) sharing a common finish
// time, plus bookkeeping from the planning run that produced it.
type Trajectory struct {
	Profiles    []Profile
	Duration    float64
	LimitingDoF int
	RunID       string
}

// Output is what Generator.Update returns for a single tick: the sampled
// state of every DoF at the current time, plus the result of whatever
// (re)planning happened this tick.
type Output struct {
	Result Result

	NewPosition     []float64
	NewVelocity     []float64
	NewAcceleration []float64

	Time            float64
	TrajectoryTime  float64
	CalculationTime float64

	RunID string
}

// AtTime samples every DoF's profile at trajectory-relative time t. t may
// be negative (clamped to the start) or past the trajectory's duration (the
// state is held/extrapolated at zero jerk from the final segment).
func (tr *Trajectory) AtTime(t float64) (pos, vel, acc []float64) {
	n := len(tr.Profiles)
	pos = make([]float64, n)
	vel = make([]float64, n)
	acc = make([]float64, n)
	for i := range tr.Profiles {
		pos[i], vel[i], acc[i] = tr.Profiles[i].sampleAt(t)
	}
	return pos, vel, acc
}

// At is the exported single-profile sampler named in spec.md §4.6: given a
// query time relative to the start of this profile's brake (or its main
// segments, if it has none), it returns the (p, v, a) state at that time.
func (p *Profile) At(t float64) (pos, vel, acc float64) {
	return p.sampleAt(t)
}

// sampleAt evaluates a single DoF's profile (brake segments, then the seven
// main segments) at time t relative to the start of the brake (or, if there
// is none, the start of the main segments).
func (p *Profile) sampleAt(t float64) (pos, vel, acc float64) {
	if t < 0 {
		t = 0
	}

	pp, vv, aa := p.P[0], p.V[0], p.A[0]
	tOffset := 0.0
	if p.HasBrake {
		for i := 0; i < 2; i++ {
			if t < tOffset+p.TBrakes[i] {
				return Integrate(t-tOffset, p.PBrakes[i], p.VBrakes[i], p.ABrakes[i], p.JBrakes[i])
			}
			tOffset += p.TBrakes[i]
		}
	}

	tMain := t - tOffset
	if tMain >= p.TSum[6] {
		// Past the end: hold the final state, extrapolating at zero jerk
		// (constant acceleration/velocity) so callers sampling slightly
		// beyond tf still get a sane value.
		over := tMain - p.TSum[6]
		return Integrate(over, p.P[7], p.V[7], p.A[7], 0)
	}

	// Locate the main segment containing tMain via linear scan over the
	// (at most 7) segment boundaries; a binary search buys nothing at
	// this size.
	segStart := 0.0
	for i := 0; i < 7; i++ {
		if tMain <= p.TSum[i]+1e-12 {
			local := tMain - segStart
			if local < 0 {
				local = 0
			}
			return Integrate(local, p.P[i], p.V[i], p.A[i], p.J[i])
		}
		segStart = p.TSum[i]
	}
	return pp, vv, aa
}

// IndependentMinDurations returns each DoF's Step1 minimum duration,
// exposed so callers can inspect how far the synchronized time is from
// what each axis could achieve alone.
func IndependentMinDurations(blocks []Block) []float64 {
	out := make([]float64, len(blocks))
	for i, b := range blocks {
		out[i] = b.TMin
	}
	return out
}
