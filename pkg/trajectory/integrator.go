package trajectory

// Integrate evaluates constant-jerk kinematics: starting from (p0, v0, a0),
// apply jerk j for duration t and return the resulting (p, v, a). t may be
// negative; callers rely on this to extrapolate backwards past a segment
// boundary or forward past the end of a finished trajectory.
func Integrate(t, p0, v0, a0, j float64) (p, v, a float64) {
	a = a0 + t*j
	v = v0 + t*(a0+t*j/2)
	p = p0 + t*(v0+t*(a0/2+t*j/6))
	return p, v, a
}
