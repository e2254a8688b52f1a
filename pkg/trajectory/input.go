package trajectory

import (
	"math"

	trajerrors "motiongen/pkg/errors"
)

// Input is one planning request: the current and target kinematic state for
// every degree of freedom, plus the limits each must respect. All slices
// must share the same length, the number of DoFs being synchronized.
type Input struct {
	CurrentPosition     []float64
	CurrentVelocity     []float64
	CurrentAcceleration []float64

	TargetPosition     []float64
	TargetVelocity     []float64
	TargetAcceleration []float64

	MaxVelocity     []float64
	MaxAcceleration []float64
	MaxJerk         []float64

	// Enabled marks which DoFs participate in synchronization; a disabled
	// DoF free-integrates at its current state without being driven
	// toward a target and never limits the synchronized finish time.
	Enabled []bool

	// MinimumDuration optionally forces every DoF to finish no sooner
	// than this, overriding the natural time-optimal synchronized time.
	MinimumDuration float64

	// DoFNames optionally labels each DoF (e.g. "x", "y", "extruder") for
	// logging only; it has no effect on planning and may be left nil.
	DoFNames []string
}

// AxisLimits is a single DoF's velocity/acceleration/jerk ceiling, used by
// external collaborators (e.g. pkg/config's `[dof]` section reader) to
// assemble an Input without depending on the core's internal layout.
type AxisLimits struct {
	MaxVelocity     float64
	MaxAcceleration float64
	MaxJerk         float64
}

// DoFs returns the number of degrees of freedom this input describes.
func (in *Input) DoFs() int {
	return len(in.CurrentPosition)
}

// Validate checks structural consistency and per-DoF limit sanity. It does
// not attempt to plan; Step1/Step2 report execution/synchronization errors
// separately if a structurally valid input still has no feasible profile.
func (in *Input) Validate() error {
	n := in.DoFs()
	lists := [][]float64{
		in.CurrentVelocity, in.CurrentAcceleration,
		in.TargetPosition, in.TargetVelocity, in.TargetAcceleration,
		in.MaxVelocity, in.MaxAcceleration, in.MaxJerk,
	}
	for _, l := range lists {
		if len(l) != n {
			return trajerrors.TrajectoryInvalidInputError("all per-DoF slices must have the same length")
		}
	}
	if in.Enabled != nil && len(in.Enabled) != n {
		return trajerrors.TrajectoryInvalidInputError("enabled mask length must match DoF count")
	}
	if in.MinimumDuration < 0 {
		return trajerrors.TrajectoryInvalidInputError("minimum duration must be non-negative")
	}

	for i := 0; i < n; i++ {
		if in.enabledAt(i) {
			if in.MaxVelocity[i] <= 0 || in.MaxAcceleration[i] <= 0 || in.MaxJerk[i] <= 0 {
				return trajerrors.TrajectoryInvalidInputError("velocity, acceleration and jerk limits must be positive")
			}
			// The target velocity must not itself exceed the limit, in
			// either direction.
			if math.Abs(in.TargetVelocity[i]) > in.MaxVelocity[i]+epsLimit {
				return trajerrors.TrajectoryInvalidInputError("target velocity exceeds the velocity limit")
			}
			if math.Abs(in.TargetAcceleration[i]) > in.MaxAcceleration[i]+epsLimit {
				return trajerrors.TrajectoryInvalidInputError("target acceleration exceeds the acceleration limit")
			}
			// The target acceleration must also be reachable without
			// overshooting the velocity limit once jerk starts bringing it
			// back to zero: |af| <= sqrt(2*jMax*(vMax-|vf|)).
			headroom := in.MaxVelocity[i] - math.Abs(in.TargetVelocity[i])
			maxReachableAccel := clampSqrt(2 * in.MaxJerk[i] * headroom)
			if math.Abs(in.TargetAcceleration[i]) > maxReachableAccel+epsLimit {
				return trajerrors.TrajectoryInvalidInputError("target acceleration is not reachable without exceeding the velocity limit")
			}
		}
	}
	return nil
}

func (in *Input) enabledAt(i int) bool {
	if in.Enabled == nil {
		return true
	}
	return in.Enabled[i]
}

// equal reports whether two inputs describe the same planning request,
// used by Generator to decide whether a cached plan can be reused.
func (in *Input) equal(other *Input) bool {
	if other == nil || in.DoFs() != other.DoFs() {
		return false
	}
	if in.MinimumDuration != other.MinimumDuration {
		return false
	}
	pairs := [][2][]float64{
		{in.CurrentPosition, other.CurrentPosition},
		{in.CurrentVelocity, other.CurrentVelocity},
		{in.CurrentAcceleration, other.CurrentAcceleration},
		{in.TargetPosition, other.TargetPosition},
		{in.TargetVelocity, other.TargetVelocity},
		{in.TargetAcceleration, other.TargetAcceleration},
		{in.MaxVelocity, other.MaxVelocity},
		{in.MaxAcceleration, other.MaxAcceleration},
		{in.MaxJerk, other.MaxJerk},
	}
	for _, pr := range pairs {
		if len(pr[0]) != len(pr[1]) {
			return false
		}
		for i := range pr[0] {
			if pr[0][i] != pr[1][i] {
				return false
			}
		}
	}
	for i := 0; i < in.DoFs(); i++ {
		if in.enabledAt(i) != other.enabledAt(i) {
			return false
		}
	}
	return true
}
