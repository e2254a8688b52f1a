package trajectory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	trajerrors "motiongen/pkg/errors"
	"motiongen/pkg/log"
)

// Generator is the re-entrant, multi-DoF motion planner: on every tick it
// either reuses the last accepted plan (input unchanged) or runs the full
// brake/Step1/Synchronizer/Step2 pipeline, then samples the result at the
// current time.
type Generator struct {
	deltaTime float64
	dofs      int

	clock float64

	lastInput  *Input
	trajectory *Trajectory
	haveplan   bool

	logger   *log.Logger
	recorder *Recorder
}

// NewGenerator builds a planner for a fixed cycle period and DoF count.
// deltaTime must be > 0.
func NewGenerator(deltaTime float64, dofs int) *Generator {
	return &Generator{
		deltaTime: deltaTime,
		dofs:      dofs,
		logger:    log.New("trajectory"),
	}
}

// SetLogger overrides the default logger (one DEBUG line per DoF per
// replan, one DEBUG line per tick, one ERROR line per failure).
func (g *Generator) SetLogger(l *log.Logger) { g.logger = l }

// SetRecorder attaches a metrics recorder; Update reports calculation
// latency and the synchronized duration to it once per call.
func (g *Generator) SetRecorder(r *Recorder) { g.recorder = r }

// Reset clears the accepted input and plan, forcing the next Update to
// replan unconditionally. The internal clock is also zeroed.
func (g *Generator) Reset() {
	g.clock = 0
	g.lastInput = nil
	g.trajectory = nil
	g.haveplan = false
}

// Update advances the internal clock by deltaTime, replans if the input
// changed since the last call, samples the resulting trajectory at the new
// clock time, and reports whether the motion is still Working, Finished,
// or in error. On the Finished tick every enabled DoF reports its target
// state, extrapolated at zero jerk by the clock's offset from the finish
// time.
func (g *Generator) Update(in *Input) (Output, Result) {
	start := time.Now()
	g.clock += g.deltaTime

	if err := in.Validate(); err != nil {
		g.logger.WithError(err).Error("rejected invalid trajectory input")
		return Output{Result: ErrorInvalidInput}, ErrorInvalidInput
	}

	newCalculation := false
	var runID string
	if g.lastInput == nil || !g.lastInput.equal(in) {
		traj, res := plan(in)
		if res != Working {
			if herr, ok := planError(res, in); ok {
				g.logger.WithError(herr).Error("trajectory replan failed")
			}
			// Keep serving the previous plan, if any, per spec §7: a
			// failed replan must not mutate the last accepted one.
			if !g.haveplan {
				return Output{Result: res}, res
			}
		} else {
			traj.RunID = uuid.New().String()
			g.trajectory = &traj
			g.haveplan = true
			inCopy := *in
			g.lastInput = &inCopy
			newCalculation = true
			runID = traj.RunID

			for d := range traj.Profiles {
				name := ""
				if d < len(in.DoFNames) {
					name = in.DoFNames[d]
				}
				class := traj.Profiles[d].Limits.String()
				if g.logger.GetLevel() <= log.DEBUG {
					g.logger.WithDoF(d, name).WithLimitClass(class).
						WithField("run_id", runID).Debug("dof profile solved")
				}
				if g.recorder != nil {
					label := name
					if label == "" {
						label = fmt.Sprintf("dof%d", d)
					}
					g.recorder.ObserveProfile(label, class)
				}
			}
		}
	}
	if g.trajectory != nil {
		runID = g.trajectory.RunID
	}

	calcTime := time.Since(start).Seconds() * 1e6 // microseconds

	out := Output{
		Result:          Working,
		TrajectoryTime:  g.clock,
		Time:            g.clock,
		CalculationTime: calcTime,
		RunID:           runID,
	}

	pos, vel, acc := g.trajectory.AtTime(g.clock)
	out.NewPosition, out.NewVelocity, out.NewAcceleration = pos, vel, acc

	if g.clock+g.deltaTime > g.trajectory.Duration {
		out.Result = Finished
		tgt := g.lastInput
		for d := range out.NewPosition {
			if tgt.enabledAt(d) {
				out.NewPosition[d], out.NewVelocity[d], out.NewAcceleration[d] = Integrate(g.clock-g.trajectory.Duration,
					tgt.TargetPosition[d], tgt.TargetVelocity[d], tgt.TargetAcceleration[d], 0)
			}
		}
	}

	if g.logger.GetLevel() <= log.DEBUG {
		g.logger.WithFields(log.Fields{
			"run_id":       runID,
			"t_sync":       g.trajectory.Duration,
			"limiting_dof": g.trajectory.LimitingDoF,
			"new_calc":     newCalculation,
		}).Debug("trajectory tick")
	}

	if g.recorder != nil {
		g.recorder.Observe(g.trajectory.Duration, calcTime, newCalculation)
	}

	return out, out.Result
}

// AtTime is the read-only query call: it samples the last computed plan at
// an arbitrary non-negative time without advancing the internal clock or
// touching the accepted input.
func (g *Generator) AtTime(t float64) (pos, vel, acc []float64, ok bool) {
	if g.trajectory == nil {
		return nil, nil, nil, false
	}
	if t < 0 {
		t = 0
	}
	pos, vel, acc = g.trajectory.AtTime(t)
	return pos, vel, acc, true
}

// LimitingProfile returns the profile of the DoF whose minimum duration set
// the synchronized finish time in the last accepted plan, or nil if no plan
// has been computed yet or a minimum-duration override means no single DoF
// is limiting.
func (g *Generator) LimitingProfile() *Profile {
	if g.trajectory == nil {
		return nil
	}
	if g.trajectory.LimitingDoF < 0 || g.trajectory.LimitingDoF >= len(g.trajectory.Profiles) {
		return nil
	}
	return &g.trajectory.Profiles[g.trajectory.LimitingDoF]
}

// plan runs the brake/Step1/Synchronizer/Step2 pipeline once for every
// enabled DoF in in, producing a fully synchronized Trajectory. Disabled
// DoFs free-integrate from their current state and never constrain the
// synchronized finish time.
func plan(in *Input) (Trajectory, Result) {
	n := in.DoFs()
	profiles := make([]Profile, n)
	blocks := make([]Block, n)
	brakeState := make([][3]float64, n) // p0, v0, a0 after braking

	for d := 0; d < n; d++ {
		if !in.enabledAt(d) {
			// A disabled DoF never constrains the synchronized finish
			// time: its Block is trivially satisfiable at any t >= 0.
			blocks[d] = Block{TMin: 0}
			continue
		}
		p0, v0, a0 := in.CurrentPosition[d], in.CurrentVelocity[d], in.CurrentAcceleration[d]
		tb, jb := Brake(v0, a0, in.MaxVelocity[d], in.MaxAcceleration[d], in.MaxJerk[d])

		var brake Profile
		brake.HasBrake = tb[0] > 0 || tb[1] > 0
		brake.TBrakes = tb
		brake.JBrakes = jb
		brake.TBrake = tb[0] + tb[1]

		pAfter, vAfter, aAfter := p0, v0, a0
		for i := 0; i < 2; i++ {
			brake.PBrakes[i], brake.VBrakes[i], brake.ABrakes[i] = pAfter, vAfter, aAfter
			if tb[i] > 0 {
				pAfter, vAfter, aAfter = Integrate(tb[i], pAfter, vAfter, aAfter, jb[i])
			}
		}
		brakeState[d] = [3]float64{pAfter, vAfter, aAfter}

		s1 := &Step1{
			P0: pAfter, V0: vAfter, A0: aAfter,
			PF: in.TargetPosition[d], VF: in.TargetVelocity[d], AF: in.TargetAcceleration[d],
			VMax: in.MaxVelocity[d], AMax: in.MaxAcceleration[d], JMax: in.MaxJerk[d],
		}
		block, ok := s1.GetBlock()
		if !ok {
			return Trajectory{}, ErrorExecutionTimeCalculation
		}
		block.PMin.HasBrake = brake.HasBrake
		block.PMin.TBrake = brake.TBrake
		block.PMin.TBrakes = brake.TBrakes
		block.PMin.JBrakes = brake.JBrakes
		block.PMin.PBrakes = brake.PBrakes
		block.PMin.VBrakes = brake.VBrakes
		block.PMin.ABrakes = brake.ABrakes
		// Finish times are measured from the start of the brake.
		block.TMin += brake.TBrake
		blocks[d] = block
		profiles[d] = block.PMin
	}

	tSync, limiting, ok := Synchronize(blocks)
	if !ok {
		return Trajectory{}, ErrorSynchronizationCalculation
	}
	if in.MinimumDuration > tSync {
		tSync = in.MinimumDuration
		limiting = -1
	}

	for d := 0; d < n; d++ {
		if !in.enabledAt(d) {
			continue
		}
		if d == limiting && in.MinimumDuration <= blocks[d].TMin {
			continue // already solved by Step1 at exactly tSync
		}
		brake := profiles[d]
		state := brakeState[d]
		tf := tSync - brake.TBrake
		s2 := &Step2{
			P0: state[0], V0: state[1], A0: state[2],
			PF: in.TargetPosition[d], VF: in.TargetVelocity[d], AF: in.TargetAcceleration[d],
			VMax: in.MaxVelocity[d], AMax: in.MaxAcceleration[d], JMax: in.MaxJerk[d],
		}
		p, ok := s2.GetProfile(tf)
		if !ok {
			return Trajectory{}, ErrorSynchronizationCalculation
		}
		p.HasBrake = brake.HasBrake
		p.TBrake = brake.TBrake
		p.TBrakes = brake.TBrakes
		p.JBrakes = brake.JBrakes
		p.PBrakes = brake.PBrakes
		p.VBrakes = brake.VBrakes
		p.ABrakes = brake.ABrakes
		profiles[d] = p
	}

	for d := 0; d < n; d++ {
		if !in.enabledAt(d) {
			profiles[d] = disabledProfile(in, d)
		}
	}

	return Trajectory{
		Profiles:    profiles,
		Duration:    tSync,
		LimitingDoF: limiting,
	}, Working
}

// disabledProfile builds a degenerate Profile for a disabled DoF: seven
// zero-duration segments at the current state, which sampleAt extrapolates
// from at zero jerk for any query time (per spec §4.6's "disabled DoFs
// integrate freely from their current state with zero jerk").
func disabledProfile(in *Input, d int) Profile {
	var p Profile
	p.evaluate(in.CurrentPosition[d], in.CurrentVelocity[d], in.CurrentAcceleration[d], 0)
	return p
}

func planError(res Result, in *Input) (*trajerrors.HostError, bool) {
	switch res {
	case ErrorExecutionTimeCalculation:
		return trajerrors.TrajectoryExecutionTimeError(-1), true
	case ErrorSynchronizationCalculation:
		return trajerrors.TrajectorySynchronizationError(0), true
	default:
		return nil, false
	}
}
