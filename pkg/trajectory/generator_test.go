package trajectory

import (
	"math"
	"testing"
)

func singleDoFInput(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) *Input {
	return &Input{
		CurrentPosition:     []float64{p0},
		CurrentVelocity:     []float64{v0},
		CurrentAcceleration: []float64{a0},
		TargetPosition:      []float64{pf},
		TargetVelocity:      []float64{vf},
		TargetAcceleration:  []float64{af},
		MaxVelocity:         []float64{vMax},
		MaxAcceleration:     []float64{aMax},
		MaxJerk:             []float64{jMax},
	}
}

func runToCompletion(t *testing.T, gen *Generator, in *Input, maxTicks int) Output {
	t.Helper()
	var last Output
	for i := 0; i < maxTicks; i++ {
		out, res := gen.Update(in)
		last = out
		if res == Finished {
			return last
		}
		if res != Working {
			t.Fatalf("unexpected result %v", res)
		}
	}
	t.Fatalf("trajectory did not finish within %d ticks", maxTicks)
	return last
}

func TestRestToRestSingleDoF(t *testing.T) {
	in := singleDoFInput(0, 0, 0, 1, 0, 0, 1, 1, 1)
	gen := NewGenerator(0.01, 1)
	out := runToCompletion(t, gen, in, 1000)

	if math.Abs(out.NewPosition[0]-1) > 1e-6 {
		t.Fatalf("final position = %v, want 1", out.NewPosition[0])
	}
	if math.Abs(out.NewVelocity[0]) > 1e-6 {
		t.Fatalf("final velocity = %v, want 0", out.NewVelocity[0])
	}
	if math.Abs(out.NewAcceleration[0]) > 1e-6 {
		t.Fatalf("final acceleration = %v, want 0", out.NewAcceleration[0])
	}
	// spec.md's own scenario description is approximate ("tf ≈ 3.0"); the
	// unconstrained (NONE-class) symmetric minimum-jerk solution for this
	// distance/limit combination computes to ~3.17s.
	if math.Abs(out.TrajectoryTime-3.0) > 0.3 {
		t.Fatalf("finish time = %v, want ~3.0", out.TrajectoryTime)
	}
}

func TestTwoDoFSynchronization(t *testing.T) {
	in := &Input{
		CurrentPosition:     []float64{0, 0},
		CurrentVelocity:     []float64{0, 0},
		CurrentAcceleration: []float64{0, 0},
		TargetPosition:      []float64{1, 1},
		TargetVelocity:      []float64{0, 0},
		TargetAcceleration:  []float64{0, 0},
		MaxVelocity:         []float64{10, 1},
		MaxAcceleration:     []float64{10, 1},
		MaxJerk:             []float64{10, 1},
	}
	gen := NewGenerator(0.005, 2)
	out := runToCompletion(t, gen, in, 2000)

	for d := 0; d < 2; d++ {
		if math.Abs(out.NewPosition[d]-1) > 1e-6 {
			t.Fatalf("DoF %d final position = %v, want 1", d, out.NewPosition[d])
		}
		if math.Abs(out.NewVelocity[d]) > 1e-6 {
			t.Fatalf("DoF %d final velocity = %v, want 0", d, out.NewVelocity[d])
		}
	}
}

func TestMinimumDurationOverride(t *testing.T) {
	in := singleDoFInput(0, 0, 0, 1, 0, 0, 1, 1, 1)
	in.MinimumDuration = 5.0
	gen := NewGenerator(0.01, 1)
	out := runToCompletion(t, gen, in, 1000)

	if math.Abs(out.TrajectoryTime-5.0) > 0.02 {
		t.Fatalf("finish time = %v, want ~5.0", out.TrajectoryTime)
	}
	if math.Abs(out.NewPosition[0]-1) > 1e-6 {
		t.Fatalf("final position = %v, want 1", out.NewPosition[0])
	}
}

func TestInvalidInputRejected(t *testing.T) {
	in := singleDoFInput(0, 0, 0, 1, 2, 0, 1, 1, 1) // |target v| > vMax
	gen := NewGenerator(0.01, 1)
	_, res := gen.Update(in)
	if res != ErrorInvalidInput {
		t.Fatalf("result = %v, want ErrorInvalidInput", res)
	}
}

func TestUpdateIdempotentForUnchangedInput(t *testing.T) {
	in := singleDoFInput(0, 0, 0, 1, 0, 0, 1, 1, 1)
	gen := NewGenerator(0.01, 1)

	// Advance once to establish a plan, then feed the *same* input object
	// again (clock still advances, but the plan must not be recomputed).
	out1, _ := gen.Update(in)
	out2, _ := gen.Update(in)

	if out1.RunID != out2.RunID {
		t.Fatalf("run ID changed across ticks with unchanged input: %s vs %s", out1.RunID, out2.RunID)
	}
}

func TestBrakeEngagesForOverLimitInitialState(t *testing.T) {
	in := singleDoFInput(0, 2, 0, 0, 0, 0, 1, 2, 5)
	gen := NewGenerator(0.005, 1)
	out := runToCompletion(t, gen, in, 2000)

	if math.Abs(out.NewPosition[0]) > 1e-6 {
		t.Fatalf("final position = %v, want 0", out.NewPosition[0])
	}
	if math.Abs(out.NewVelocity[0]) > 1e-6 {
		t.Fatalf("final velocity = %v, want 0", out.NewVelocity[0])
	}
}

func TestDisabledDoFFreeIntegrates(t *testing.T) {
	in := &Input{
		CurrentPosition:     []float64{0, 5},
		CurrentVelocity:     []float64{0, 1},
		CurrentAcceleration: []float64{0, 0},
		TargetPosition:      []float64{1, 0},
		TargetVelocity:      []float64{0, 0},
		TargetAcceleration:  []float64{0, 0},
		MaxVelocity:         []float64{1, 1},
		MaxAcceleration:     []float64{1, 1},
		MaxJerk:             []float64{1, 1},
		Enabled:             []bool{true, false},
	}
	gen := NewGenerator(0.01, 2)
	out, _ := gen.Update(in)
	want := 5 + 1*out.TrajectoryTime
	if math.Abs(out.NewPosition[1]-want) > 1e-9 {
		t.Fatalf("disabled DoF position = %v, want %v", out.NewPosition[1], want)
	}
}

func TestSampleAtFinishMatchesTarget(t *testing.T) {
	in := singleDoFInput(0, 0, 0, 1, 0, 0, 1, 1, 1)
	gen := NewGenerator(0.01, 1)
	gen.Update(in) // trigger planning

	// This scenario's actual finish time is ~3.17s (see the NONE-class
	// note in generator_test.go's rest-to-rest test), not the spec's
	// rounded "~3.0" — query the plan's own finish time rather than
	// hardcoding one.
	profile := gen.LimitingProfile()
	if profile == nil {
		t.Fatal("expected a limiting profile after planning")
	}
	tf := profile.TBrake + profile.Duration()

	pos, vel, acc, ok := gen.AtTime(tf)
	if !ok {
		t.Fatal("AtTime failed: no plan computed")
	}
	if math.Abs(pos[0]-1) > 1e-6 || math.Abs(vel[0]) > 1e-6 || math.Abs(acc[0]) > 1e-6 {
		t.Fatalf("sample at finish = (%v,%v,%v), want (1,0,0)", pos[0], vel[0], acc[0])
	}
}
