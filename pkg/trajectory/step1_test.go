package trajectory

import (
	"math"
	"testing"
)

func TestStep1SymmetricTriangularVelocityProfile(t *testing.T) {
	// spec §8's small-move scenario: the move is short enough that the
	// velocity limit is never saturated.
	s := &Step1{PF: 0.1, VMax: 10, AMax: 10, JMax: 100}
	block, ok := s.GetBlock()
	if !ok {
		t.Fatal("expected a feasible block")
	}
	p := block.PMin
	if !p.Check(0, 0, 0, 0.1, 0, 0, s.JMax, s.VMax, s.AMax) {
		t.Fatalf("candidate failed its own invariant check")
	}
	for k := 3; k < 8; k++ {
		if math.Abs(p.V[k]) > s.VMax+1e-9 {
			t.Fatalf("v[%d]=%v exceeds vMax=%v", k, p.V[k], s.VMax)
		}
	}
	for k := 2; k < 8; k++ {
		if math.Abs(p.A[k]) > s.AMax+1e-9 {
			t.Fatalf("a[%d]=%v exceeds aMax=%v", k, p.A[k], s.AMax)
		}
	}
	// The move is small relative to the limits, so it should finish well
	// under a second and never reach vMax.
	if block.TMin > 1.0 {
		t.Fatalf("t_min = %v, want a short move well under 1s", block.TMin)
	}
	maxV := 0.0
	for _, v := range p.V {
		if math.Abs(v) > maxV {
			maxV = math.Abs(v)
		}
	}
	if maxV >= s.VMax-1e-6 {
		t.Fatalf("peak velocity %v should stay below vMax %v for this short move", maxV, s.VMax)
	}
}

func TestStep1BoundaryEqualitiesHold(t *testing.T) {
	cases := []struct {
		p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64
	}{
		{0, 0, 0, 1, 0, 0, 1, 1, 1},
		{0, 0.5, 0, -2, 0, 0, 2, 2, 4},
		{1, 0, 0.3, 1, 0, 0, 3, 3, 6},
	}
	for i, c := range cases {
		s := &Step1{P0: c.p0, V0: c.v0, A0: c.a0, PF: c.pf, VF: c.vf, AF: c.af, VMax: c.vMax, AMax: c.aMax, JMax: c.jMax}
		block, ok := s.GetBlock()
		if !ok {
			t.Fatalf("case %d: expected a feasible block", i)
		}
		p := block.PMin
		if math.Abs(p.P[7]-c.pf) > 1e-8 {
			t.Fatalf("case %d: p[7]=%v, want %v", i, p.P[7], c.pf)
		}
		if math.Abs(p.V[7]-c.vf) > 1e-8 {
			t.Fatalf("case %d: v[7]=%v, want %v", i, p.V[7], c.vf)
		}
		if math.Abs(p.A[7]-c.af) > 1e-8 {
			t.Fatalf("case %d: a[7]=%v, want %v", i, p.A[7], c.af)
		}
		if math.Abs(block.TMin-p.Duration()) > 1e-12 {
			t.Fatalf("case %d: t_min=%v does not match the minimum profile's duration %v", i, block.TMin, p.Duration())
		}
	}
}
