package trajectory

import (
	"math"
	"testing"
)

// TestSegmentBoundaryContinuity checks that sampling a profile just before
// and just after each internal segment boundary converges to the same
// (p, v, a) as the gap shrinks, per spec §8 property 5.
func TestSegmentBoundaryContinuity(t *testing.T) {
	s := &Step1{PF: 1, VMax: 1, AMax: 1, JMax: 1}
	block, ok := s.GetBlock()
	if !ok {
		t.Fatal("expected a feasible block")
	}
	p := block.PMin

	for k := 0; k < 6; k++ {
		boundary := p.TSum[k]
		if boundary <= 0 || boundary >= p.Duration() {
			continue
		}
		const delta = 1e-6
		pBefore, vBefore, aBefore := p.sampleAt(boundary - delta)
		pAfter, vAfter, aAfter := p.sampleAt(boundary + delta)
		if math.Abs(pBefore-pAfter) > 1e-4 {
			t.Fatalf("boundary %d: position discontinuity %v vs %v", k, pBefore, pAfter)
		}
		if math.Abs(vBefore-vAfter) > 1e-4 {
			t.Fatalf("boundary %d: velocity discontinuity %v vs %v", k, vBefore, vAfter)
		}
		if math.Abs(aBefore-aAfter) > 1e-3 {
			t.Fatalf("boundary %d: acceleration discontinuity %v vs %v", k, aBefore, aAfter)
		}
	}
}

// TestUpdateIdempotentOutputsMatch exercises spec §8 property 4 more fully
// than the RunID-only check in generator_test.go: the result and RunID must
// match across repeated calls with an unchanged input, and AtTime must
// return the same sample for repeated queries at the same time.
func TestUpdateIdempotentOutputsMatch(t *testing.T) {
	in := singleDoFInput(0, 0, 0, 1, 0, 0, 1, 1, 1)
	gen := NewGenerator(0.01, 1)

	out1, res1 := gen.Update(in)
	out2, res2 := gen.Update(in)

	if res1 != res2 {
		t.Fatalf("result changed across repeated ticks: %v vs %v", res1, res2)
	}
	if out1.RunID != out2.RunID {
		t.Fatalf("run ID changed across repeated ticks: %s vs %s", out1.RunID, out2.RunID)
	}
	// Clock advanced between calls, so the sampled state legitimately
	// differs; what must not differ is which plan is being sampled.
	gen2 := NewGenerator(0.01, 1)
	gen2.Update(in)
	outA, _, _, _ := gen2.AtTime(1.0)
	outB, _, _, _ := gen2.AtTime(1.0)
	if outA[0] != outB[0] {
		t.Fatalf("AtTime is not deterministic for repeated queries at the same time")
	}
}

// TestRoundTripSampleAtFinish covers spec §8 property 6 directly on a
// Profile rather than through the Generator.
func TestRoundTripSampleAtFinish(t *testing.T) {
	s := &Step1{PF: 2, VF: 0, AF: 0, VMax: 1, AMax: 1, JMax: 1}
	block, ok := s.GetBlock()
	if !ok {
		t.Fatal("expected a feasible block")
	}
	p := block.PMin
	pos, vel, acc := p.At(p.Duration())
	if math.Abs(pos-2) > 1e-8 || math.Abs(vel) > 1e-8 || math.Abs(acc) > 1e-8 {
		t.Fatalf("sample at tf = (%v,%v,%v), want (2,0,0)", pos, vel, acc)
	}
}
