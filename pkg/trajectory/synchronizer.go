package trajectory

import "sort"

// syncCandidate is one of the 3*N candidate synchronization times: a DoF's
// minimum duration, or the right edge of one of its (at most two) blocked
// intervals. index/3 recovers which DoF a candidate came from.
type syncCandidate struct {
	t     float64
	index int
}

// Synchronize picks the smallest finish time that is not blocked for any
// DoF's Step1 result, and reports which DoF's minimum duration determined
// it (the limiting DoF).
func Synchronize(blocks []Block) (tSync float64, limitingDoF int, ok bool) {
	if len(blocks) == 0 {
		return 0, 0, false
	}

	candidates := make([]syncCandidate, 0, 3*len(blocks))
	for i, b := range blocks {
		candidates = append(candidates, syncCandidate{b.TMin, 3 * i})
		right := infDuration
		if b.HasA {
			right = b.A.Right
		}
		candidates = append(candidates, syncCandidate{right, 3*i + 1})
		right = infDuration
		if b.HasB {
			right = b.B.Right
		}
		candidates = append(candidates, syncCandidate{right, 3*i + 2})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].t < candidates[j].t
	})

	for _, c := range candidates {
		if c.t >= infDuration {
			continue
		}
		blockedByAny := false
		for _, b := range blocks {
			if b.IsBlocked(c.t) {
				blockedByAny = true
				break
			}
		}
		if blockedByAny {
			continue
		}
		return c.t, c.index / 3, true
	}
	return 0, 0, false
}
