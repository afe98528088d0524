package planner

import (
	"fmt"
	"math"

	"fuzex/internal/domain"
)

// DefaultLockerCeiling caps how many lockers a configuration may require.
// It doubles as the planner's usability threshold: a sample width is only
// usable if its clean-sample probability keeps the locker count under the
// ceiling.
const DefaultLockerCeiling = 1 << 12

// Plan derives (lockerCount, sampleWidth) for the given configuration.
//
// Widths are scanned from inputBits downward. Wider samples shrink the
// per-locker forgery probability exponentially but are less likely to dodge
// all flipped bits, so the widest width whose locker count fits the ceiling
// is also the best forgery candidate; the scan continues past widths that
// fail either bound and reports domain.ErrInfeasible when none satisfies
// both.
func Plan(inputBits, maxHammingErrors int, failureBound, forgeryBound float64, lockerCeiling int) (lockerCount, sampleWidth int, err error) {
	switch {
	case inputBits <= 0 || inputBits%8 != 0:
		return 0, 0, fmt.Errorf("%w: input bits %d must be positive and byte-aligned", domain.ErrInvalidParameter, inputBits)
	case maxHammingErrors < 0 || maxHammingErrors >= inputBits:
		return 0, 0, fmt.Errorf("%w: error tolerance %d must be in [0, %d)", domain.ErrInvalidParameter, maxHammingErrors, inputBits)
	case failureBound <= 0 || failureBound >= 1:
		return 0, 0, fmt.Errorf("%w: reproduction failure bound %g must be in (0,1)", domain.ErrInvalidParameter, failureBound)
	case forgeryBound <= 0 || forgeryBound >= 1:
		return 0, 0, fmt.Errorf("%w: forgery bound %g must be in (0,1)", domain.ErrInvalidParameter, forgeryBound)
	case lockerCeiling < 1:
		return 0, 0, fmt.Errorf("%w: locker ceiling %d must be at least 1", domain.ErrInvalidParameter, lockerCeiling)
	}

	for w := inputBits; w >= 1; w-- {
		p := cleanSampleProb(inputBits, maxHammingErrors, w)
		if p <= 0 {
			// Every sample of this width must hit a flipped bit.
			continue
		}
		count := lockersFor(p, failureBound, lockerCeiling)
		if count > lockerCeiling {
			continue
		}
		if float64(count)*math.Exp2(-float64(w)) > forgeryBound {
			continue
		}
		return count, w, nil
	}
	return 0, 0, fmt.Errorf("%w: no sample width in [1,%d] meets failure bound %g and forgery bound %g",
		domain.ErrInfeasible, inputBits, failureBound, forgeryBound)
}

// cleanSampleProb is the hypergeometric probability that a sample of w
// positions out of n avoids all t flipped positions.
func cleanSampleProb(n, t, w int) float64 {
	p := 1.0
	for j := 0; j < t; j++ {
		num := n - w - j
		if num <= 0 {
			return 0
		}
		p *= float64(num) / float64(n-j)
	}
	return p
}

// lockersFor returns the smallest count with (1-p)^count <= failureBound,
// saturating at ceiling+1 when the requirement exceeds the ceiling.
func lockersFor(p, failureBound float64, ceiling int) int {
	if p >= 1 {
		return 1
	}
	need := math.Log(failureBound) / math.Log1p(-p)
	if !(need <= float64(ceiling)) {
		return ceiling + 1
	}
	if need < 1 {
		return 1
	}
	return int(math.Ceil(need))
}
