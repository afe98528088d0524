package planner_test

import (
	"errors"
	"math"
	"testing"

	"fuzex/internal/domain"
	"fuzex/internal/planner"
)

// cleanProb mirrors the planner's hypergeometric formula for verifying the
// chosen geometry against the bounds.
func cleanProb(n, t, w int) float64 {
	p := 1.0
	for j := 0; j < t; j++ {
		p *= float64(n-w-j) / float64(n-j)
	}
	return p
}

func TestPlanZeroTolerance(t *testing.T) {
	count, width, err := planner.Plan(64, 0, 1e-4, 1e-4, planner.DefaultLockerCeiling)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	// With no noise a single locker sampling every bit suffices.
	if count != 1 {
		t.Fatalf("locker count = %d, want 1", count)
	}
	if width != 64 {
		t.Fatalf("sample width = %d, want 64", width)
	}
}

func TestPlanMeetsBothBounds(t *testing.T) {
	const (
		bits    = 128
		flips   = 8
		failure = 1e-4
		forgery = 1e-4
	)
	count, width, err := planner.Plan(bits, flips, failure, forgery, planner.DefaultLockerCeiling)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if width < 1 || width > bits {
		t.Fatalf("sample width %d out of range", width)
	}
	if count < 1 || count > planner.DefaultLockerCeiling {
		t.Fatalf("locker count %d out of range", count)
	}

	p := cleanProb(bits, flips, width)
	if got := math.Pow(1-p, float64(count)); got > failure {
		t.Fatalf("all-lockers-dirty probability %g exceeds failure bound %g", got, failure)
	}
	if got := float64(count) * math.Exp2(-float64(width)); got > forgery {
		t.Fatalf("forgery probability %g exceeds bound %g", got, forgery)
	}
}

func TestPlanPrefersWidestUsableSample(t *testing.T) {
	_, width, err := planner.Plan(128, 8, 1e-4, 1e-4, planner.DefaultLockerCeiling)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	// One sample wider must blow the locker ceiling, otherwise the planner
	// left forgery margin on the table.
	p := cleanProb(128, 8, width+1)
	need := math.Log(1e-4) / math.Log1p(-p)
	if need <= float64(planner.DefaultLockerCeiling) {
		t.Fatalf("width %d chosen but %d needs only %.0f lockers", width, width+1, need)
	}
}

func TestPlanInvalidParameters(t *testing.T) {
	cases := []struct {
		name           string
		bits, flips    int
		failure, forge float64
		ceiling        int
	}{
		{"zero bits", 0, 0, 1e-4, 1e-4, 4096},
		{"unaligned bits", 63, 2, 1e-4, 1e-4, 4096},
		{"tolerance at input length", 64, 64, 1e-4, 1e-4, 4096},
		{"tolerance above input length", 64, 80, 1e-4, 1e-4, 4096},
		{"negative tolerance", 64, -1, 1e-4, 1e-4, 4096},
		{"zero failure bound", 64, 2, 0, 1e-4, 4096},
		{"failure bound one", 64, 2, 1, 1e-4, 4096},
		{"zero forgery bound", 64, 2, 1e-4, 0, 4096},
		{"forgery bound one", 64, 2, 1e-4, 1, 4096},
		{"zero ceiling", 64, 2, 1e-4, 1e-4, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := planner.Plan(tc.bits, tc.flips, tc.failure, tc.forge, tc.ceiling)
			if !errors.Is(err, domain.ErrInvalidParameter) {
				t.Fatalf("Plan: %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestPlanInfeasibleBounds(t *testing.T) {
	// 16 bits with half of them noisy: no width with a nonzero clean-sample
	// probability can push forgery under 1e-4.
	_, _, err := planner.Plan(16, 8, 1e-4, 1e-4, planner.DefaultLockerCeiling)
	if !errors.Is(err, domain.ErrInfeasible) {
		t.Fatalf("Plan: %v, want ErrInfeasible", err)
	}
}
