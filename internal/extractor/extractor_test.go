package extractor_test

import (
	"errors"
	"math/rand"
	"testing"

	"fuzex/internal/domain"
	"fuzex/internal/extractor"
)

// testExtractor uses a small geometry so the statistical tests stay fast:
// 64-bit readings, 4 tolerated flips, both bounds at 1e-3.
func testExtractor(t *testing.T) *extractor.Extractor {
	t.Helper()
	ext, err := extractor.New(64, 4,
		extractor.WithReproductionFailureBound(1e-3),
		extractor.WithForgeryBound(1e-3),
		extractor.WithLockerCeiling(1024),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ext
}

func randomReading(rng *rand.Rand, bits int) []byte {
	b := make([]byte, bits/8)
	rng.Read(b)
	return b
}

// flipBits returns a copy of reading with exactly count distinct bits
// flipped.
func flipBits(rng *rand.Rand, reading []byte, count int) []byte {
	out := append([]byte(nil), reading...)
	for _, p := range rng.Perm(len(reading) * 8)[:count] {
		out[p/8] ^= 1 << (7 - p%8)
	}
	return out
}

func TestGenerateReproduceExact(t *testing.T) {
	ext := testExtractor(t)
	rng := rand.New(rand.NewSource(1))
	reading := randomReading(rng, 64)

	key, helper, err := ext.Generate(reading)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, ok, err := ext.Reproduce(reading, helper)
	if err != nil {
		t.Fatalf("Reproduce: %v", err)
	}
	if !ok {
		t.Fatal("exact reading not reproducible")
	}
	if got != key {
		t.Fatal("reproduced key differs from generated key")
	}
}

func TestHelperGeometryMatchesParams(t *testing.T) {
	ext := testExtractor(t)
	p := ext.Params()
	rng := rand.New(rand.NewSource(2))

	_, helper, err := ext.Generate(randomReading(rng, 64))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(helper.Lockers) != p.LockerCount {
		t.Fatalf("helper has %d lockers, params say %d", len(helper.Lockers), p.LockerCount)
	}
	for i, l := range helper.Lockers {
		if len(l.Positions) != p.SampleWidth {
			t.Fatalf("locker %d samples %d positions, want %d", i, len(l.Positions), p.SampleWidth)
		}
		seen := make(map[uint32]bool, len(l.Positions))
		for _, pos := range l.Positions {
			if pos >= uint32(p.InputBits) {
				t.Fatalf("locker %d position %d out of range", i, pos)
			}
			if seen[pos] {
				t.Fatalf("locker %d repeats position %d", i, pos)
			}
			seen[pos] = true
		}
	}
}

func TestReproduceToleratesNoise(t *testing.T) {
	ext := testExtractor(t)
	rng := rand.New(rand.NewSource(3))

	const trials = 10
	failures := 0
	for i := 0; i < trials; i++ {
		reading := randomReading(rng, 64)
		key, helper, err := ext.Generate(reading)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		noisy := flipBits(rng, reading, ext.Params().MaxHammingErrors)
		got, ok, err := ext.Reproduce(noisy, helper)
		if err != nil {
			t.Fatalf("Reproduce: %v", err)
		}
		if !ok || got != key {
			failures++
		}
	}
	// Per-trial failure is bounded by 1e-3; more than one miss in ten
	// trials means the geometry is off, not bad luck.
	if failures > 1 {
		t.Fatalf("%d of %d noisy readings failed to reproduce", failures, trials)
	}
}

func TestReproduceRejectsFarReading(t *testing.T) {
	ext := testExtractor(t)
	rng := rand.New(rand.NewSource(4))
	reading := randomReading(rng, 64)

	_, helper, err := ext.Generate(reading)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Half the bits flipped leaves fewer clean bits than one sample width,
	// so no locker can unlock.
	far := flipBits(rng, reading, 32)
	if _, ok, err := ext.Reproduce(far, helper); err != nil {
		t.Fatalf("Reproduce: %v", err)
	} else if ok {
		t.Fatal("reading with half the bits flipped reproduced the key")
	}
}

func TestReproduceRejectsUnrelatedReading(t *testing.T) {
	ext := testExtractor(t)
	rng := rand.New(rand.NewSource(5))

	_, helper, err := ext.Generate(randomReading(rng, 64))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, ok, err := ext.Reproduce(randomReading(rng, 64), helper); err != nil {
			t.Fatalf("Reproduce: %v", err)
		} else if ok {
			t.Fatal("unrelated reading reproduced the key")
		}
	}
}

func TestReproduceDeterministic(t *testing.T) {
	ext := testExtractor(t)
	rng := rand.New(rand.NewSource(6))
	reading := randomReading(rng, 64)

	_, helper, err := ext.Generate(reading)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	k1, ok1, err := ext.Reproduce(reading, helper)
	if err != nil {
		t.Fatalf("Reproduce: %v", err)
	}
	k2, ok2, err := ext.Reproduce(reading, helper)
	if err != nil {
		t.Fatalf("Reproduce: %v", err)
	}
	if ok1 != ok2 || k1 != k2 {
		t.Fatal("repeated reproduce calls disagree")
	}
}

func TestGenerateDrawsFreshKeys(t *testing.T) {
	ext := testExtractor(t)
	rng := rand.New(rand.NewSource(7))
	reading := randomReading(rng, 64)

	k1, _, err := ext.Generate(reading)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	k2, _, err := ext.Generate(reading)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k1 == k2 {
		t.Fatal("two generate calls produced the same key")
	}
}

func TestLengthMismatch(t *testing.T) {
	ext := testExtractor(t)
	rng := rand.New(rand.NewSource(8))
	reading := randomReading(rng, 64)

	_, helper, err := ext.Generate(reading)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	short := reading[:7]
	if _, _, err := ext.Generate(short); !errors.Is(err, domain.ErrLengthMismatch) {
		t.Fatalf("Generate(short): %v, want ErrLengthMismatch", err)
	}
	if _, _, err := ext.Reproduce(short, helper); !errors.Is(err, domain.ErrLengthMismatch) {
		t.Fatalf("Reproduce(short): %v, want ErrLengthMismatch", err)
	}
}

func TestReproduceMalformedHelper(t *testing.T) {
	ext := testExtractor(t)
	rng := rand.New(rand.NewSource(9))
	reading := randomReading(rng, 64)

	_, helper, err := ext.Generate(reading)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	truncated := *helper
	truncated.Lockers = truncated.Lockers[:len(truncated.Lockers)-1]
	if _, _, err := ext.Reproduce(reading, &truncated); !errors.Is(err, domain.ErrMalformedHelper) {
		t.Fatalf("Reproduce(truncated): %v, want ErrMalformedHelper", err)
	}

	foreign := *helper
	foreign.InputBits = 256
	if _, _, err := ext.Reproduce(reading, &foreign); !errors.Is(err, domain.ErrMalformedHelper) {
		t.Fatalf("Reproduce(foreign geometry): %v, want ErrMalformedHelper", err)
	}

	if _, _, err := ext.Reproduce(reading, nil); !errors.Is(err, domain.ErrMalformedHelper) {
		t.Fatalf("Reproduce(nil): %v, want ErrMalformedHelper", err)
	}
}

// TestBiometricScenario walks the 128-bit, 8-flip configuration end to end.
func TestBiometricScenario(t *testing.T) {
	ext, err := extractor.New(128, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rng := rand.New(rand.NewSource(10))
	reading := randomReading(rng, 128)

	key, helper, err := ext.Generate(reading)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	got, ok, err := ext.Reproduce(reading, helper)
	if err != nil || !ok || got != key {
		t.Fatalf("exact reading: ok=%v err=%v", ok, err)
	}

	noisy := flipBits(rng, reading, 8)
	got, ok, err = ext.Reproduce(noisy, helper)
	if err != nil {
		t.Fatalf("Reproduce(noisy): %v", err)
	}
	if !ok || got != key {
		t.Fatal("reading at the tolerance boundary did not reproduce the key")
	}

	far := flipBits(rng, reading, 64)
	if _, ok, err := ext.Reproduce(far, helper); err != nil {
		t.Fatalf("Reproduce(far): %v", err)
	} else if ok {
		t.Fatal("reading with 64 flipped bits reproduced the key")
	}
}
