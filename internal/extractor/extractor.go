package extractor

import (
	"fmt"

	"fuzex/internal/crypto"
	"fuzex/internal/domain"
	"fuzex/internal/planner"
)

// Default probability bounds applied when no option overrides them.
const (
	DefaultFailureBound = 1e-4
	DefaultForgeryBound = 1e-4
)

// Option overrides a default extractor setting.
type Option func(*settings)

type settings struct {
	failureBound  float64
	forgeryBound  float64
	lockerCeiling int
}

// WithReproductionFailureBound sets the probability that a reading within
// tolerance fails to reproduce the key.
func WithReproductionFailureBound(b float64) Option {
	return func(s *settings) { s.failureBound = b }
}

// WithForgeryBound sets the probability that an unrelated reading
// reproduces a key.
func WithForgeryBound(b float64) Option {
	return func(s *settings) { s.forgeryBound = b }
}

// WithLockerCeiling caps the locker count the planner may choose. Lower
// ceilings trade helper size and generate cost for narrower samples.
func WithLockerCeiling(n int) Option {
	return func(s *settings) { s.lockerCeiling = n }
}

// Extractor generates and reproduces keys for one frozen configuration.
// It holds no mutable state; concurrent calls are safe.
type Extractor struct {
	params domain.Params
}

// New plans a locker geometry for the given reading length and Hamming
// tolerance and returns an extractor bound to it.
func New(inputBits, maxHammingErrors int, opts ...Option) (*Extractor, error) {
	s := settings{
		failureBound:  DefaultFailureBound,
		forgeryBound:  DefaultForgeryBound,
		lockerCeiling: planner.DefaultLockerCeiling,
	}
	for _, opt := range opts {
		opt(&s)
	}

	count, width, err := planner.Plan(inputBits, maxHammingErrors, s.failureBound, s.forgeryBound, s.lockerCeiling)
	if err != nil {
		return nil, err
	}
	return &Extractor{params: domain.Params{
		InputBits:                inputBits,
		MaxHammingErrors:         maxHammingErrors,
		ReproductionFailureBound: s.failureBound,
		ForgeryBound:             s.forgeryBound,
		LockerCount:              count,
		SampleWidth:              width,
	}}, nil
}

// Params returns the frozen configuration.
func (e *Extractor) Params() domain.Params { return e.params }

func (e *Extractor) readingBytes() int { return e.params.InputBits / 8 }

// Generate derives a fresh random key and the public helper that lets a
// close reading reproduce it. The reading contributes no key bits; it only
// keys the lockers.
func (e *Extractor) Generate(reading []byte) (domain.Key, *domain.Helper, error) {
	var key domain.Key
	if len(reading) != e.readingBytes() {
		return key, nil, fmt.Errorf("%w: reading is %d bytes, want %d",
			domain.ErrLengthMismatch, len(reading), e.readingBytes())
	}

	kb, err := crypto.RandomBytes(domain.KeyBytes)
	if err != nil {
		return key, nil, err
	}
	copy(key[:], kb)

	h := &domain.Helper{
		InputBits:   uint32(e.params.InputBits),
		SampleWidth: uint32(e.params.SampleWidth),
		Lockers:     make([]domain.Locker, e.params.LockerCount),
		Checksum:    crypto.Checksum(key[:]),
	}

	sampler := crypto.NewSampler()
	for i := range h.Lockers {
		l := &h.Lockers[i]

		positions, err := sampler.SampleIndices(e.params.InputBits, e.params.SampleWidth)
		if err != nil {
			return key, nil, err
		}
		l.Positions = positions

		nonce, err := crypto.RandomBytes(domain.NonceBytes)
		if err != nil {
			return key, nil, err
		}
		copy(l.Nonce[:], nonce)

		pad, err := crypto.Keystream(l.Nonce[:], packSample(reading, positions))
		if err != nil {
			return key, nil, err
		}
		for j := range l.Locked {
			l.Locked[j] = key[j] ^ pad[j]
		}
	}
	return key, h, nil
}

// Reproduce recovers the key locked in helper from a reading close to the
// one Generate saw. The boolean is false when no locker unlocks: a reading
// beyond tolerance or an unrelated reading is an expected outcome, not an
// error. Reproduction is deterministic; no randomness is consumed.
func (e *Extractor) Reproduce(reading []byte, h *domain.Helper) (domain.Key, bool, error) {
	var key domain.Key
	if len(reading) != e.readingBytes() {
		return key, false, fmt.Errorf("%w: reading is %d bytes, want %d",
			domain.ErrLengthMismatch, len(reading), e.readingBytes())
	}
	if err := e.checkShape(h); err != nil {
		return key, false, err
	}

	for i := range h.Lockers {
		l := &h.Lockers[i]
		pad, err := crypto.Keystream(l.Nonce[:], packSample(reading, l.Positions))
		if err != nil {
			return key, false, err
		}
		var candidate domain.Key
		for j := range candidate {
			candidate[j] = l.Locked[j] ^ pad[j]
		}
		sum := crypto.Checksum(candidate[:])
		if crypto.ConstantTimeEqual(sum[:], h.Checksum[:]) {
			return candidate, true, nil
		}
	}
	return key, false, nil
}

// checkShape verifies the helper matches this extractor's geometry.
func (e *Extractor) checkShape(h *domain.Helper) error {
	switch {
	case h == nil:
		return fmt.Errorf("%w: nil helper", domain.ErrMalformedHelper)
	case h.InputBits != uint32(e.params.InputBits):
		return fmt.Errorf("%w: helper for %d input bits, extractor expects %d",
			domain.ErrMalformedHelper, h.InputBits, e.params.InputBits)
	case h.SampleWidth != uint32(e.params.SampleWidth):
		return fmt.Errorf("%w: helper sample width %d, extractor expects %d",
			domain.ErrMalformedHelper, h.SampleWidth, e.params.SampleWidth)
	case len(h.Lockers) != e.params.LockerCount:
		return fmt.Errorf("%w: helper has %d lockers, extractor expects %d",
			domain.ErrMalformedHelper, len(h.Lockers), e.params.LockerCount)
	}
	for i := range h.Lockers {
		l := &h.Lockers[i]
		if len(l.Positions) != e.params.SampleWidth {
			return fmt.Errorf("%w: locker %d has %d positions, want %d",
				domain.ErrMalformedHelper, i, len(l.Positions), e.params.SampleWidth)
		}
		for _, p := range l.Positions {
			if p >= h.InputBits {
				return fmt.Errorf("%w: locker %d samples position %d of %d",
					domain.ErrMalformedHelper, i, p, h.InputBits)
			}
		}
	}
	return nil
}

// packSample extracts the reading bits at the given positions, MSB-first
// within each byte, packed in position order.
func packSample(reading []byte, positions []uint32) []byte {
	out := make([]byte, (len(positions)+7)/8)
	for i, p := range positions {
		if reading[p>>3]&(1<<(7-p&7)) != 0 {
			out[i>>3] |= 1 << (7 - i&7)
		}
	}
	return out
}
