package domain

import "errors"

var (
	// ErrInvalidParameter reports a construction-time parameter violation:
	// non-positive or unaligned input length, error tolerance at or above
	// the input length, or a probability bound outside (0,1).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInfeasible reports that no locker geometry satisfies both the
	// reliability and the forgery bound for the given input length. The
	// configuration is unusable; a bound must be relaxed.
	ErrInfeasible = errors.New("reliability and forgery bounds are infeasible")

	// ErrLengthMismatch reports a reading whose length does not match the
	// configured input length.
	ErrLengthMismatch = errors.New("reading length mismatch")

	// ErrMalformedHelper reports a helper whose shape does not match the
	// configuration it is used against, or a helper blob that fails to
	// decode.
	ErrMalformedHelper = errors.New("malformed helper")
)
