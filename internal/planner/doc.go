// Package planner derives the locker geometry for a fuzex extractor.
//
// A locker reproduces the key iff none of its sampled positions fall among
// the flipped bits of a noisy reading. For a reading with n bits, t flips
// and a sample of w positions drawn without replacement, that event is
// hypergeometric with probability
//
//	p(w) = C(n-t, w) / C(n, w) = prod_{j=0}^{t-1} (n-w-j) / (n-j)
//
// computed exactly as the t-term product, so no approximation loosens the
// reliability bound. The planner picks the widest sample whose required
// locker count fits under a ceiling, then verifies the forgery bound
// lockerCount * 2^-sampleWidth (union bound over lockers; the additional
// checksum-collision term is 2^-128 and ignored).
package planner
