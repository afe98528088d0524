// Package extractor implements the fuzex locker engine.
//
// Generate draws a fresh random key and locks it under many independently
// sampled subsets of the reading's bits; Reproduce tries each locker in
// order and recognises a correct unlock by the key checksum. A reading
// within the configured Hamming tolerance reproduces the key whenever at
// least one locker sampled only unflipped bits, which the planner makes
// likely; an unrelated reading matches a locker's sample with probability
// 2^-sampleWidth per locker.
package extractor
