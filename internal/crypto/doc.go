// Package crypto exposes the minimal primitives used by fuzex.
//
// Contents
//
//   - Keystream derivation for digital lockers: BLAKE2b-256 keyed with the
//     locker nonce over the packed sample bits (Keystream)
//   - One-way key checksums for unlock verification (Checksum)
//   - Sampling of distinct bit positions without replacement via a partial
//     Fisher-Yates shuffle fed from a buffered CSPRNG (SampleIndices)
//   - Random byte generation (RandomBytes) and constant-time comparison
//     (ConstantTimeEqual)
//
// All randomness comes from crypto/rand. Callers should treat keys and
// samples as sensitive and rely on memzero when practical.
package crypto
