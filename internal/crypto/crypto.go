package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"fuzex/internal/domain"
)

// RandomBytes returns n cryptographically random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}

// Keystream derives the locker pad from a nonce and the packed sample bits.
// BLAKE2b-256 is keyed with the nonce so two lockers never share a pad even
// when they happen to sample identical bits.
func Keystream(nonce, sample []byte) (out [domain.KeyBytes]byte, err error) {
	h, err := blake2b.New256(nonce)
	if err != nil {
		return out, fmt.Errorf("keystream hash: %w", err)
	}
	h.Write(sample)
	copy(out[:], h.Sum(nil))
	return out, nil
}

// Checksum returns the one-way tag of a key carried in a helper. The tag is
// a truncated unkeyed BLAKE2b-256 digest; recovering the key from it is no
// easier than brute-forcing the key's full width.
func Checksum(key []byte) (out [domain.ChecksumBytes]byte) {
	sum := blake2b.Sum256(key)
	copy(out[:], sum[:domain.ChecksumBytes])
	return out
}

// ConstantTimeEqual compares two byte slices in constant time.
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
