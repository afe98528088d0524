package crypto

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// Sampler draws distinct indices without replacement from a buffered
// CSPRNG. Buffering matters: generating a helper draws sampleWidth indices
// per locker across thousands of lockers, and unbuffered crypto/rand reads
// dominate the cost.
type Sampler struct {
	r *bufio.Reader
}

// NewSampler returns a sampler backed by crypto/rand.
func NewSampler() *Sampler {
	return &Sampler{r: bufio.NewReader(rand.Reader)}
}

// SampleIndices returns k distinct indices in [0, n), in sampling order,
// via a partial Fisher-Yates shuffle of the index range. The shuffle keeps
// worst-case work bounded even when k approaches n, unlike rejection
// sampling.
func (s *Sampler) SampleIndices(n, k int) ([]uint32, error) {
	if k < 0 || n <= 0 || k > n {
		return nil, fmt.Errorf("sample %d of %d indices", k, n)
	}
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	out := make([]uint32, k)
	for i := 0; i < k; i++ {
		j, err := s.intn(n - i)
		if err != nil {
			return nil, err
		}
		j += i
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = idx[i]
	}
	return out, nil
}

// intn returns a random int in [0, n). Reduction is uint64 mod n; the bias
// is below n/2^64 < 2^-32 for any representable bit length, far under the
// extractor's probability bounds.
func (s *Sampler) intn(n int) (int, error) {
	var b [8]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return 0, fmt.Errorf("read random index: %w", err)
	}
	return int(binary.BigEndian.Uint64(b[:]) % uint64(n)), nil
}
