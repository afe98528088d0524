package domain

const (
	// KeyBytes is the width of every derived key.
	KeyBytes = 32
	// NonceBytes is the per-locker salt width.
	NonceBytes = 16
	// ChecksumBytes is the width of the key checksum carried in a helper.
	ChecksumBytes = 16
)

// Key is a derived secret key. It is drawn uniformly at random on every
// Generate call; the reading never contributes key bits directly.
type Key [KeyBytes]byte

func (k Key) Slice() []byte { return k[:] }

// Params holds one extractor configuration: the caller-chosen inputs plus
// the planner-derived locker geometry. Frozen after construction.
type Params struct {
	// InputBits is the reading length in bits. Readings are byte-aligned,
	// so InputBits is always a multiple of 8.
	InputBits int
	// MaxHammingErrors is the number of flipped bits a noisy reading may
	// carry and still reproduce the key with probability at least
	// 1 - ReproductionFailureBound.
	MaxHammingErrors int
	// ReproductionFailureBound bounds the probability that a reading within
	// tolerance fails to reproduce the key.
	ReproductionFailureBound float64
	// ForgeryBound bounds the probability that an unrelated reading
	// reproduces a key.
	ForgeryBound float64

	// LockerCount and SampleWidth are derived by the planner.
	LockerCount int
	SampleWidth int
}

// Locker locks the key under one random subset of reading bits. Lockers are
// immutable once built; reproduction only reads them.
type Locker struct {
	// Positions are SampleWidth distinct bit indices into the reading,
	// in sampling order.
	Positions []uint32
	// Nonce keys the keystream hash, unique per locker.
	Nonce [NonceBytes]byte
	// Locked is key XOR keystream(nonce, sampled bits).
	Locked [KeyBytes]byte
}

// Helper is the public output of Generate. It is safe to store in the
// clear: each locker exposes only a hash-obscured function of a small
// random subset of reading bits, and the checksum is a one-way digest of
// the key.
type Helper struct {
	InputBits   uint32
	SampleWidth uint32
	Lockers     []Locker
	Checksum    [ChecksumBytes]byte
}
