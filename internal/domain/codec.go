package domain

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Helper wire format, all integers big-endian:
//
//	magic "FXH1" | version u8 |
//	inputBits u32 | lockerCount u32 | sampleWidth u32 |
//	nonceLen u8 | lockedLen u8 | checksumLen u8 |
//	checksum |
//	per locker: positions (sampleWidth x u32) | nonce | locked
//
// The header makes the encoding self-describing: a helper is only
// meaningful against the configuration that produced it, and the decoder
// rejects any blob whose geometry disagrees with itself.
var helperMagic = [4]byte{'F', 'X', 'H', '1'}

const helperVersion = 1

// MarshalBinary encodes the helper in locker order.
func (h *Helper) MarshalBinary() ([]byte, error) {
	size := 4 + 1 + 3*4 + 3 + ChecksumBytes +
		len(h.Lockers)*(int(h.SampleWidth)*4+NonceBytes+KeyBytes)
	buf := bytes.NewBuffer(make([]byte, 0, size))

	buf.Write(helperMagic[:])
	buf.WriteByte(helperVersion)
	var hdr [12]byte
	binary.BigEndian.PutUint32(hdr[0:4], h.InputBits)
	binary.BigEndian.PutUint32(hdr[4:8], uint32(len(h.Lockers)))
	binary.BigEndian.PutUint32(hdr[8:12], h.SampleWidth)
	buf.Write(hdr[:])
	buf.WriteByte(NonceBytes)
	buf.WriteByte(KeyBytes)
	buf.WriteByte(ChecksumBytes)
	buf.Write(h.Checksum[:])

	var pos [4]byte
	for i := range h.Lockers {
		l := &h.Lockers[i]
		if uint32(len(l.Positions)) != h.SampleWidth {
			return nil, fmt.Errorf("%w: locker %d has %d positions, want %d",
				ErrMalformedHelper, i, len(l.Positions), h.SampleWidth)
		}
		for _, p := range l.Positions {
			binary.BigEndian.PutUint32(pos[:], p)
			buf.Write(pos[:])
		}
		buf.Write(l.Nonce[:])
		buf.Write(l.Locked[:])
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes and validates a helper blob. Any structural
// violation is reported as ErrMalformedHelper.
func (h *Helper) UnmarshalBinary(data []byte) error {
	const headerLen = 4 + 1 + 12 + 3 + ChecksumBytes
	if len(data) < headerLen {
		return fmt.Errorf("%w: truncated header", ErrMalformedHelper)
	}
	if !bytes.Equal(data[:4], helperMagic[:]) {
		return fmt.Errorf("%w: bad magic", ErrMalformedHelper)
	}
	if data[4] != helperVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformedHelper, data[4])
	}
	inputBits := binary.BigEndian.Uint32(data[5:9])
	lockerCount := binary.BigEndian.Uint32(data[9:13])
	sampleWidth := binary.BigEndian.Uint32(data[13:17])
	if data[17] != NonceBytes || data[18] != KeyBytes || data[19] != ChecksumBytes {
		return fmt.Errorf("%w: unexpected field widths", ErrMalformedHelper)
	}
	if lockerCount == 0 || sampleWidth == 0 || sampleWidth > inputBits {
		return fmt.Errorf("%w: inconsistent geometry", ErrMalformedHelper)
	}

	lockerSize := int(sampleWidth)*4 + NonceBytes + KeyBytes
	want := headerLen + int(lockerCount)*lockerSize
	if len(data) != want {
		return fmt.Errorf("%w: %d bytes, want %d", ErrMalformedHelper, len(data), want)
	}

	out := Helper{
		InputBits:   inputBits,
		SampleWidth: sampleWidth,
		Lockers:     make([]Locker, lockerCount),
	}
	copy(out.Checksum[:], data[20:20+ChecksumBytes])

	off := headerLen
	for i := range out.Lockers {
		l := &out.Lockers[i]
		l.Positions = make([]uint32, sampleWidth)
		for j := range l.Positions {
			p := binary.BigEndian.Uint32(data[off : off+4])
			if p >= inputBits {
				return fmt.Errorf("%w: position %d out of range", ErrMalformedHelper, p)
			}
			l.Positions[j] = p
			off += 4
		}
		copy(l.Nonce[:], data[off:off+NonceBytes])
		off += NonceBytes
		copy(l.Locked[:], data[off:off+KeyBytes])
		off += KeyBytes
	}

	*h = out
	return nil
}
