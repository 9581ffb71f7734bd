// Package bitexpand implements the bit-interleaved addressing used by
// swizzled GPU texture memory.
//
// A swizzled texture stores the pixel at (x, y, z) at an address whose
// bits interleave the bits of the three coordinates, Morton-style:
//
//	Address: ..zyxzyxzyx  (for a cubic power-of-two volume)
//
// When one dimension is smaller than the others, its coordinate runs
// out of bits first and the remaining axes pack more tightly:
//
//	Address: zzxzxzyx  (fewer x than z, even fewer y)
//
// The package provides two primitives: Masks, which computes the
// per-axis address bit masks for a volume, and Mask.Expand, which
// deposits the low bits of a coordinate into the sparse positions of
// its axis mask while preserving bit order.
package bitexpand

// numStages is ceil(log2(32)): the number of parallel-suffix stages
// needed to realize an arbitrary 32-bit bit deposit.
const numStages = 5

// Masks computes the address bit masks for the X, Y and Z axes of a
// width x height x depth volume. Address bits are dealt round-robin,
// lowest first, to every axis whose dimension still needs another bit,
// so the three masks are pairwise disjoint and their union is a
// contiguous run of low bits.
//
// An axis of extent 1 needs no address bits and receives mask 0, which
// degenerates the scheme to 2D or 1D.
func Masks(width, height, depth uint32) (maskX, maskY, maskZ uint32) {
	var x, y, z uint32
	bit := uint32(1)
	maskBit := uint32(1)
	for {
		done := true
		if bit < width {
			x |= maskBit
			maskBit <<= 1
			done = false
		}
		if bit < height {
			y |= maskBit
			maskBit <<= 1
			done = false
		}
		if bit < depth {
			z |= maskBit
			maskBit <<= 1
			done = false
		}
		if done {
			break
		}
		bit <<= 1
	}
	// The masks must tile [0, maskBit) exactly. Anything else is a bug
	// in the dealing loop above.
	if x^y^z != maskBit-1 {
		panic("bitexpand: axis masks do not tile a contiguous bit range")
	}
	return x, y, z
}

// Mask is a single axis mask together with the precomputed move table
// that makes Expand branch-free. The zero value behaves as an empty
// mask; use NewMask to build one for a nonzero mask.
type Mask struct {
	mask  uint32
	moves [numStages]uint32
}

// NewMask builds the move table for mask using the parallel-suffix
// decomposition of the expand operation (Hacker's Delight, chapter 7).
// Stage i records which bits of the working mask must travel left by
// 2^i; folding moved bits back down compresses the working mask for
// the next stage.
func NewMask(mask uint32) Mask {
	m := Mask{mask: mask}
	work := mask
	mk := ^mask << 1 // count zeros to the right of each bit
	for i := 0; i < numStages; i++ {
		mp := mk ^ (mk << 1) // parallel suffix
		mp ^= mp << 2
		mp ^= mp << 4
		mp ^= mp << 8
		mp ^= mp << 16
		mv := mp & work // bits to move in this stage
		m.moves[i] = mv
		work = (work ^ mv) | (mv >> (1 << i))
		mk &^= mp
	}
	return m
}

// Bits returns the raw axis mask.
func (m Mask) Bits() uint32 { return m.mask }

// Expand deposits the low bits of v into the set positions of the
// mask, preserving their order, and clears every bit outside the mask:
//
//	Expand(0000abcd) with mask 10011010 = a00bc0d0
//
// With k set bits in the mask, only the low k bits of v contribute.
// Expand is total: it cannot fail for any input.
func (m Mask) Expand(v uint32) uint32 {
	if hasBitDeposit {
		return bitDeposit(v, m.mask)
	}
	return m.expandGeneric(v)
}

// expandGeneric applies the move table in reverse stage order. At each
// stage the value is shifted left by 2^i and the stage's move mask
// selects, per bit, the shifted or the unshifted copy.
func (m Mask) expandGeneric(v uint32) uint32 {
	for i := numStages - 1; i >= 0; i-- {
		mv := m.moves[i]
		t := v << (1 << i)
		v = (v &^ mv) | (t & mv)
	}
	return v & m.mask
}

// HardwareAccelerated reports whether Expand is backed by a hardware
// bit-deposit instruction (BMI2 PDEP) on this CPU.
func HardwareAccelerated() bool { return hasBitDeposit }
