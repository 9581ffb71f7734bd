package bitexpand

import "testing"

// FuzzExpand cross-checks the move-table path (and the hardware path,
// when present) against the obvious per-bit deposit for arbitrary
// masks and values.
func FuzzExpand(f *testing.F) {
	f.Add(uint32(0b10011010), uint32(0b1011))
	f.Add(uint32(0), uint32(0xffffffff))
	f.Add(uint32(0xffffffff), uint32(0x12345678))
	f.Add(uint32(0x55555555), uint32(0))
	f.Add(uint32(0x80000001), uint32(3))

	f.Fuzz(func(t *testing.T, mask, v uint32) {
		m := NewMask(mask)
		want := naiveExpand(v, mask)
		if got := m.expandGeneric(v); got != want {
			t.Errorf("expandGeneric(%#x, mask %#x) = %#x, want %#x", v, mask, got, want)
		}
		if got := m.Expand(v); got != want {
			t.Errorf("Expand(%#x, mask %#x) = %#x, want %#x", v, mask, got, want)
		}
		if m.Expand(v)&^mask != 0 {
			t.Errorf("Expand(%#x, mask %#x) has bits outside the mask", v, mask)
		}
	})
}

// FuzzMasks checks the disjointness and contiguity invariants for
// arbitrary extents.
func FuzzMasks(f *testing.F) {
	f.Add(uint32(4), uint32(4), uint32(1))
	f.Add(uint32(1), uint32(1), uint32(1))
	f.Add(uint32(1024), uint32(3), uint32(77))

	f.Fuzz(func(t *testing.T, w, h, d uint32) {
		// Cap the extents so a pathological input cannot demand more
		// than 32 address bits.
		w = w%1024 + 1
		h = h%1024 + 1
		d = d%1024 + 1
		mx, my, mz := Masks(w, h, d)
		if mx&my != 0 || my&mz != 0 || mx&mz != 0 {
			t.Errorf("Masks(%d,%d,%d) = %#x, %#x, %#x: not disjoint", w, h, d, mx, my, mz)
		}
		union := mx | my | mz
		if union&(union+1) != 0 {
			t.Errorf("Masks(%d,%d,%d): union %#x not contiguous", w, h, d, union)
		}
	})
}
