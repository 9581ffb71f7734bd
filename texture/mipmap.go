package texture

import "math/bits"

// Mip-level math for swizzled textures. The hardware stores a full mip
// chain as consecutive swizzled images, each level halving every
// extent (flooring at 1) down to 1x1x1.

// NumLevels returns the number of mip levels in a full chain for this
// descriptor, counting the base level.
func (d Desc) NumLevels() int {
	m := d.Width
	if d.Height > m {
		m = d.Height
	}
	if d.Depth > m {
		m = d.Depth
	}
	if m < 1 {
		m = 1
	}
	return bits.Len(uint(m))
}

// Level returns the descriptor of mip level n. Level 0 is the base
// image; each following level halves every extent, flooring at 1.
func (d Desc) Level(n int) Desc {
	l := d
	for i := 0; i < n; i++ {
		if l.Width > 1 {
			l.Width >>= 1
		}
		if l.Height > 1 {
			l.Height >>= 1
		}
		if l.Depth > 1 {
			l.Depth >>= 1
		}
	}
	return l
}

// LevelOffset returns the byte offset of mip level n within a packed
// swizzled mip chain.
func (d Desc) LevelOffset(n int) int {
	off := 0
	l := d
	for i := 0; i < n; i++ {
		off += l.SwizzledSize()
		l = l.Level(1)
	}
	return off
}

// MipChainSize returns the byte size of the full packed mip chain.
func (d Desc) MipChainSize() int {
	return d.LevelOffset(d.NumLevels())
}
