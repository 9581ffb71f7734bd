package texture

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash returns the 64-bit content hash of raw texture bytes. The
// emulation layer uses it to detect guest texture changes without
// comparing full buffers.
func Hash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// CacheKey returns a hash covering both the descriptor and the texture
// contents, suitable as a host texture-cache key: two textures collide
// only if they have the same shape, pixel size and bytes.
func (d Desc) CacheKey(data []byte) uint64 {
	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(d.Width))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(d.Height))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(d.Depth))
	binary.LittleEndian.PutUint32(hdr[12:], uint32(d.BytesPerPixel))

	h := xxhash.New()
	h.Write(hdr[:])
	h.Write(data)
	return h.Sum64()
}
