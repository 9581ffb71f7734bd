// Package swizzle converts pixel data between linear (row-major)
// memory layout and the swizzled (bit-interleaved, Z-order) layout
// used by GPU texture memory.
//
// In the swizzled layout the address bits of a pixel interleave the
// bits of its x, y and z coordinates, which keeps spatially close
// pixels close in memory and makes texture fetches cache-friendly.
// The interleave adapts to the volume's shape: an axis contributes
// address bits only while its extent needs them, so non-cubic volumes
// (and flat 2D surfaces) pack tightly.
//
// All functions treat pixels as opaque bytesPerPixel-sized blocks and
// never interpret their contents. Buffers are the caller's contract:
// the linear side must hold height*rowPitch bytes per slice (addressed
// through slicePitch across slices) and the swizzled side must cover
// the full interleaved address range. Source and destination must not
// overlap. Each call is a pure, stateless transform; distinct calls on
// distinct buffers are safe to run concurrently.
package swizzle

import "github.com/NZJenkins/xemu/internal/bitexpand"

// expanders bundles the three per-axis bit-deposit engines for one
// volume. Built fresh per call, never cached.
type expanders struct {
	x, y, z bitexpand.Mask
}

func buildExpanders(width, height, depth int) expanders {
	mx, my, mz := bitexpand.Masks(uint32(width), uint32(height), uint32(depth))
	return expanders{
		x: bitexpand.NewMask(mx),
		y: bitexpand.NewMask(my),
		z: bitexpand.NewMask(mz),
	}
}

// copyRegion moves every pixel with z in [z0,z1) and y in [y0,y1)
// between the linear and swizzled buffers. toSwizzled selects the
// direction; the addressing is identical both ways. The swizzled side
// is always indexed from a fixed base by the interleaved offset, the
// linear side by z*slicePitch + y*rowPitch + x*bytesPerPixel.
func copyRegion(linear, swizzled []byte, e expanders, width, z0, z1, y0, y1, rowPitch, slicePitch, bytesPerPixel int, toSwizzled bool) {
	for z := z0; z < z1; z++ {
		oz := e.z.Expand(uint32(z))
		slice := z * slicePitch
		for y := y0; y < y1; y++ {
			oyz := e.y.Expand(uint32(y)) | oz
			row := slice + y*rowPitch
			for x := 0; x < width; x++ {
				so := int(e.x.Expand(uint32(x))|oyz) * bytesPerPixel
				lo := row + x*bytesPerPixel
				if toSwizzled {
					copy(swizzled[so:so+bytesPerPixel], linear[lo:lo+bytesPerPixel])
				} else {
					copy(linear[lo:lo+bytesPerPixel], swizzled[so:so+bytesPerPixel])
				}
			}
		}
	}
}

// SwizzleBox copies a width x height x depth box of pixels from the
// linear layout in src to the swizzled layout in dst. rowPitch and
// slicePitch are the byte strides of a linear row and depth slice;
// bytesPerPixel is the opaque pixel size.
func SwizzleBox(src []byte, width, height, depth int, dst []byte, rowPitch, slicePitch, bytesPerPixel int) {
	e := buildExpanders(width, height, depth)
	copyRegion(src, dst, e, width, 0, depth, 0, height, rowPitch, slicePitch, bytesPerPixel, true)
}

// UnswizzleBox is the exact inverse of SwizzleBox: it copies a box of
// pixels from the swizzled layout in src back to the linear layout in
// dst.
func UnswizzleBox(src []byte, width, height, depth int, dst []byte, rowPitch, slicePitch, bytesPerPixel int) {
	e := buildExpanders(width, height, depth)
	copyRegion(dst, src, e, width, 0, depth, 0, height, rowPitch, slicePitch, bytesPerPixel, false)
}

// SwizzleRect is SwizzleBox for a single 2D plane (depth 1).
func SwizzleRect(src []byte, width, height int, dst []byte, pitch, bytesPerPixel int) {
	SwizzleBox(src, width, height, 1, dst, pitch, 0, bytesPerPixel)
}

// UnswizzleRect is UnswizzleBox for a single 2D plane (depth 1).
func UnswizzleRect(src []byte, width, height int, dst []byte, pitch, bytesPerPixel int) {
	UnswizzleBox(src, width, height, 1, dst, pitch, 0, bytesPerPixel)
}

// HardwareAccelerated reports whether the bit-deposit primitive runs
// on a dedicated CPU instruction rather than the software move table.
// Both paths produce identical output.
func HardwareAccelerated() bool { return bitexpand.HardwareAccelerated() }
