package swizzle

import (
	"bytes"
	"testing"
)

// fill writes a deterministic, position-dependent byte pattern.
func fill(buf []byte, seed uint32) {
	s := seed*2654435761 + 1
	for i := range buf {
		s = s*1664525 + 1013904223
		buf[i] = byte(s >> 24)
	}
}

func TestSwizzleRect4x4(t *testing.T) {
	// The classic 2D Z-order curve, 1 byte per pixel. Linear pixel
	// (x,y) holds y*4+x; its swizzled slot is the Morton interleave
	// of x and y.
	src := make([]byte, 16)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, 16)
	SwizzleRect(src, 4, 4, dst, 4, 1)

	want := []byte{0, 1, 4, 5, 2, 3, 6, 7, 8, 9, 12, 13, 10, 11, 14, 15}
	if !bytes.Equal(dst, want) {
		t.Errorf("SwizzleRect 4x4:\ngot  %v\nwant %v", dst, want)
	}

	back := make([]byte, 16)
	UnswizzleRect(dst, 4, 4, back, 4, 1)
	if !bytes.Equal(back, src) {
		t.Errorf("UnswizzleRect did not invert SwizzleRect:\ngot  %v\nwant %v", back, src)
	}
}

func TestSinglePixel(t *testing.T) {
	// A 1x1x1 box maps its one pixel to swizzled offset 0, whatever
	// the pixel size.
	src := []byte{1, 2, 3, 4, 5, 6, 7}
	dst := make([]byte, 7)
	SwizzleBox(src, 1, 1, 1, dst, 7, 7, 7)
	if !bytes.Equal(dst, src) {
		t.Errorf("1x1x1 box: got %v, want %v", dst, src)
	}
}

func TestRoundTripBox(t *testing.T) {
	dims := []int{1, 2, 4, 8}
	bpps := []int{1, 2, 3, 4}
	for _, w := range dims {
		for _, h := range dims {
			for _, d := range dims {
				for _, bpp := range bpps {
					rowPitch := w * bpp
					slicePitch := rowPitch * h
					linear := make([]byte, slicePitch*d)
					fill(linear, uint32(w*1000000+h*10000+d*100+bpp))

					swizzled := make([]byte, len(linear))
					SwizzleBox(linear, w, h, d, swizzled, rowPitch, slicePitch, bpp)

					back := make([]byte, len(linear))
					UnswizzleBox(swizzled, w, h, d, back, rowPitch, slicePitch, bpp)

					if !bytes.Equal(back, linear) {
						t.Fatalf("round trip failed for %dx%dx%d bpp=%d", w, h, d, bpp)
					}
				}
			}
		}
	}
}

func TestSwizzlePermutes(t *testing.T) {
	// Swizzling a tight buffer is a pure permutation of its pixels:
	// every input pixel appears exactly once in the output.
	w, h, d, bpp := 8, 4, 2, 2
	linear := make([]byte, w*h*d*bpp)
	for i := 0; i < w*h*d; i++ {
		linear[i*bpp] = byte(i)
		linear[i*bpp+1] = byte(i >> 8)
	}
	swizzled := make([]byte, len(linear))
	SwizzleBox(linear, w, h, d, swizzled, w*bpp, w*h*bpp, bpp)

	seen := make([]bool, w*h*d)
	for i := 0; i < w*h*d; i++ {
		id := int(swizzled[i*bpp]) | int(swizzled[i*bpp+1])<<8
		if id >= len(seen) || seen[id] {
			t.Fatalf("pixel %d missing or duplicated in swizzled output", id)
		}
		seen[id] = true
	}
}

func TestRoundTripPaddedPitch(t *testing.T) {
	// Linear rows and slices may carry padding; the transform must
	// only touch the pixel bytes.
	w, h, d, bpp := 4, 4, 2, 2
	rowPitch := w*bpp + 6
	slicePitch := rowPitch*h + 16

	linear := make([]byte, slicePitch*d)
	fill(linear, 42)
	orig := append([]byte(nil), linear...)

	swizzled := make([]byte, w*h*d*bpp)
	SwizzleBox(linear, w, h, d, swizzled, rowPitch, slicePitch, bpp)
	if !bytes.Equal(linear, orig) {
		t.Fatal("SwizzleBox modified its source")
	}

	back := make([]byte, len(linear))
	UnswizzleBox(swizzled, w, h, d, back, rowPitch, slicePitch, bpp)

	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			off := z*slicePitch + y*rowPitch
			if !bytes.Equal(back[off:off+w*bpp], orig[off:off+w*bpp]) {
				t.Fatalf("row (y=%d, z=%d) not restored", y, z)
			}
		}
	}
}

func TestRectMatchesBox(t *testing.T) {
	// The rect forms are exactly the box forms with depth 1.
	w, h, bpp := 4, 4, 4
	pitch := w * bpp
	src := make([]byte, pitch*h)
	fill(src, 7)

	viaRect := make([]byte, w*h*bpp)
	viaBox := make([]byte, w*h*bpp)
	SwizzleRect(src, w, h, viaRect, pitch, bpp)
	SwizzleBox(src, w, h, 1, viaBox, pitch, 0, bpp)
	if !bytes.Equal(viaRect, viaBox) {
		t.Error("SwizzleRect != SwizzleBox with depth 1")
	}

	backRect := make([]byte, pitch*h)
	backBox := make([]byte, pitch*h)
	UnswizzleRect(viaRect, w, h, backRect, pitch, bpp)
	UnswizzleBox(viaBox, w, h, 1, backBox, pitch, 0, bpp)
	if !bytes.Equal(backRect, backBox) {
		t.Error("UnswizzleRect != UnswizzleBox with depth 1")
	}
}

func TestNonSquareRect(t *testing.T) {
	// Wide-but-shallow surfaces give x more address bits than y; the
	// round trip must still be exact.
	w, h, bpp := 32, 2, 4
	pitch := w * bpp
	src := make([]byte, pitch*h)
	fill(src, 99)

	swz := make([]byte, w*h*bpp)
	SwizzleRect(src, w, h, swz, pitch, bpp)
	back := make([]byte, pitch*h)
	UnswizzleRect(swz, w, h, back, pitch, bpp)
	if !bytes.Equal(back, src) {
		t.Error("round trip failed for 32x2 surface")
	}
}
