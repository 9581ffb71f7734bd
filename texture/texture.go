// Package texture provides sizing, mip-level and cache-key helpers
// around the raw swizzle transform, matching how the emulated GPU lays
// out its textures: power-of-two extents, swizzled per mip level, mip
// levels packed consecutively.
//
// The swizzle package itself trusts its caller completely; this
// package is the validating layer the emulation code goes through when
// it handles guest-supplied dimensions.
package texture

import (
	"fmt"
	"math/bits"

	"github.com/NZJenkins/xemu/swizzle"
)

// DescError describes an invalid texture descriptor field.
type DescError struct {
	Field  string
	Value  int
	Reason string
}

func (e *DescError) Error() string {
	return fmt.Sprintf("texture: %s %d %s", e.Field, e.Value, e.Reason)
}

// BufferSizeError reports a buffer smaller than an operation requires.
type BufferSizeError struct {
	Op   string
	Got  int
	Want int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("texture: %s: buffer has %d bytes, need %d", e.Op, e.Got, e.Want)
}

// Desc describes one swizzled texture image: its extents and opaque
// pixel size. The zero value is invalid.
type Desc struct {
	Width         int
	Height        int
	Depth         int
	BytesPerPixel int
}

// Validate checks that the descriptor describes a texture the swizzled
// layout can represent: every extent a power of two >= 1, a nonzero
// pixel size, and a total byte size that does not overflow.
func (d Desc) Validate() error {
	if err := validExtent("width", d.Width); err != nil {
		return err
	}
	if err := validExtent("height", d.Height); err != nil {
		return err
	}
	if err := validExtent("depth", d.Depth); err != nil {
		return err
	}
	if d.BytesPerPixel < 1 {
		return &DescError{Field: "bytes per pixel", Value: d.BytesPerPixel, Reason: "must be at least 1"}
	}
	size := uint64(d.Width)
	for _, f := range []int{d.Height, d.Depth, d.BytesPerPixel} {
		hi, lo := bits.Mul64(size, uint64(f))
		if hi != 0 {
			return &DescError{Field: "size", Value: d.Width, Reason: "overflows"}
		}
		size = lo
	}
	if size > uint64(int(^uint(0)>>1)) {
		return &DescError{Field: "size", Value: d.Width, Reason: "overflows"}
	}
	return nil
}

func validExtent(field string, v int) error {
	if v < 1 {
		return &DescError{Field: field, Value: v, Reason: "must be at least 1"}
	}
	if v&(v-1) != 0 {
		return &DescError{Field: field, Value: v, Reason: "must be a power of two"}
	}
	return nil
}

// RowPitch returns the tight byte stride of one linear row.
func (d Desc) RowPitch() int { return d.Width * d.BytesPerPixel }

// SlicePitch returns the tight byte stride of one linear depth slice.
func (d Desc) SlicePitch() int { return d.RowPitch() * d.Height }

// LinearSize returns the byte size of the tightly packed linear image.
func (d Desc) LinearSize() int { return d.SlicePitch() * d.Depth }

// SwizzledSize returns the byte size of the swizzled image. For
// power-of-two extents the interleaved address range is dense, so this
// equals LinearSize.
func (d Desc) SwizzledSize() int { return d.LinearSize() }

// Swizzle converts the tightly packed linear image in src to the
// swizzled layout in dst, validating the descriptor and both buffer
// sizes first.
func (d Desc) Swizzle(dst, src []byte) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if len(src) < d.LinearSize() {
		return &BufferSizeError{Op: "swizzle source", Got: len(src), Want: d.LinearSize()}
	}
	if len(dst) < d.SwizzledSize() {
		return &BufferSizeError{Op: "swizzle destination", Got: len(dst), Want: d.SwizzledSize()}
	}
	swizzle.SwizzleBox(src, d.Width, d.Height, d.Depth, dst, d.RowPitch(), d.SlicePitch(), d.BytesPerPixel)
	return nil
}

// Unswizzle converts the swizzled image in src back to the tightly
// packed linear layout in dst, validating the descriptor and both
// buffer sizes first.
func (d Desc) Unswizzle(dst, src []byte) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if len(src) < d.SwizzledSize() {
		return &BufferSizeError{Op: "unswizzle source", Got: len(src), Want: d.SwizzledSize()}
	}
	if len(dst) < d.LinearSize() {
		return &BufferSizeError{Op: "unswizzle destination", Got: len(dst), Want: d.LinearSize()}
	}
	swizzle.UnswizzleBox(src, d.Width, d.Height, d.Depth, dst, d.RowPitch(), d.SlicePitch(), d.BytesPerPixel)
	return nil
}
