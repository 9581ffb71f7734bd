//go:build purego || !amd64

package bitexpand

// No hardware bit-deposit instruction on this platform; Expand always
// takes the move table path.
const hasBitDeposit = false

// bitDeposit is unreachable when hasBitDeposit is false.
func bitDeposit(v, mask uint32) uint32 {
	panic("bitexpand: hardware bit deposit unavailable")
}
