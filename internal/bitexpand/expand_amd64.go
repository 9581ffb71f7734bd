//go:build !purego

package bitexpand

import "golang.org/x/sys/cpu"

// hasBitDeposit gates the PDEP fast path. BMI2 PDEP performs the whole
// expand in one instruction; the result is bit-identical to the move
// table path.
var hasBitDeposit = cpu.X86.HasBMI2

// bitDeposit deposits the low bits of v into the set positions of mask
// using the BMI2 PDEP instruction.
//
//go:noescape
func bitDeposit(v, mask uint32) uint32
