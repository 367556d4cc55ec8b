//go:build !noasm && amd64

package tensor

import "github.com/klauspost/cpuid/v2"

func init() {
	// Check if the CPU is wide enough to benefit from the unrolled kernel
	if cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3) {
		Dot = dotUnrolled
		lanes = 8
	} else {
		Dot = dotScalar
		lanes = 1
	}
}
