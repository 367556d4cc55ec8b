package tensor

// Dot computes the inner product of two equally long vectors. The kernel is
// selected once at startup for the current cpu and never changes afterwards,
// so repeated calls on equal input return equal bits.
var Dot func(a, b []float32) float32 = dotScalar

var lanes int = 1

// Lanes reports the number of independent accumulators used by Dot. Can't return 0.
func Lanes() int {
	return lanes
}

func dotScalar(a, b []float32) float32 {
	mustLen("dot", len(b), len(a))
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// dotUnrolled keeps 8 partial sums to let wide cores overlap the multiplies.
func dotUnrolled(a, b []float32) float32 {
	mustLen("dot", len(b), len(a))
	var s0, s1, s2, s3, s4, s5, s6, s7 float32
	i := 0
	for ; i+8 <= len(a); i += 8 {
		aa := a[i : i+8 : i+8]
		bb := b[i : i+8 : i+8]
		s0 += aa[0] * bb[0]
		s1 += aa[1] * bb[1]
		s2 += aa[2] * bb[2]
		s3 += aa[3] * bb[3]
		s4 += aa[4] * bb[4]
		s5 += aa[5] * bb[5]
		s6 += aa[6] * bb[6]
		s7 += aa[7] * bb[7]
	}
	for ; i < len(a); i++ {
		s0 += a[i] * b[i]
	}
	return ((s0 + s1) + (s2 + s3)) + ((s4 + s5) + (s6 + s7))
}
