package tensor

import "math"

// Sigmoid is the logistic function.
func Sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

// Tanh is the hyperbolic tangent.
func Tanh(x float32) float32 {
	return float32(math.Tanh(float64(x)))
}

// SigmoidInPlace applies Sigmoid to every element of v.
func SigmoidInPlace(v []float32) {
	for i := range v {
		v[i] = Sigmoid(v[i])
	}
}

// TanhInPlace applies Tanh to every element of v.
func TanhInPlace(v []float32) {
	for i := range v {
		v[i] = Tanh(v[i])
	}
}

func max32(x []float32) float32 {
	m := float32(math.Inf(-1))
	for _, v := range x {
		if v > m {
			m = v
		}
	}
	return m
}

// Softmax writes the normalized exponentials of x into dst. The maximum is
// subtracted first, so large scores don't overflow.
func Softmax(dst, x []float32) {
	mustLen("softmax", len(dst), len(x))
	m := float64(max32(x))
	var sum float64
	for i, v := range x {
		e := math.Exp(float64(v) - m)
		dst[i] = float32(e)
		sum += e
	}
	inv := 1 / sum
	for i := range dst {
		dst[i] = float32(float64(dst[i]) * inv)
	}
}

// LogSoftmax writes log(Softmax(x)) into dst, computed as x - max - log(sum(exp(x - max))).
func LogSoftmax(dst, x []float32) {
	mustLen("logsoftmax", len(dst), len(x))
	m := float64(max32(x))
	var sum float64
	for _, v := range x {
		sum += math.Exp(float64(v) - m)
	}
	lse := m + math.Log(sum)
	for i, v := range x {
		dst[i] = float32(float64(v) - lse)
	}
}

// LayerNorm normalizes x to zero mean and unit variance, then scales by gamma
// and shifts by beta.
func LayerNorm(dst, x, gamma, beta []float32, eps float32) {
	mustLen("layernorm dst", len(dst), len(x))
	mustLen("layernorm gamma", len(gamma), len(x))
	mustLen("layernorm beta", len(beta), len(x))
	var mean float64
	for _, v := range x {
		mean += float64(v)
	}
	mean /= float64(len(x))
	var variance float64
	for _, v := range x {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(x))
	inv := 1 / math.Sqrt(variance+float64(eps))
	for i, v := range x {
		dst[i] = float32((float64(v)-mean)*inv)*gamma[i] + beta[i]
	}
}
