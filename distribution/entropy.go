package distribution

import "math"

// Entropy is a fixed-point weight, weight*log(weight) sum or entropy score.
type Entropy int64

// Scale is the number of fixed-point units per nat.
const Scale = 1 << 12

// FixedLog returns ln(w) in fixed point. Non-positive weights map to 0.
func FixedLog(w Entropy) Entropy {
	if w <= 0 {
		return 0
	}
	return Entropy(math.Log(float64(w)) * Scale)
}

// weightLogWeight returns w * FixedLog(w).
func weightLogWeight(w Entropy) Entropy {
	return w * FixedLog(w)
}

// shannon computes log(W) - sum(w*log(w))/W in fixed point.
func shannon(weightSum, weightLogWeightSum Entropy) Entropy {
	if weightSum == 0 {
		return 0
	}
	return FixedLog(weightSum) - weightLogWeightSum/weightSum
}

// Rand is the randomness source used for sampling. *math/rand.Rand
// satisfies it.
type Rand interface {
	Int63n(n int64) int64
	Intn(n int) int
}
