package rbm

import (
	"math"
	"math/rand"
)

// Sigmoid is the logistic function 1/(1+e^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1 + math.Exp(-x))
}

// logisticNoise perturbs x with zero-mean Gaussian noise whose standard
// deviation is sigmoid(x). This is Hinton's noisy rectified linear unit,
// an approximation of a rectified-Gaussian draw rather than an exact one.
func logisticNoise(rng *rand.Rand, x float64) float64 {
	return x + rng.NormFloat64()*Sigmoid(x)
}

// rangedNoise is logisticNoise applied only inside the open interval
// (0, limit); values at either boundary pass through unchanged.
func rangedNoise(rng *rand.Rand, x, limit float64) float64 {
	if x > 0 && x < limit {
		return logisticNoise(rng, x)
	}
	return x
}
