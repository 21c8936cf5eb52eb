package rbm

import (
	"math"
	"math/rand"

	"github.com/gonum/floats"
)

// A UnitPolicy defines how a layer of units turns pre-activations into
// activation probabilities, and how concrete unit states are drawn from
// those probabilities. The set of policies is closed: Binary, Gaussian,
// ReLU, ReLU1, ReLU6 and Softmax. Gaussian units are legal only on the
// visible side; Softmax, ReLU1 and ReLU6 only on the hidden side, and
// NewRBM enforces this.
type UnitPolicy interface {
	// Activate writes into a the deterministic activation of the
	// pre-activations z. a and z may alias.
	Activate(a, z []float64)
	// Sample writes into s a stochastic draw from the activations a.
	// s and a may alias.
	Sample(s, a []float64, rng *rand.Rand)

	String() string

	visible() bool
	hidden() bool
}

var (
	Binary   UnitPolicy = binaryUnits{}
	Gaussian UnitPolicy = gaussianUnits{}
	ReLU     UnitPolicy = rectifiedUnits{limit: math.Inf(1)}
	ReLU1    UnitPolicy = rectifiedUnits{limit: 1}
	ReLU6    UnitPolicy = rectifiedUnits{limit: 6}
	Softmax  UnitPolicy = softmaxUnits{}
)

type binaryUnits struct{}

func (binaryUnits) Activate(a, z []float64) {
	for i, v := range z {
		a[i] = Sigmoid(v)
	}
}

// Sample draws an independent Bernoulli state per unit.
func (binaryUnits) Sample(s, a []float64, rng *rand.Rand) {
	for i, p := range a {
		if rng.Float64() < p {
			s[i] = 1
		} else {
			s[i] = 0
		}
	}
}

func (binaryUnits) String() string { return "binary" }
func (binaryUnits) visible() bool  { return true }
func (binaryUnits) hidden() bool   { return true }

type gaussianUnits struct{}

// Activate is the identity: Gaussian units carry the raw pre-activation
// with no squashing.
func (gaussianUnits) Activate(a, z []float64) {
	copy(a, z)
}

func (gaussianUnits) Sample(s, a []float64, rng *rand.Rand) {
	copy(s, a)
}

func (gaussianUnits) String() string { return "gaussian" }
func (gaussianUnits) visible() bool  { return true }
func (gaussianUnits) hidden() bool   { return false }

// rectifiedUnits covers ReLU and its bounded variants; limit is +Inf for
// the plain ReLU and the clamp ceiling for ReLU1 and ReLU6.
type rectifiedUnits struct {
	limit float64
}

func (u rectifiedUnits) Activate(a, z []float64) {
	for i, v := range z {
		a[i] = math.Min(math.Max(v, 0), u.limit)
	}
}

// Sample perturbs each activation with logistic noise (ranged noise for
// the bounded variants). The formula approximates a rectified-Gaussian
// draw and is kept as is; downstream numerics depend on it.
func (u rectifiedUnits) Sample(s, a []float64, rng *rand.Rand) {
	if math.IsInf(u.limit, 1) {
		for i, v := range a {
			s[i] = logisticNoise(rng, v)
		}
		return
	}
	for i, v := range a {
		s[i] = rangedNoise(rng, v, u.limit)
	}
}

func (u rectifiedUnits) String() string {
	switch u.limit {
	case 1:
		return "relu1"
	case 6:
		return "relu6"
	}
	return "relu"
}

func (u rectifiedUnits) visible() bool { return math.IsInf(u.limit, 1) }
func (u rectifiedUnits) hidden() bool  { return true }

type softmaxUnits struct{}

// Activate computes the softmax of z. All pre-activations are shifted by
// their max before computing math.Exp, for numerical stability.
func (softmaxUnits) Activate(a, z []float64) {
	max := floats.Max(z)
	for i, v := range z {
		a[i] = math.Exp(v - max)
	}
	sum := floats.Sum(a)
	for i := range a {
		a[i] = a[i] / sum
	}
}

// Sample is a hard argmax draw: one at the index of the largest
// activation, zero everywhere else.
func (softmaxUnits) Sample(s, a []float64, rng *rand.Rand) {
	best := floats.MaxIdx(a)
	for i := range s {
		s[i] = 0
	}
	s[best] = 1
}

func (softmaxUnits) String() string { return "softmax" }
func (softmaxUnits) visible() bool  { return false }
func (softmaxUnits) hidden() bool   { return true }
