package rbm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonum/floats"
)

func TestActivateDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	z := make([]float64, 16)
	for i := 0; i < len(z); i++ {
		z[i] = rng.NormFloat64() * 3
	}
	for _, p := range []UnitPolicy{Binary, Gaussian, ReLU, ReLU1, ReLU6, Softmax} {
		a1 := make([]float64, len(z))
		a2 := make([]float64, len(z))
		p.Activate(a1, z)
		p.Activate(a2, z)
		for i := 0; i < len(a1); i++ {
			if a1[i] != a2[i] {
				t.Errorf("%v: activation not deterministic at %d: %g vs %g", p, i, a1[i], a2[i])
			}
		}
	}
}

func TestBinarySampleMean(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := []float64{0.5, 0.5, 0.5, 0.5}
	s := make([]float64, len(a))
	sums := make([]float64, len(a))
	const draws = 10000
	for n := 0; n < draws; n++ {
		Binary.Sample(s, a, rng)
		for i, v := range s {
			if v != 0 && v != 1 {
				t.Fatalf("draw %d: non-binary sample %g at %d", n, v, i)
			}
		}
		floats.Add(sums, s)
	}
	for i := 0; i < len(sums); i++ {
		mean := sums[i] / draws
		if math.Abs(mean-a[i]) > 0.02 {
			t.Errorf("unit %d: empirical mean %f, expected %f within 0.02", i, mean, a[i])
		}
	}
}

func TestSoftmaxActivationSumsToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	cases := [][]float64{
		{0, 0, 0, 0},
		{1000, 999, 998, 997}, // overflows a naive exp
		{-1000, -999, -998, -997},
	}
	for n := 0; n < 10; n++ {
		z := make([]float64, 8)
		for i := 0; i < len(z); i++ {
			z[i] = rng.NormFloat64() * 10
		}
		cases = append(cases, z)
	}
	for _, z := range cases {
		a := make([]float64, len(z))
		Softmax.Activate(a, z)
		if sum := floats.Sum(a); math.Abs(sum-1) > 1e-6 {
			t.Errorf("softmax of %v sums to %g, expected 1", z, sum)
		}
	}
}

func TestSoftmaxSampleOneHot(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := []float64{0.1, 0.2, 0.6, 0.1}
	s := make([]float64, len(a))
	Softmax.Sample(s, a, rng)
	ones := 0
	for i, v := range s {
		switch v {
		case 1:
			ones++
			if i != 2 {
				t.Errorf("one set at %d, expected the max index 2", i)
			}
		case 0:
		default:
			t.Errorf("sample value %g at %d, expected 0 or 1", v, i)
		}
	}
	if ones != 1 {
		t.Errorf("%d units set, expected exactly one", ones)
	}
}

func TestRectifiedActivationRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	z := make([]float64, 100)
	for i := 0; i < len(z); i++ {
		z[i] = rng.NormFloat64() * 10
	}
	for _, tt := range []struct {
		p   UnitPolicy
		max float64
	}{
		{ReLU, math.Inf(1)},
		{ReLU1, 1},
		{ReLU6, 6},
	} {
		a := make([]float64, len(z))
		tt.p.Activate(a, z)
		for i, v := range a {
			if v < 0 || v > tt.max {
				t.Errorf("%v: activation %g at %d outside [0, %g]", tt.p, v, i, tt.max)
			}
		}
	}
}

func TestGaussianIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	z := make([]float64, 32)
	for i := 0; i < len(z); i++ {
		z[i] = rng.NormFloat64() * 100
	}
	a := make([]float64, len(z))
	s := make([]float64, len(z))
	Gaussian.Activate(a, z)
	Gaussian.Sample(s, a, rng)
	for i := 0; i < len(z); i++ {
		if a[i] != z[i] {
			t.Errorf("activation %g at %d, expected the raw pre-activation %g", a[i], i, z[i])
		}
		if s[i] != a[i] {
			t.Errorf("sample %g at %d, expected the activation %g", s[i], i, a[i])
		}
	}
}

// Ranged noise leaves the interval boundaries untouched, so fully off and
// fully saturated bounded-rectifier units sample to exactly their
// activation value.
func TestRangedNoiseBoundaries(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := []float64{0, 1, 0.5}
	s := make([]float64, len(a))
	ReLU1.Sample(s, a, rng)
	if s[0] != 0 {
		t.Errorf("sample at activation 0 is %g, expected exactly 0", s[0])
	}
	if s[1] != 1 {
		t.Errorf("sample at activation 1 is %g, expected exactly 1", s[1])
	}
}
