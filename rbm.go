// Package rbm implements the activation engine of a restricted Boltzmann
// machine following Geoffrey Hinton's definition: a visible and a hidden
// layer of stochastic units with no intra-layer connections. The package
// computes unit activations and samples in both directions; training
// drivers build contrastive divergence on top of it.
package rbm

import (
	"fmt"
	"math/rand"

	"github.com/gonum/blas"
	"github.com/gonum/blas/blas64"
)

// An RBM holds the learned parameters of one machine together with the
// unit-state tensors a contrastive divergence driver alternates over.
// The parameter and state slices alias internal storage, so an RBM must
// not be copied after construction.
//
// The activation methods reuse model-owned scratch buffers and draw from
// Rand, so calls on one RBM must be serialized by the caller; the
// *Scratch variants with distinct buffers lift that restriction for the
// pre-activation stage.
type RBM struct {
	NumVisible int
	NumHidden  int

	Visible UnitPolicy // unit policy of the visible layer
	Hidden  UnitPolicy // unit policy of the hidden layer

	W blas64.General // weights, NumVisible x NumHidden
	B []float64      // hidden biases
	C []float64      // visible biases

	// Reconstruction state for contrastive divergence.
	V1  []float64 // state of the visible units
	H1A []float64 // hidden activation probabilities after the first CD step
	H1S []float64 // hidden sampled state after the first CD step
	V2A []float64 // visible activation probabilities after the first CD step
	V2S []float64 // visible sampled state after the first CD step
	H2A []float64 // hidden activation probabilities after the last CD step
	H2S []float64 // hidden sampled state after the last CD step

	// Rand is the source of every stochastic draw made by this model.
	// Swap in a seeded generator for reproducible runs.
	Rand *rand.Rand

	hScratch []float64
	vScratch []float64
}

// NewRBM builds a machine with the given layer sizes and unit policies.
// Weights are initialized from a zero-mean Gaussian distribution scaled
// by 0.1; biases start at zero. The policy pair is fixed for the lifetime
// of the model, and an illegal assignment (Gaussian hidden units, or
// softmax/bounded-rectified visible units) panics.
func NewRBM(numVisible, numHidden int, visible, hidden UnitPolicy) *RBM {
	if numVisible <= 0 || numHidden <= 0 {
		panic(fmt.Sprintf("rbm: invalid layer sizes %d -> %d", numVisible, numHidden))
	}
	if !visible.visible() {
		panic(fmt.Sprintf("rbm: %v units cannot be visible units", visible))
	}
	if !hidden.hidden() {
		panic(fmt.Sprintf("rbm: %v units cannot be hidden units", hidden))
	}
	m := RBM{
		NumVisible: numVisible,
		NumHidden:  numHidden,
		Visible:    visible,
		Hidden:     hidden,
		W: blas64.General{
			Rows:   numVisible,
			Cols:   numHidden,
			Stride: numHidden,
			Data:   make([]float64, numVisible*numHidden),
		},
		B:        make([]float64, numHidden),
		C:        make([]float64, numVisible),
		V1:       make([]float64, numVisible),
		H1A:      make([]float64, numHidden),
		H1S:      make([]float64, numHidden),
		V2A:      make([]float64, numVisible),
		V2S:      make([]float64, numVisible),
		H2A:      make([]float64, numHidden),
		H2S:      make([]float64, numHidden),
		Rand:     rand.New(rand.NewSource(rand.Int63())),
		hScratch: make([]float64, numHidden),
		vScratch: make([]float64, numVisible),
	}
	for i := range m.W.Data {
		m.W.Data[i] = rand.NormFloat64() * 0.1
	}
	return &m
}

func (m *RBM) InputSize() int  { return m.NumVisible }
func (m *RBM) OutputSize() int { return m.NumHidden }

func (m *RBM) String() string {
	return fmt.Sprintf("RBM: %d -> %d", m.NumVisible, m.NumHidden)
}

// preactivate computes z = bias + W^T·input (t == blas.Trans, visible to
// hidden) or z = bias + W·input (t == blas.NoTrans, hidden to visible).
// z doubles as the scratch destination, so the transform allocates
// nothing.
func (m *RBM) preactivate(t blas.Transpose, bias, input, z []float64) {
	in, out := m.W.Rows, m.W.Cols
	if t == blas.NoTrans {
		in, out = out, in
	}
	if len(input) != in || len(bias) != out || len(z) != out {
		panic(fmt.Sprintf("rbm: preactivation shape mismatch: input %d, bias %d, dest %d for %v",
			len(input), len(bias), len(z), m))
	}
	copy(z, bias)
	blas64.Gemv(t, 1, m.W,
		blas64.Vector{Inc: 1, Data: input},
		1,
		blas64.Vector{Inc: 1, Data: z})
}

// ActivateHidden computes the hidden layer from the visible state.
// With prob set, hA receives the activation probabilities; with sample
// set, hS receives a stochastic draw. When both are requested the draw
// reuses the just-computed probabilities instead of recomputing them;
// with sample alone the probabilities are formed directly in hS and drawn
// from in place, saving a pass.
//
// The visible activation vA, not the sample, feeds forward; vS is
// accepted for symmetry with ActivateVisible.
func (m *RBM) ActivateHidden(hA, hS, vA, vS []float64, prob, sample bool) error {
	return m.ActivateHiddenScratch(hA, hS, vA, vS, m.hScratch, prob, sample)
}

// ActivateHiddenScratch is ActivateHidden with a caller-owned scratch
// buffer of length NumHidden for the pre-activation.
func (m *RBM) ActivateHiddenScratch(hA, hS, vA, vS, scratch []float64, prob, sample bool) error {
	m.preactivate(blas.Trans, m.B, vA, scratch)
	switch {
	case prob:
		m.Hidden.Activate(hA, scratch)
		if sample {
			m.Hidden.Sample(hS, hA, m.Rand)
		}
	case sample:
		m.Hidden.Activate(hS, scratch)
		m.Hidden.Sample(hS, hS, m.Rand)
	}
	if prob {
		if err := checkDeep("h_a", hA); err != nil {
			return err
		}
	}
	if sample {
		return checkDeep("h_s", hS)
	}
	return nil
}

// ActivateVisible computes the visible layer from the hidden state. The
// reconstruction always reads the hidden sample hS, never the hidden
// activation hA: feeding the activation forward but the sample backward
// is how the contrastive divergence chain is defined.
func (m *RBM) ActivateVisible(hA, hS, vA, vS []float64, prob, sample bool) error {
	return m.ActivateVisibleScratch(hA, hS, vA, vS, m.vScratch, prob, sample)
}

// ActivateVisibleScratch is ActivateVisible with a caller-owned scratch
// buffer of length NumVisible for the pre-activation.
func (m *RBM) ActivateVisibleScratch(hA, hS, vA, vS, scratch []float64, prob, sample bool) error {
	m.preactivate(blas.NoTrans, m.C, hS, scratch)
	switch {
	case prob:
		m.Visible.Activate(vA, scratch)
		if sample {
			m.Visible.Sample(vS, vA, m.Rand)
		}
	case sample:
		m.Visible.Activate(vS, scratch)
		m.Visible.Sample(vS, vS, m.Rand)
	}
	if prob {
		if err := checkDeep("v_a", vA); err != nil {
			return err
		}
	}
	if sample {
		return checkDeep("v_s", vS)
	}
	return nil
}

// ActivationProbabilities computes the hidden activation probabilities of
// an arbitrary input sample, for feature extraction. The input is taken
// as the visible activation directly; no stochastic visible sampling is
// involved. A throwaway sample buffer is still allocated so the call goes
// through the same hidden step as everything else.
func (m *RBM) ActivationProbabilities(sample []float64) ([]float64, error) {
	result := make([]float64, m.NumHidden)
	next := make([]float64, m.NumHidden)
	if err := m.ActivateHidden(result, next, sample, sample, true, false); err != nil {
		return nil, err
	}
	return result, nil
}
