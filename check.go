package rbm

import (
	"fmt"
	"log"
	"math"
)

// Debug turns divergence detected by the stability checks into a panic
// instead of an error return. Training and test runs set it to fail as
// close to the source of an exploding weight as possible.
var Debug bool

// CheckFinite scans v and reports the first NaN or infinite element.
func CheckFinite(v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("non-finite value %g at index %d", x, i)
		}
	}
	return nil
}

// checkDeep is the post-condition guard on every tensor an activation
// step computes. Divergence means the weights exploded upstream; it must
// surface immediately, never be clamped away.
func checkDeep(name string, v []float64) error {
	err := CheckFinite(v)
	if err == nil {
		return nil
	}
	if Debug {
		log.Printf("%s: %+v", name, v)
		panic(fmt.Sprintf("rbm: %s: %v", name, err))
	}
	return fmt.Errorf("rbm: %s: %v", name, err)
}
