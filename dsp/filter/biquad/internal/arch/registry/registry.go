// Package registry collects the biquad block kernels linked into the binary
// and picks the best one for the running CPU.
package registry

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-eq/internal/cpu"
)

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// ProcessBlockFn filters buf in place with one DF-II-T section and returns
// the updated delay state.
type ProcessBlockFn func(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64)

// Kernel is one registered implementation.
type Kernel struct {
	Name         string
	Level        cpu.Level
	Priority     int
	ProcessBlock ProcessBlockFn
}

// Registry stores available kernels ordered by descending priority.
type Registry struct {
	mu      sync.RWMutex
	kernels []Kernel
}

// Global is the registry populated by the backend packages' init functions.
var Global = &Registry{}

// Register adds a kernel.
func (r *Registry) Register(k Kernel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.kernels = append(r.kernels, k)
	sort.SliceStable(r.kernels, func(i, j int) bool {
		return r.kernels[i].Priority > r.kernels[j].Priority
	})
}

// Lookup returns the highest-priority kernel supported by features, or nil.
func (r *Registry) Lookup(features cpu.Features) *Kernel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.kernels {
		if features.Supports(r.kernels[i].Level) {
			k := r.kernels[i]
			return &k
		}
	}

	return nil
}

// Kernels returns a copy of the registered kernels in lookup order.
func (r *Registry) Kernels() []Kernel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Kernel(nil), r.kernels...)
}
