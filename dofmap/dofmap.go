// Package dofmap provides the local-to-global index map consumed by the
// scatter and gather kernels. A map translates the ndf local indices of
// one cell into 1-based positions within a global field buffer of undf
// entries. Construction from mesh topology is the business of an
// external dof-numbering layer; this package only carries, validates,
// and rearranges maps it is handed.
package dofmap

import (
	"fmt"

	"github.com/fieldnum/ScatterKernel/kernel"
)

// Map is a local-to-global index map. Dofs holds 1-based positions in a
// global buffer of Undf entries; Ndf entries of Dofs are active.
// Entries need not be unique or contiguous.
type Map struct {
	Ndf  int
	Undf int
	Dofs []int
}

// New builds a map over all entries of dofs targeting a buffer of undf
// positions.
func New(undf int, dofs []int) (Map, error) {
	m := Map{Ndf: len(dofs), Undf: undf, Dofs: dofs}
	if err := m.Validate(); err != nil {
		return Map{}, err
	}
	return m, nil
}

// Identity builds the identity map: local index i targets global
// position i, for i in 1..ndf.
func Identity(ndf, undf int) (Map, error) {
	if ndf < 0 || undf < ndf {
		return Map{}, fmt.Errorf("%w: identity map needs 0 <= ndf <= undf, got ndf=%d undf=%d",
			kernel.ErrInvalidArgument, ndf, undf)
	}
	dofs := make([]int, ndf)
	for i := range dofs {
		dofs[i] = i + 1
	}
	return Map{Ndf: ndf, Undf: undf, Dofs: dofs}, nil
}

// Validate checks the map against the kernel error taxonomy: size
// relationships first, then per-entry bounds.
func (m Map) Validate() error {
	if m.Ndf < 0 {
		return fmt.Errorf("%w: ndf=%d is negative", kernel.ErrInvalidArgument, m.Ndf)
	}
	if m.Ndf > len(m.Dofs) {
		return fmt.Errorf("%w: ndf=%d exceeds dof list length %d",
			kernel.ErrInvalidArgument, m.Ndf, len(m.Dofs))
	}
	if m.Undf < 0 {
		return fmt.Errorf("%w: undf=%d is negative", kernel.ErrInvalidArgument, m.Undf)
	}
	for i := 0; i < m.Ndf; i++ {
		if m.Dofs[i] < 1 || m.Dofs[i] > m.Undf {
			return fmt.Errorf("%w: dofs[%d]=%d outside [1,%d]",
				kernel.ErrIndexOutOfRange, i, m.Dofs[i], m.Undf)
		}
	}
	return nil
}

// MaxDof returns the largest global position among the active entries,
// or 0 for an empty map.
func (m Map) MaxDof() int {
	max := 0
	for i := 0; i < m.Ndf && i < len(m.Dofs); i++ {
		if m.Dofs[i] > max {
			max = m.Dofs[i]
		}
	}
	return max
}

// HasDuplicates reports whether two active entries target the same
// global position. Scatter resolves duplicates last-write-wins, so
// callers that need set semantics check here first.
func (m Map) HasDuplicates() bool {
	seen := make(map[int]bool, m.Ndf)
	for i := 0; i < m.Ndf && i < len(m.Dofs); i++ {
		if seen[m.Dofs[i]] {
			return true
		}
		seen[m.Dofs[i]] = true
	}
	return false
}

// Permuted returns a map with reordered local indices: entry i of the
// result is entry perm[i] of the original. perm must be a permutation
// of 0..Ndf-1.
func (m Map) Permuted(perm []int) (Map, error) {
	if len(perm) != m.Ndf {
		return Map{}, fmt.Errorf("%w: permutation length %d does not match ndf=%d",
			kernel.ErrInvalidArgument, len(perm), m.Ndf)
	}
	used := make([]bool, m.Ndf)
	dofs := make([]int, m.Ndf)
	for i, p := range perm {
		if p < 0 || p >= m.Ndf || used[p] {
			return Map{}, fmt.Errorf("%w: perm[%d]=%d is not a valid permutation entry",
				kernel.ErrInvalidArgument, i, p)
		}
		used[p] = true
		dofs[i] = m.Dofs[p]
	}
	return Map{Ndf: m.Ndf, Undf: m.Undf, Dofs: dofs}, nil
}
