// Package field provides the host-side global buffers that the scatter
// and gather kernels operate on, bound to dof maps from package dofmap.
package field

import (
	"fmt"

	"github.com/fieldnum/ScatterKernel/dofmap"
	"github.com/fieldnum/ScatterKernel/kernel"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Field is a global field buffer of undf entries. The zero value is not
// usable; construct with NewField.
type Field struct {
	data []float64
}

// NewField allocates a zeroed field of undf entries. undf must be
// positive: a zero-length field has no valid positions and would make
// the gonum vector view unconstructible.
func NewField(undf int) (*Field, error) {
	if undf < 1 {
		return nil, fmt.Errorf("%w: undf=%d is not positive", kernel.ErrInvalidArgument, undf)
	}
	return &Field{data: make([]float64, undf)}, nil
}

// Undf returns the number of global entries.
func (f *Field) Undf() int { return len(f.data) }

// Data returns the backing storage. Mutations are visible to the field.
func (f *Field) Data() []float64 { return f.data }

// Zero resets every entry to the baseline value.
func (f *Field) Zero() {
	for i := range f.data {
		f.data[i] = 0
	}
}

// At returns the value at the 1-based global position p.
func (f *Field) At(p int) (float64, error) {
	if p < 1 || p > len(f.data) {
		return 0, fmt.Errorf("%w: position %d outside [1,%d]",
			kernel.ErrIndexOutOfRange, p, len(f.data))
	}
	return f.data[p-1], nil
}

// Vec returns a gonum vector view over the field storage. The view
// shares memory with the field, so kernel writes show through.
func (f *Field) Vec() *mat.VecDense {
	return mat.NewVecDense(len(f.data), f.data)
}

// Norm returns the L2 norm of the field values.
func (f *Field) Norm() float64 {
	return floats.Norm(f.data, 2)
}

// checkMap rejects maps sized for a different buffer before handing
// off to the kernel.
func (f *Field) checkMap(m dofmap.Map) error {
	if m.Undf != len(f.data) {
		return fmt.Errorf("%w: map undf=%d does not match field undf=%d",
			kernel.ErrInvalidArgument, m.Undf, len(f.data))
	}
	return nil
}

// ScatterRamp applies the ramp kernel through m: position m.Dofs[i-1]
// receives i+offset for each local index i, all other positions are
// reset to baseline.
func (f *Field) ScatterRamp(offset int, m dofmap.Map) error {
	if err := f.checkMap(m); err != nil {
		return err
	}
	return kernel.ScatterRamp(offset, f.data, m.Ndf, m.Undf, m.Dofs)
}

// Scatter writes local cell values through m, resetting unaddressed
// positions to baseline.
func (f *Field) Scatter(local []float64, m dofmap.Map) error {
	if err := f.checkMap(m); err != nil {
		return err
	}
	return kernel.Scatter(local, f.data, m.Ndf, m.Undf, m.Dofs)
}

// ScatterAdd accumulates local cell values through m without touching
// unaddressed positions.
func (f *Field) ScatterAdd(local []float64, m dofmap.Map) error {
	if err := f.checkMap(m); err != nil {
		return err
	}
	return kernel.ScatterAdd(local, f.data, m.Ndf, m.Undf, m.Dofs)
}

// Gather picks the values addressed by m into local.
func (f *Field) Gather(local []float64, m dofmap.Map) error {
	if err := f.checkMap(m); err != nil {
		return err
	}
	return kernel.Gather(f.data, local, m.Ndf, m.Undf, m.Dofs)
}
