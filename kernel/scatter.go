// Package kernel implements local-to-global scatter and gather kernels
// for field assembly. Each operation maps ndf local entries onto a
// global buffer of undf entries through a 1-based dof map, the layout
// used by column-major field storage in structured assembly codes.
//
// All operations are stateless and reentrant. Concurrent invocations
// are safe as long as their global buffers do not overlap; the kernels
// provide no internal synchronization.
package kernel

import "fmt"

// checkMap validates the size relationships shared by every kernel
// operation and bounds-checks the first ndf entries of dofs against
// the global buffer.
func checkMap(ndf, undf, blockLen int, dofs []int) error {
	if ndf < 0 {
		return fmt.Errorf("%w: ndf=%d is negative", ErrInvalidArgument, ndf)
	}
	if ndf > len(dofs) {
		return fmt.Errorf("%w: ndf=%d exceeds dof map length %d",
			ErrInvalidArgument, ndf, len(dofs))
	}
	if undf < 0 {
		return fmt.Errorf("%w: undf=%d is negative", ErrInvalidArgument, undf)
	}
	if blockLen < undf {
		return fmt.Errorf("%w: buffer length %d is less than undf=%d",
			ErrInvalidArgument, blockLen, undf)
	}
	for i := 0; i < ndf; i++ {
		if dofs[i] < 1 || dofs[i] > undf {
			return fmt.Errorf("%w: dofs[%d]=%d outside [1,%d]",
				ErrIndexOutOfRange, i, dofs[i], undf)
		}
	}
	return nil
}

// ScatterRamp writes the ramp value i+offset for each local index i in
// 1..ndf into dblock at the 1-based global position dofs[i-1]. The
// first undf entries of dblock are zeroed before scattering, so every
// position not addressed by the dof map reads as the baseline zero
// regardless of the buffer's prior contents. When dofs contains
// duplicate targets the last write in local-index order wins.
func ScatterRamp(offset int, dblock []float64, ndf, undf int, dofs []int) error {
	if err := checkMap(ndf, undf, len(dblock), dofs); err != nil {
		return err
	}
	zero(dblock[:undf])
	for i := 1; i <= ndf; i++ {
		dblock[dofs[i-1]-1] = float64(i + offset)
	}
	return nil
}

// Scatter copies the first ndf entries of local into dblock through the
// dof map: dblock[dofs[i]-1] = local[i]. Zero-fill and duplicate
// semantics match ScatterRamp.
func Scatter(local, dblock []float64, ndf, undf int, dofs []int) error {
	if err := checkMap(ndf, undf, len(dblock), dofs); err != nil {
		return err
	}
	if len(local) < ndf {
		return fmt.Errorf("%w: local length %d is less than ndf=%d",
			ErrInvalidArgument, len(local), ndf)
	}
	zero(dblock[:undf])
	for i := 0; i < ndf; i++ {
		dblock[dofs[i]-1] = local[i]
	}
	return nil
}

// ScatterAdd accumulates the first ndf entries of local into dblock
// through the dof map: dblock[dofs[i]-1] += local[i]. The buffer is
// NOT zeroed first; the caller controls the baseline, which is what
// makes repeated per-cell contributions sum correctly. Duplicate
// targets accumulate rather than overwrite.
func ScatterAdd(local, dblock []float64, ndf, undf int, dofs []int) error {
	if err := checkMap(ndf, undf, len(dblock), dofs); err != nil {
		return err
	}
	if len(local) < ndf {
		return fmt.Errorf("%w: local length %d is less than ndf=%d",
			ErrInvalidArgument, len(local), ndf)
	}
	for i := 0; i < ndf; i++ {
		dblock[dofs[i]-1] += local[i]
	}
	return nil
}

// Gather is the pick-side inverse of Scatter: local[i] = dblock[dofs[i]-1]
// for i in 0..ndf-1. dblock is read-only; entries of local beyond ndf
// are left untouched.
func Gather(dblock, local []float64, ndf, undf int, dofs []int) error {
	if err := checkMap(ndf, undf, len(dblock), dofs); err != nil {
		return err
	}
	if len(local) < ndf {
		return fmt.Errorf("%w: local length %d is less than ndf=%d",
			ErrInvalidArgument, len(local), ndf)
	}
	for i := 0; i < ndf; i++ {
		local[i] = dblock[dofs[i]-1]
	}
	return nil
}

func zero(b []float64) {
	for i := range b {
		b[i] = 0
	}
}
