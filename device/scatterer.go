// Package device executes the ramp scatter on an OCCA device. The host
// kernels in package kernel remain the reference semantics; this path
// exists for callers that already hold field storage on a device and
// want the scatter to happen there.
package device

import (
	"fmt"
	"unsafe"

	"github.com/fieldnum/ScatterKernel/dofmap"
	"github.com/fieldnum/ScatterKernel/kernel"
	"github.com/notargets/gocca"
)

// Problem sizes are baked into the generated kernel source, so each
// distinct (offset, ndf) pair compiles once and is cached. undf is
// fixed at construction along with the device buffers.
const scatterRampSource = `
@kernel void scatterRamp(const int *dofs, double *dblock) {
	for (int block = 0; block < 1; ++block; @outer) {
		for (int p = 0; p < %d; ++p; @inner) {
			dblock[p] = 0.0;
		}
	}
	for (int block = 0; block < 1; ++block; @outer) {
		for (int i = 0; i < %d; ++i; @inner) {
			dblock[dofs[i] - 1] = (double)(i + 1 + (%d));
		}
	}
}`

// Zero-extent @inner loops become zero-thread launch dimensions on GPU
// backends, so an empty dof map compiles to the zero-fill pass alone.
const zeroFillSource = `
@kernel void scatterRamp(const int *dofs, double *dblock) {
	for (int block = 0; block < 1; ++block; @outer) {
		for (int p = 0; p < %d; ++p; @inner) {
			dblock[p] = 0.0;
		}
	}
}`

// sourceFor generates the OKL source for one (offset, ndf) pair over a
// buffer of undf entries.
func sourceFor(undf, ndf, offset int) string {
	if ndf == 0 {
		return fmt.Sprintf(zeroFillSource, undf)
	}
	return fmt.Sprintf(scatterRampSource, undf, ndf, offset)
}

// Scatterer owns the device-resident dblock and dof map buffers plus
// the compiled kernels that write into them.
type Scatterer struct {
	Device  *gocca.OCCADevice
	undf    int
	maxNdf  int
	dblock  *gocca.OCCAMemory
	dofs    *gocca.OCCAMemory
	kernels map[string]*gocca.OCCAKernel
}

// NewScatterer allocates device storage for a buffer of undf entries
// and dof maps of up to maxNdf entries.
func NewScatterer(device *gocca.OCCADevice, undf, maxNdf int) (*Scatterer, error) {
	if device == nil {
		return nil, fmt.Errorf("%w: nil device", kernel.ErrInvalidArgument)
	}
	if undf < 0 || maxNdf < 0 {
		return nil, fmt.Errorf("%w: undf=%d maxNdf=%d", kernel.ErrInvalidArgument, undf, maxNdf)
	}

	// Zero-length Mallocs are rejected by some backends
	blockEntries := undf
	if blockEntries == 0 {
		blockEntries = 1
	}
	dofEntries := maxNdf
	if dofEntries == 0 {
		dofEntries = 1
	}

	return &Scatterer{
		Device:  device,
		undf:    undf,
		maxNdf:  maxNdf,
		dblock:  device.Malloc(int64(blockEntries*8), nil, nil),
		dofs:    device.Malloc(int64(dofEntries*4), nil, nil),
		kernels: make(map[string]*gocca.OCCAKernel),
	}, nil
}

// Undf returns the device buffer length.
func (s *Scatterer) Undf() int { return s.undf }

// ScatterRamp runs the ramp scatter on the device: position dofs[i-1]
// receives i+offset for each local index i in 1..ndf, every other
// position is zeroed. The @inner writes run in parallel, so duplicate
// dof targets have no defined winner; maps with duplicates are
// rejected — use the host kernel for last-write-wins semantics.
func (s *Scatterer) ScatterRamp(offset, ndf int, dofs []int) error {
	m := dofmap.Map{Ndf: ndf, Undf: s.undf, Dofs: dofs}
	if err := m.Validate(); err != nil {
		return err
	}
	if ndf > s.maxNdf {
		return fmt.Errorf("%w: ndf=%d exceeds device dof capacity %d",
			kernel.ErrInvalidArgument, ndf, s.maxNdf)
	}
	if m.HasDuplicates() {
		return fmt.Errorf("%w: duplicate dof targets are not supported on device",
			kernel.ErrInvalidArgument)
	}
	if s.undf == 0 {
		// Nothing to zero and nothing to scatter
		return nil
	}

	if ndf > 0 {
		dofs32 := make([]int32, ndf)
		for i := 0; i < ndf; i++ {
			dofs32[i] = int32(dofs[i])
		}
		s.dofs.CopyFrom(unsafe.Pointer(&dofs32[0]), int64(ndf*4))
	}

	krn, err := s.kernelFor(offset, ndf)
	if err != nil {
		return err
	}
	if err := krn.RunWithArgs(s.dofs, s.dblock); err != nil {
		return fmt.Errorf("kernel execution failed: %w", err)
	}
	s.Device.Finish()
	return nil
}

// Result copies the device buffer back to the host.
func (s *Scatterer) Result() ([]float64, error) {
	out := make([]float64, s.undf)
	if s.undf > 0 {
		s.dblock.CopyTo(unsafe.Pointer(&out[0]), int64(s.undf*8))
	}
	return out, nil
}

// kernelFor returns the compiled kernel for this (offset, ndf) pair,
// building it on first use.
func (s *Scatterer) kernelFor(offset, ndf int) (*gocca.OCCAKernel, error) {
	key := fmt.Sprintf("o%d_n%d", offset, ndf)
	if krn, exists := s.kernels[key]; exists {
		return krn, nil
	}

	source := sourceFor(s.undf, ndf, offset)

	var krn *gocca.OCCAKernel
	var err error
	if s.Device.Mode() == "OpenMP" {
		// Workaround for OCCA bug: OpenMP doesn't get default -O3 flag
		props := gocca.JsonParse(`{"compiler_flags": "-O3"}`)
		defer props.Free()
		krn, err = s.Device.BuildKernelFromString(source, "scatterRamp", props)
	} else {
		krn, err = s.Device.BuildKernelFromString(source, "scatterRamp", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build scatter kernel: %w", err)
	}

	s.kernels[key] = krn
	return krn, nil
}

// Free releases the compiled kernels and device memory. The device
// itself belongs to the caller.
func (s *Scatterer) Free() {
	for _, krn := range s.kernels {
		krn.Free()
	}
	s.dblock.Free()
	s.dofs.Free()
}
