package field

import (
	"fmt"

	"github.com/fieldnum/ScatterKernel/dofmap"
	"github.com/fieldnum/ScatterKernel/kernel"
)

// PartitionedField stores several independent field buffers in one
// contiguous allocation.
//
// Layout: [Partition 0 Data][Partition 1 Data]...[Partition N-1 Data]
//
// Partition p's undf[p] entries start at GlobalData()[Offsets()[p]].
// Each partition scatters through its own dof maps; the kernels never
// cross partition boundaries, so distinct partitions can be driven
// concurrently.
type PartitionedField struct {
	data    []float64
	offsets []int // length numPartitions+1; offsets[p+1]-offsets[p] = undfs[p]
	undfs   []int
}

// NewPartitionedField allocates contiguous zeroed storage for one
// buffer per entry of undfs.
func NewPartitionedField(undfs []int) (*PartitionedField, error) {
	if len(undfs) == 0 {
		return nil, fmt.Errorf("%w: at least one partition required", kernel.ErrInvalidArgument)
	}
	offsets := make([]int, len(undfs)+1)
	for p, undf := range undfs {
		if undf < 0 {
			return nil, fmt.Errorf("%w: partition %d has negative undf=%d",
				kernel.ErrInvalidArgument, p, undf)
		}
		offsets[p+1] = offsets[p] + undf
	}
	return &PartitionedField{
		data:    make([]float64, offsets[len(undfs)]),
		offsets: offsets,
		undfs:   append([]int(nil), undfs...),
	}, nil
}

// NumPartitions returns the number of per-partition buffers.
func (pf *PartitionedField) NumPartitions() int { return len(pf.undfs) }

// Offsets returns the starting position of each partition's data in the
// global storage.
func (pf *PartitionedField) Offsets() []int { return pf.offsets[:len(pf.undfs)] }

// GlobalData returns the contiguous storage for all partitions.
func (pf *PartitionedField) GlobalData() []float64 { return pf.data }

// Undf returns partition p's buffer length.
func (pf *PartitionedField) Undf(p int) (int, error) {
	if p < 0 || p >= len(pf.undfs) {
		return 0, fmt.Errorf("%w: partition %d outside [0,%d)",
			kernel.ErrInvalidArgument, p, len(pf.undfs))
	}
	return pf.undfs[p], nil
}

// Partition returns partition p's slice of the global storage.
func (pf *PartitionedField) Partition(p int) ([]float64, error) {
	if p < 0 || p >= len(pf.undfs) {
		return nil, fmt.Errorf("%w: partition %d outside [0,%d)",
			kernel.ErrInvalidArgument, p, len(pf.undfs))
	}
	return pf.data[pf.offsets[p]:pf.offsets[p+1]], nil
}

// ScatterRamp applies the ramp kernel to partition p's buffer.
func (pf *PartitionedField) ScatterRamp(p, offset int, m dofmap.Map) error {
	block, err := pf.partitionFor(p, m)
	if err != nil {
		return err
	}
	return kernel.ScatterRamp(offset, block, m.Ndf, m.Undf, m.Dofs)
}

// Scatter writes local values into partition p's buffer.
func (pf *PartitionedField) Scatter(p int, local []float64, m dofmap.Map) error {
	block, err := pf.partitionFor(p, m)
	if err != nil {
		return err
	}
	return kernel.Scatter(local, block, m.Ndf, m.Undf, m.Dofs)
}

// ScatterAdd accumulates local values into partition p's buffer.
func (pf *PartitionedField) ScatterAdd(p int, local []float64, m dofmap.Map) error {
	block, err := pf.partitionFor(p, m)
	if err != nil {
		return err
	}
	return kernel.ScatterAdd(local, block, m.Ndf, m.Undf, m.Dofs)
}

// Gather picks the values addressed by m out of partition p's buffer.
func (pf *PartitionedField) Gather(p int, local []float64, m dofmap.Map) error {
	block, err := pf.partitionFor(p, m)
	if err != nil {
		return err
	}
	return kernel.Gather(block, local, m.Ndf, m.Undf, m.Dofs)
}

func (pf *PartitionedField) partitionFor(p int, m dofmap.Map) ([]float64, error) {
	block, err := pf.Partition(p)
	if err != nil {
		return nil, err
	}
	if m.Undf != len(block) {
		return nil, fmt.Errorf("%w: map undf=%d does not match partition %d undf=%d",
			kernel.ErrInvalidArgument, m.Undf, p, len(block))
	}
	return block, nil
}
