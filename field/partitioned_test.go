package field

import (
	"errors"
	"testing"

	"github.com/fieldnum/ScatterKernel/dofmap"
	"github.com/fieldnum/ScatterKernel/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionedField_Layout(t *testing.T) {
	pf, err := NewPartitionedField([]int{4, 0, 6})
	require.NoError(t, err)

	assert.Equal(t, 3, pf.NumPartitions())
	assert.Equal(t, []int{0, 4, 4}, pf.Offsets())
	assert.Equal(t, 10, len(pf.GlobalData()))

	for p, want := range []int{4, 0, 6} {
		undf, err := pf.Undf(p)
		require.NoError(t, err)
		assert.Equal(t, want, undf)
	}
}

func TestPartitionedField_ScatterIsolation(t *testing.T) {
	pf, err := NewPartitionedField([]int{5, 5})
	require.NoError(t, err)

	m0, err := dofmap.New(5, []int{1, 2})
	require.NoError(t, err)
	m1, err := dofmap.New(5, []int{5})
	require.NoError(t, err)

	require.NoError(t, pf.ScatterRamp(0, 10, m0))
	require.NoError(t, pf.ScatterRamp(1, 20, m1))

	// Partition 0 holds the first ramp, partition 1 the second; the
	// contiguous layout keeps them adjacent without interference
	assert.Equal(t, []float64{
		11, 12, 0, 0, 0,
		0, 0, 0, 0, 21,
	}, pf.GlobalData())
}

func TestPartitionedField_PartitionView(t *testing.T) {
	pf, err := NewPartitionedField([]int{2, 3})
	require.NoError(t, err)

	block, err := pf.Partition(1)
	require.NoError(t, err)
	block[0] = 7

	assert.Equal(t, 7.0, pf.GlobalData()[2])
}

func TestPartitionedField_Errors(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, err := NewPartitionedField(nil)
		if !errors.Is(err, kernel.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("NegativeUndf", func(t *testing.T) {
		_, err := NewPartitionedField([]int{3, -1})
		if !errors.Is(err, kernel.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("PartitionOutOfRange", func(t *testing.T) {
		pf, err := NewPartitionedField([]int{3})
		require.NoError(t, err)
		if _, err := pf.Partition(1); !errors.Is(err, kernel.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("MapMismatch", func(t *testing.T) {
		pf, err := NewPartitionedField([]int{3, 4})
		require.NoError(t, err)
		m, err := dofmap.Identity(2, 3)
		require.NoError(t, err)
		// Map sized for partition 0 applied to partition 1
		if err := pf.ScatterRamp(1, 0, m); !errors.Is(err, kernel.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestPartitionedField_GatherRoundTrip(t *testing.T) {
	pf, err := NewPartitionedField([]int{6})
	require.NoError(t, err)

	m, err := dofmap.New(6, []int{6, 2, 4})
	require.NoError(t, err)

	local := []float64{1.5, 2.5, 3.5}
	require.NoError(t, pf.Scatter(0, local, m))

	picked := make([]float64, 3)
	require.NoError(t, pf.Gather(0, picked, m))
	assert.Equal(t, local, picked)
}
