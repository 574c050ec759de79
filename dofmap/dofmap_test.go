package dofmap

import (
	"errors"
	"testing"

	"github.com/fieldnum/ScatterKernel/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	m, err := Identity(9, 27)
	require.NoError(t, err)

	assert.Equal(t, 9, m.Ndf)
	assert.Equal(t, 27, m.Undf)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, m.Dofs)
	assert.False(t, m.HasDuplicates())
	assert.Equal(t, 9, m.MaxDof())
}

func TestIdentity_Invalid(t *testing.T) {
	_, err := Identity(10, 9)
	if !errors.Is(err, kernel.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNew_Validates(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m, err := New(6, []int{5, 1, 3})
		require.NoError(t, err)
		assert.Equal(t, 3, m.Ndf)
		assert.Equal(t, 5, m.MaxDof())
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := New(4, []int{1, 5})
		if !errors.Is(err, kernel.ErrIndexOutOfRange) {
			t.Errorf("expected ErrIndexOutOfRange, got %v", err)
		}
	})

	t.Run("ZeroEntry", func(t *testing.T) {
		_, err := New(4, []int{0})
		if !errors.Is(err, kernel.ErrIndexOutOfRange) {
			t.Errorf("expected ErrIndexOutOfRange, got %v", err)
		}
	})
}

func TestHasDuplicates(t *testing.T) {
	m, err := New(6, []int{2, 4, 2})
	require.NoError(t, err)
	assert.True(t, m.HasDuplicates())
}

func TestPermuted_Reverse(t *testing.T) {
	m, err := Identity(9, 27)
	require.NoError(t, err)

	perm := []int{8, 7, 6, 5, 4, 3, 2, 1, 0}
	rev, err := m.Permuted(perm)
	require.NoError(t, err)

	assert.Equal(t, []int{9, 8, 7, 6, 5, 4, 3, 2, 1}, rev.Dofs)
	assert.Equal(t, m.Undf, rev.Undf)
}

func TestPermuted_Invalid(t *testing.T) {
	m, err := Identity(3, 3)
	require.NoError(t, err)

	testCases := []struct {
		name string
		perm []int
	}{
		{"WrongLength", []int{0, 1}},
		{"RepeatedEntry", []int{0, 0, 1}},
		{"OutOfRange", []int{0, 1, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Permuted(tc.perm)
			if !errors.Is(err, kernel.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}
