package label_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/backend/cpu"
	"github.com/pinn-ml/pinn/internal/label"
	"github.com/pinn-ml/pinn/internal/tensor"
)

func newAutodiffBackend() *autodiff.AutodiffBackend[*cpu.CPUBackend] {
	return autodiff.New(cpu.New())
}

func TestNew_Validation(t *testing.T) {
	backend := cpu.New()

	data, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	// One label per column.
	_, err = label.New(data, []string{"x"})
	assert.Error(t, err)

	// Labels must be unique.
	_, err = label.New(data, []string{"x", "x"})
	assert.Error(t, err)

	// Data must be 2-D.
	flat, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	_, err = label.New(flat, []string{"x", "y"})
	assert.Error(t, err)

	lt, err := label.New(data, []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, lt.Labels())
	assert.Equal(t, 2, lt.Rows())
	assert.Equal(t, 2, lt.Cols())
	assert.True(t, lt.Has("x"))
	assert.False(t, lt.Has("z"))
}

func TestFromSlice(t *testing.T) {
	lt, err := label.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, []string{"x", "y", "z"}, cpu.New())
	require.NoError(t, err)
	assert.Equal(t, 2, lt.Rows())
	assert.Equal(t, 3, lt.Cols())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, lt.Data().Data())
}

func TestExtract(t *testing.T) {
	// [[1 2 3]
	//  [4 5 6]]
	lt, err := label.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, []string{"x", "y", "z"}, cpu.New())
	require.NoError(t, err)

	sub, err := lt.Extract("z", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "x"}, sub.Labels())
	assert.Equal(t, []float64{3, 1, 6, 4}, sub.Data().Data())

	_, err = lt.Extract("w")
	assert.Error(t, err)
}

func TestRelabel(t *testing.T) {
	lt, err := label.FromSlice([]float64{1, 2}, 1, []string{"x", "y"}, cpu.New())
	require.NoError(t, err)

	renamed, err := lt.Relabel([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, renamed.Labels())
	assert.Equal(t, []string{"x", "y"}, lt.Labels(), "receiver labels unchanged")
	assert.Same(t, lt.Data(), renamed.Data(), "relabel shares the data tensor")

	_, err = lt.Relabel([]string{"a"})
	assert.Error(t, err)
}

func TestAppend(t *testing.T) {
	backend := cpu.New()

	a, err := label.FromSlice([]float64{1, 3}, 2, []string{"x"}, backend)
	require.NoError(t, err)
	b, err := label.FromSlice([]float64{2, 4}, 2, []string{"y"}, backend)
	require.NoError(t, err)

	ab, err := a.Append(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ab.Labels())
	assert.Equal(t, []float64{1, 2, 3, 4}, ab.Data().Data())

	// Row counts must match.
	c, err := label.FromSlice([]float64{9}, 1, []string{"z"}, backend)
	require.NoError(t, err)
	_, err = a.Append(c)
	assert.Error(t, err)

	// Combined labels must stay unique.
	_, err = a.Append(a)
	assert.Error(t, err)
}

func TestExtract_RecordedOnTape(t *testing.T) {
	backend := newAutodiffBackend()
	backend.Tape().StartRecording()

	lt, err := label.FromSlice([]float64{1, 2, 3, 4}, 2, []string{"x", "y"}, backend)
	require.NoError(t, err)

	_, err = lt.Extract("y")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.Tape().NumOps(), "column extraction must be recorded")
}
