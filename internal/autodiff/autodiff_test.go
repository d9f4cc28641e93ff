package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/backend/cpu"
	"github.com/pinn-ml/pinn/internal/tensor"
)

type testBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newBackend() testBackend {
	return autodiff.New(cpu.New())
}

func TestAutodiffBackend_Name(t *testing.T) {
	assert.Equal(t, "Autodiff(CPU)", newBackend().Name())
	assert.Equal(t, tensor.CPU, newBackend().Device())
}

func TestTape_Recording(t *testing.T) {
	backend := newBackend()
	tape := backend.Tape()

	assert.False(t, tape.IsRecording(), "tape should not record initially")

	tape.StartRecording()
	assert.True(t, tape.IsRecording())

	tape.StopRecording()
	assert.False(t, tape.IsRecording())
}

func TestTape_RecordsOnlyWhileRecording(t *testing.T) {
	backend := newBackend()

	x, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)

	_ = x.Add(x) // not recording yet
	assert.Equal(t, 0, backend.Tape().NumOps())

	backend.Tape().StartRecording()
	_ = x.Add(x)
	assert.Equal(t, 1, backend.Tape().NumOps())

	backend.Tape().Clear()
	assert.Equal(t, 0, backend.Tape().NumOps())
}

func TestDifferentiate_FirstOrder(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{2, 3}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)

	y := x.Mul(x) // y = x²

	ones := tensor.Ones[float64](tensor.Shape{2, 1}, backend)
	dydx, err := autodiff.Differentiate(y, x, ones, false)
	require.NoError(t, err)

	// dy/dx = 2x
	assert.InDeltaSlice(t, []float64{4, 6}, dydx.Data(), 1e-12)

	// Without retain the tape is cleared.
	assert.Equal(t, 0, backend.Tape().NumOps())
}

func TestDifferentiate_SecondOrder(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{2, 3}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)

	y := x.Mul(x).Mul(x) // y = x³

	ones := tensor.Ones[float64](tensor.Shape{2, 1}, backend)
	dydx, err := autodiff.Differentiate(y, x, ones, true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{12, 27}, dydx.Data(), 1e-12, "dy/dx = 3x²")

	// The backward pass was recorded, so the gradient is differentiable.
	d2ydx2, err := autodiff.Differentiate(dydx, x, ones, true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{12, 18}, d2ydx2.Data(), 1e-12, "d²y/dx² = 6x")
}

func TestDifferentiate_UnusedInput(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{2, 3}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)
	z, err := tensor.FromSlice([]float64{5, 7}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)

	y := x.Mul(x)

	ones := tensor.Ones[float64](tensor.Shape{2, 1}, backend)
	dydz, err := autodiff.Differentiate(y, z, ones, true)
	require.NoError(t, err)

	// y does not depend on z: zero gradient, not an error.
	assert.Equal(t, []float64{0, 0}, dydz.Data())
}

func TestDifferentiate_EmptyTape(t *testing.T) {
	backend := newBackend()

	x, err := tensor.FromSlice([]float64{1}, tensor.Shape{1, 1}, backend)
	require.NoError(t, err)
	ones := tensor.Ones[float64](tensor.Shape{1, 1}, backend)

	_, err = autodiff.Differentiate(x, x, ones, false)
	assert.Error(t, err)
}

func TestDifferentiate_WeightsShapeMismatch(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)
	y := x.Add(x)

	badWeights := tensor.Ones[float64](tensor.Shape{1, 1}, backend)
	_, err = autodiff.Differentiate(y, x, badWeights, false)
	assert.Error(t, err)
}

func TestDifferentiate_GradientAccumulation(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{3, 4}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)

	y := x.Add(x) // x used twice

	ones := tensor.Ones[float64](tensor.Shape{2, 1}, backend)
	dydx, err := autodiff.Differentiate(y, x, ones, true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 2}, dydx.Data(), 1e-12)
}

func TestDifferentiate_ThroughIndexSelect(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	// x = [[1 2], [3 4]], u = column 0, y = u²
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	u := x.IndexSelect(1, []int{0})
	y := u.Mul(u)

	ones := tensor.Ones[float64](tensor.Shape{2, 1}, backend)
	dydx, err := autodiff.Differentiate(y, x, ones, true)
	require.NoError(t, err)

	// Column 0 receives 2u, column 1 is untouched.
	assert.Equal(t, tensor.Shape{2, 2}, dydx.Shape())
	assert.InDeltaSlice(t, []float64{2, 0, 6, 0}, dydx.Data(), 1e-12)
}

func TestDifferentiate_ThroughIndexSelect_SecondOrder(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	u := x.IndexSelect(1, []int{0})
	y := u.Mul(u)

	ones := tensor.Ones[float64](tensor.Shape{2, 1}, backend)
	dydx, err := autodiff.Differentiate(y, x, ones, true)
	require.NoError(t, err)

	// d/dx of column 0 of the gradient: d(2u)/du = 2.
	col := tensor.New[float64](backend.IndexSelect(dydx.Raw(), 1, []int{0}), backend)
	d2, err := autodiff.Differentiate(col, x, ones, true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 0, 2, 0}, d2.Data(), 1e-12)
}

func TestDifferentiate_ThroughSumDim(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	y := x.SumDim(0, true) // scalar sum, shape {1,1}

	ones := tensor.Ones[float64](tensor.Shape{1, 1}, backend)
	dydx, err := autodiff.Differentiate(y, x, ones, true)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 1}, dydx.Shape())
	assert.InDeltaSlice(t, []float64{1, 1, 1}, dydx.Data(), 1e-12)
}

func TestDifferentiate_ThroughCat(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	a, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float64{3, 4}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)

	c := tensor.Cat([]*tensor.Tensor[float64, testBackend]{a, b}, 1)
	y := c.Mul(c)

	ones := tensor.Ones[float64](tensor.Shape{2, 2}, backend)
	dyda, err := autodiff.Differentiate(y, a, ones, true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 4}, dyda.Data(), 1e-12)

	dydb, err := autodiff.Differentiate(y, b, ones, true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{6, 8}, dydb.Data(), 1e-12)
}

func TestDifferentiate_Div(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	a, err := tensor.FromSlice([]float64{6, 8}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float64{2, 4}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)

	y := a.Div(b)

	ones := tensor.Ones[float64](tensor.Shape{2, 1}, backend)
	dyda, err := autodiff.Differentiate(y, a, ones, true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.25}, dyda.Data(), 1e-12, "d(a/b)/da = 1/b")

	dydb, err := autodiff.Differentiate(y, b, ones, true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1.5, -0.5}, dydb.Data(), 1e-12, "d(a/b)/db = -a/b²")
}

func TestDifferentiate_BroadcastReduces(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)
	c, err := tensor.FromSlice([]float64{5}, tensor.Shape{1, 1}, backend)
	require.NoError(t, err)

	y := x.Mul(c) // c broadcast over rows

	ones := tensor.Ones[float64](tensor.Shape{3, 1}, backend)
	dydc, err := autodiff.Differentiate(y, c, ones, true)
	require.NoError(t, err)

	// Gradient reduced back to c's shape: sum of x.
	assert.Equal(t, tensor.Shape{1, 1}, dydc.Shape())
	assert.InDeltaSlice(t, []float64{6}, dydc.Data(), 1e-12)
}
