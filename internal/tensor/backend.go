package tensor

// Backend defines the compute operations a device implementation must
// provide. The interface lists exactly the operations the differentiation
// stack exercises; a backend panics on shape errors (malformed shapes are
// programmer errors at this layer, validated semantics live above it).
//
// Implementations must return freshly allocated tensors and leave their
// operands untouched. See RawTensor for why.
type Backend interface {
	// Name returns the backend name (for debugging/logging).
	Name() string

	// Device returns the compute device.
	Device() Device

	// Add performs element-wise addition with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor

	// Sub performs element-wise subtraction with broadcasting.
	Sub(a, b *RawTensor) *RawTensor

	// Mul performs element-wise multiplication with broadcasting.
	Mul(a, b *RawTensor) *RawTensor

	// Div performs element-wise division with broadcasting.
	Div(a, b *RawTensor) *RawTensor

	// SumDim sums along a dimension. With keepDim the reduced dimension is
	// kept with size 1, otherwise it is removed from the shape.
	SumDim(t *RawTensor, dim int, keepDim bool) *RawTensor

	// Reshape returns a tensor with the same data and a new shape.
	// Element counts must match.
	Reshape(t *RawTensor, newShape Shape) *RawTensor

	// Transpose permutes the tensor's dimensions. With no axes given, all
	// dimensions are reversed.
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Cat concatenates tensors along a dimension. All tensors must agree on
	// every other dimension.
	Cat(tensors []*RawTensor, dim int) *RawTensor

	// IndexSelect gathers slices along a dimension, in index order.
	// Repeated indices are allowed.
	IndexSelect(t *RawTensor, dim int, indices []int) *RawTensor
}
