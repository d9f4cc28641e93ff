package cpu

import "github.com/pinn-ml/pinn/internal/tensor"

// binarySame applies op element-wise over equal-shape operands.
func binarySame[T tensor.DType](dst, a, b []T, op func(T, T) T) {
	for i := range dst {
		dst[i] = op(a[i], b[i])
	}
}

// binaryBroadcast applies op with NumPy-style right-aligned broadcasting.
// Shapes were already validated by BroadcastShapes.
func binaryBroadcast[T tensor.DType](dst, a, b []T, aShape, bShape, outShape tensor.Shape, op func(T, T) T) {
	outStrides := outShape.ComputeStrides()
	aStrides := aShape.ComputeStrides()
	bStrides := bShape.ComputeStrides()
	numElements := outShape.NumElements()

	for i := 0; i < numElements; i++ {
		aIdx := 0
		bIdx := 0
		temp := i
		for d := 0; d < len(outShape); d++ {
			coord := temp / outStrides[d]
			temp %= outStrides[d]

			// Right-aligned dimension mapping; size-1 source dims pin to 0.
			if ad := d - (len(outShape) - len(aShape)); ad >= 0 {
				c := coord
				if aShape[ad] == 1 {
					c = 0
				}
				aIdx += c * aStrides[ad]
			}
			if bd := d - (len(outShape) - len(bShape)); bd >= 0 {
				c := coord
				if bShape[bd] == 1 {
					c = 0
				}
				bIdx += c * bStrides[bd]
			}
		}
		dst[i] = op(a[aIdx], b[bIdx])
	}
}

// sumAlongDim accumulates src into dst, where dst has the same shape as
// srcShape except that dimension dim has size 1.
func sumAlongDim[T tensor.DType](dst, src []T, srcShape tensor.Shape, dim int) {
	srcStrides := srcShape.ComputeStrides()

	outShape := srcShape.Clone()
	outShape[dim] = 1
	outStrides := outShape.ComputeStrides()

	numElements := srcShape.NumElements()
	for i := 0; i < numElements; i++ {
		outIdx := 0
		temp := i
		for d := 0; d < len(srcShape); d++ {
			coord := temp / srcStrides[d]
			temp %= srcStrides[d]
			if d == dim {
				coord = 0
			}
			outIdx += coord * outStrides[d]
		}
		dst[outIdx] += src[i]
	}
}

// transposeKernel permutes src into dst according to axes.
func transposeKernel[T tensor.DType](dst, src []T, srcShape tensor.Shape, axes []int) {
	srcStrides := srcShape.ComputeStrides()

	dstShape := make(tensor.Shape, len(srcShape))
	for i, ax := range axes {
		dstShape[i] = srcShape[ax]
	}
	dstStrides := dstShape.ComputeStrides()

	numElements := srcShape.NumElements()
	for i := 0; i < numElements; i++ {
		srcIdx := 0
		temp := i
		for d := 0; d < len(dstShape); d++ {
			coord := temp / dstStrides[d]
			temp %= dstStrides[d]
			srcIdx += coord * srcStrides[axes[d]]
		}
		dst[i] = src[srcIdx]
	}
}

// gatherAlongDim copies index-selected slices of src into dst.
// dst has src's shape except dimension dim has size len(indices).
func gatherAlongDim[T tensor.DType](dst, src []T, srcShape tensor.Shape, dim int, indices []int) {
	srcStrides := srcShape.ComputeStrides()

	dstShape := srcShape.Clone()
	dstShape[dim] = len(indices)
	dstStrides := dstShape.ComputeStrides()

	numElements := dstShape.NumElements()
	for i := 0; i < numElements; i++ {
		srcIdx := 0
		temp := i
		for d := 0; d < len(dstShape); d++ {
			coord := temp / dstStrides[d]
			temp %= dstStrides[d]
			if d == dim {
				coord = indices[coord]
			}
			srcIdx += coord * srcStrides[d]
		}
		dst[i] = src[srcIdx]
	}
}

// scatterConcat copies src into dst along dim starting at offset, where dst
// is the concatenation target.
func scatterConcat[T tensor.DType](dst, src []T, dstShape, srcShape tensor.Shape, dim, offset int) {
	dstStrides := dstShape.ComputeStrides()
	srcStrides := srcShape.ComputeStrides()

	numElements := srcShape.NumElements()
	for i := 0; i < numElements; i++ {
		dstIdx := 0
		temp := i
		for d := 0; d < len(srcShape); d++ {
			coord := temp / srcStrides[d]
			temp %= srcStrides[d]
			if d == dim {
				coord += offset
			}
			dstIdx += coord * dstStrides[d]
		}
		dst[dstIdx] = src[i]
	}
}
