// Package label implements the labeled tensor: a 2-D tensor whose columns
// carry unique string labels.
//
// Rows are a batch of evaluation points; columns are named quantities
// (coordinates of a domain, or components of a field). The label list is an
// explicit ordered mapping from label to column index, validated at
// construction; extraction by label is an index gather through the backend,
// so it is recorded on the gradient tape and derivatives flow through it.
package label

import (
	"fmt"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// Tensor is a 2-D tensor with one unique string label per column.
//
// A Tensor never shares its label list with another Tensor: Relabel,
// Extract and Append return new containers and leave the receiver's labels
// untouched.
type Tensor[T tensor.DType, B tensor.Backend] struct {
	data   *tensor.Tensor[T, B]
	labels []string
	index  map[string]int
}

// New creates a labeled tensor over data.
// data must be 2-D with exactly one label per column; labels must be unique.
func New[T tensor.DType, B tensor.Backend](data *tensor.Tensor[T, B], labels []string) (*Tensor[T, B], error) {
	if data == nil {
		return nil, fmt.Errorf("label: nil data tensor")
	}
	shape := data.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("label: data must be 2-D, got shape %v", shape)
	}
	if len(labels) != shape[1] {
		return nil, fmt.Errorf("label: %d labels for %d columns", len(labels), shape[1])
	}

	index := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := index[l]; dup {
			return nil, fmt.Errorf("label: duplicate label %q", l)
		}
		index[l] = i
	}

	return &Tensor[T, B]{
		data:   data,
		labels: append([]string(nil), labels...),
		index:  index,
	}, nil
}

// FromSlice creates a labeled tensor from row-major data with the given
// number of rows and one column per label.
func FromSlice[T tensor.DType, B tensor.Backend](data []T, rows int, labels []string, b B) (*Tensor[T, B], error) {
	t, err := tensor.FromSlice(data, tensor.Shape{rows, len(labels)}, b)
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	return New(t, labels)
}

// Labels returns a copy of the ordered label list.
func (t *Tensor[T, B]) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Has reports whether a label is present.
func (t *Tensor[T, B]) Has(label string) bool {
	_, ok := t.index[label]
	return ok
}

// Rows returns the number of rows (evaluation points).
func (t *Tensor[T, B]) Rows() int {
	return t.data.Shape()[0]
}

// Cols returns the number of columns (labeled quantities).
func (t *Tensor[T, B]) Cols() int {
	return t.data.Shape()[1]
}

// Data returns the underlying tensor.
func (t *Tensor[T, B]) Data() *tensor.Tensor[T, B] {
	return t.data
}

// Raw returns the underlying raw tensor. Used by the autodiff engine,
// which keys the computational graph by raw tensor identity.
func (t *Tensor[T, B]) Raw() *tensor.RawTensor {
	return t.data.Raw()
}

// Relabel returns a new labeled tensor over the same data with new labels.
// The receiver is not modified.
func (t *Tensor[T, B]) Relabel(labels []string) (*Tensor[T, B], error) {
	return New(t.data, labels)
}

// Extract returns a new labeled tensor containing only the requested
// columns, in requested order. The column gather goes through the backend,
// so it is recorded for differentiation.
func (t *Tensor[T, B]) Extract(labels ...string) (*Tensor[T, B], error) {
	indices := make([]int, len(labels))
	for i, l := range labels {
		idx, ok := t.index[l]
		if !ok {
			return nil, fmt.Errorf("label: label %q not present in tensor", l)
		}
		indices[i] = idx
	}

	return New(t.data.IndexSelect(1, indices), labels)
}

// Append returns a new labeled tensor with other's columns concatenated
// after the receiver's. Row counts must match and the combined labels must
// stay unique.
func (t *Tensor[T, B]) Append(other *Tensor[T, B]) (*Tensor[T, B], error) {
	if other == nil {
		return nil, fmt.Errorf("label: nil append argument")
	}
	if t.Rows() != other.Rows() {
		return nil, fmt.Errorf("label: row count mismatch: %d vs %d", t.Rows(), other.Rows())
	}

	combined := tensor.Cat([]*tensor.Tensor[T, B]{t.data, other.data}, 1)
	return New(combined, append(t.Labels(), other.labels...))
}
