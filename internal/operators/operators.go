// Package operators implements vectorized differential operators over
// labeled tensors: gradient, divergence, Laplacian (nabla) and advection.
//
// Each operator consumes the labeled output of a function approximator and
// the labeled input it was evaluated at, and produces a new labeled tensor
// whose column labels encode which derivative was taken:
//
//	first derivative of component c w.r.t. coordinate x:  dcdx
//	divergence over pairs (u,x), (v,y):                   dudx+dvdy
//	Laplacian of scalar component c:                      ddc
//	per-pair second derivative of a vector field:         dd[u]dd[x]
//
// Grad is the primitive; Div and Nabla are composed from repeated Grad
// calls, Advection contracts a Grad result against a velocity field
// extracted from the output. Output and input must be graph-connected: the
// output computed from the input with operations recorded on the backend's
// gradient tape. Every engine call requests graph retention so that
// second-order operators can re-differentiate gradients; dropping the tape
// between training steps is the caller's responsibility.
package operators

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/label"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Method selects the algorithm used by Nabla.
type Method string

// Recognized Nabla methods.
const (
	// MethodStd computes the Laplacian directly as a gradient of a gradient.
	MethodStd Method = "std"

	// MethodDivGrad is the gradient-then-divergence composition. It is a
	// recognized configuration but currently unsupported: selecting it
	// always fails with ErrNotImplemented.
	MethodDivGrad Method = "divgrad"
)

// Grad computes the first partial derivative of every requested output
// component with respect to every requested input coordinate.
//
// components defaults to all of output's labels, d to all of input's
// labels (nil means all). The result has one column per (component,
// coordinate) pair, component-major, labeled d{component}d{coordinate}.
//
// Errors: ErrType for nil arguments; ErrValue for an empty or duplicated
// component/coordinate selection; ErrRuntime when a derivative coordinate is
// missing from input's labels or when component selection is attempted on a
// scalar output; ErrNotImplemented for a zero-column output.
func Grad[T tensor.DType, B autodiff.BackwardCapable](
	output, input *label.Tensor[T, B],
	components, d []string,
) (*label.Tensor[T, B], error) {
	if output == nil || input == nil {
		return nil, fmt.Errorf("%w: grad operates on labeled tensors", ErrType)
	}

	if d == nil {
		d = input.Labels()
	}
	if components == nil {
		components = output.Labels()
	}

	switch {
	case output.Cols() == 0:
		return nil, fmt.Errorf("%w: output tensor has no columns", ErrNotImplemented)

	case len(components) == 0 || len(d) == 0:
		return nil, fmt.Errorf("%w: empty component or coordinate selection", ErrValue)

	case output.Cols() == 1: // scalar field
		if !slices.Equal(components, output.Labels()) {
			return nil, fmt.Errorf("%w: cannot select components of a scalar field", ErrRuntime)
		}
		return gradScalar(output, input, d)

	default: // vector field
		var gradients *label.Tensor[T, B]
		for i, c := range components {
			cOutput, err := output.Extract(c)
			if err != nil {
				return nil, fmt.Errorf("%w: component %q missing from output tensor", ErrRuntime, c)
			}
			g, err := gradScalar(cOutput, input, d)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				gradients = g
			} else {
				gradients, err = gradients.Append(g)
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrValue, err)
				}
			}
		}
		return gradients, nil
	}
}

// gradScalar computes the gradient of a single-component field with respect
// to the coordinates d. This is the primitive every operator reduces to:
// one engine call with all-ones weighting and graph retention, a positional
// relabel of the raw derivative with input's labels, extraction of the
// requested coordinate subset, and a rename to the d{component}d{coordinate}
// scheme. The intermediate relabel never touches the caller's tensors.
func gradScalar[T tensor.DType, B autodiff.BackwardCapable](
	output, input *label.Tensor[T, B],
	d []string,
) (*label.Tensor[T, B], error) {
	outLabels := output.Labels()
	if len(outLabels) != 1 {
		return nil, fmt.Errorf("%w: only scalar fields can be differentiated", ErrRuntime)
	}
	for _, di := range d {
		if !input.Has(di) {
			return nil, fmt.Errorf("%w: derivative labels missing from input tensor", ErrRuntime)
		}
	}

	fieldName := outLabels[0]
	backend := output.Data().Backend()

	weights := tensor.Ones[T](output.Data().Shape(), backend)
	raw, err := autodiff.Differentiate(output.Data(), input.Data(), weights, true)
	if err != nil {
		return nil, fmt.Errorf("grad: %w", err)
	}

	gradients, err := label.New(raw, input.Labels())
	if err != nil {
		return nil, fmt.Errorf("grad: %w", err)
	}
	// A failed re-extraction after the Has checks means d repeats a
	// coordinate.
	gradients, err = gradients.Extract(d...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValue, err)
	}

	names := make([]string, len(d))
	for i, di := range d {
		names[i] = "d" + fieldName + "d" + di
	}
	renamed, err := gradients.Relabel(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValue, err)
	}
	return renamed, nil
}

// Div computes the divergence of a vector field: the sum over i of
// d(components[i])/d(d[i]). components and d must pair one-to-one with
// length at least two.
//
// The result is a single column labeled with the +-joined per-term labels,
// e.g. dudx+dvdy, documenting which terms were summed.
//
// Errors: ErrType for nil arguments; ErrValue for a scalar/degenerate field
// or a pairing length mismatch.
func Div[T tensor.DType, B autodiff.BackwardCapable](
	output, input *label.Tensor[T, B],
	components, d []string,
) (*label.Tensor[T, B], error) {
	if output == nil || input == nil {
		return nil, fmt.Errorf("%w: div operates on labeled tensors", ErrType)
	}

	if d == nil {
		d = input.Labels()
	}
	if components == nil {
		components = output.Labels()
	}

	if output.Cols() < 2 || len(components) < 2 {
		return nil, fmt.Errorf("%w: div supported only for vector fields", ErrValue)
	}
	if len(components) != len(d) {
		return nil, fmt.Errorf("%w: components and derivative coordinates must pair one-to-one", ErrValue)
	}

	gradOutput, err := Grad(output, input, components, d)
	if err != nil {
		return nil, err
	}

	backend := output.Data().Backend()
	sum := tensor.Zeros[T](tensor.Shape{input.Rows(), 1}, backend)

	terms := make([]string, len(components))
	for i := range components {
		term := "d" + components[i] + "d" + d[i]
		col, err := gradOutput.Extract(term)
		if err != nil {
			return nil, fmt.Errorf("div: %w", err)
		}
		sum = sum.Add(col.Data())
		terms[i] = term
	}

	return label.New(sum, []string{strings.Join(terms, "+")})
}

// Nabla computes the Laplacian-like second derivative of a field.
//
// Scalar case (one component): the sum of unmixed second derivatives over
// the coordinates d, a single column labeled dd{component}. Vector case:
// components and d pair one-to-one and each pair yields one column of
// d²(component)/d(coordinate)², labeled dd[component]dd[coordinate].
//
// Errors: ErrType for nil arguments; ErrValue for a pairing length mismatch
// (unless scalar) or an unknown method; ErrNotImplemented for MethodDivGrad,
// which is a deliberate stub.
func Nabla[T tensor.DType, B autodiff.BackwardCapable](
	output, input *label.Tensor[T, B],
	components, d []string,
	method Method,
) (*label.Tensor[T, B], error) {
	if output == nil || input == nil {
		return nil, fmt.Errorf("%w: nabla operates on labeled tensors", ErrType)
	}

	if d == nil {
		d = input.Labels()
	}
	if components == nil {
		components = output.Labels()
	}

	if len(components) != len(d) && len(components) != 1 {
		return nil, fmt.Errorf("%w: components and derivative coordinates must pair one-to-one for vector fields", ErrValue)
	}

	switch method {
	case MethodDivGrad:
		return nil, fmt.Errorf("%w: divgrad not implemented as method", ErrNotImplemented)
	case MethodStd:
		// handled below
	default:
		return nil, fmt.Errorf("%w: unknown nabla method %q", ErrValue, method)
	}

	if len(components) == 1 {
		gradOutput, err := Grad(output, input, components, d)
		if err != nil {
			return nil, err
		}
		backend := output.Data().Backend()

		// Σ_i d²f/d(x_i)²: differentiate each gradient column again and
		// keep only the diagonal term (the derivative with respect to the
		// matching coordinate).
		sum := tensor.Zeros[T](tensor.Shape{output.Rows(), 1}, backend)
		for i, lbl := range gradOutput.Labels() {
			gg, err := Grad(gradOutput, input, []string{lbl}, d)
			if err != nil {
				return nil, err
			}
			sum = sum.Add(gg.Data().IndexSelect(1, []int{i}))
		}

		return label.New(sum, []string{"dd" + components[0]})
	}

	// Vector case: one second derivative per (component, coordinate) pair.
	cols := make([]*tensor.Tensor[T, B], len(components))
	names := make([]string, len(components))
	for idx := range components {
		ci, di := components[idx], d[idx]

		gi, err := Grad(output, input, []string{ci}, []string{di})
		if err != nil {
			return nil, err
		}
		gii, err := Grad(gi, input, nil, []string{di})
		if err != nil {
			return nil, err
		}

		cols[idx] = gii.Data()
		names[idx] = fmt.Sprintf("dd%vdd%v", []string{ci}, []string{di})
	}

	result, err := label.New(tensor.Cat(cols, 1), names)
	if err != nil {
		// Repeated (component, coordinate) pairs produce colliding labels.
		return nil, fmt.Errorf("%w: %v", ErrValue, err)
	}
	return result, nil
}

// Advection computes the convective term (velocity · ∇) field:
// for each component, Σ_d velocity_d * d(component)/d(coordinate_d).
//
// velocityField names the column(s) of output holding the velocity values.
// Its extracted shape must broadcast against the (component, point,
// coordinate) gradient grid; there is no explicit validation, a malformed
// shape surfaces as a shape-mismatch panic from the numeric layer.
//
// The result has one row per input point and one column per component,
// labeled with the component names.
func Advection[T tensor.DType, B autodiff.BackwardCapable](
	output, input *label.Tensor[T, B],
	velocityField, components, d []string,
) (*label.Tensor[T, B], error) {
	if output == nil || input == nil {
		return nil, fmt.Errorf("%w: advection operates on labeled tensors", ErrType)
	}

	if d == nil {
		d = input.Labels()
	}
	if components == nil {
		components = output.Labels()
	}

	gradients, err := Grad(output, input, components, d)
	if err != nil {
		return nil, err
	}

	velocity, err := output.Extract(velocityField...)
	if err != nil {
		return nil, fmt.Errorf("%w: velocity field missing from output tensor", ErrRuntime)
	}

	// Flat (point, component*coordinate) layout -> (component, point,
	// coordinate) grid, contracted against the velocity columns.
	rows := input.Rows()
	grid := gradients.Data().
		Reshape(tensor.Shape{rows, len(components), len(d)}).
		Transpose(1, 0, 2)

	contracted := grid.Mul(velocity.Data()).SumDim(2, false).Transpose()

	return label.New(contracted, components)
}
