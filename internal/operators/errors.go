package operators

import "errors"

// Sentinel error kinds for the operator layer. Every failure returned by
// Grad, Div, Nabla and Advection wraps exactly one of these; callers match
// with errors.Is. Detection sites add context via fmt.Errorf("%w: ...").
var (
	// ErrType is returned for a wrong argument type, e.g. a nil labeled
	// tensor where one is required.
	ErrType = errors.New("operators: wrong argument type")

	// ErrValue is returned for malformed operator arguments, e.g. a
	// divergence over fewer than two components or a components/coordinates
	// pairing of unequal length.
	ErrValue = errors.New("operators: invalid argument value")

	// ErrRuntime is returned when a semantic precondition is violated
	// mid-computation, e.g. a requested derivative coordinate absent from
	// the input tensor's labels.
	ErrRuntime = errors.New("operators: precondition violated")

	// ErrNotImplemented marks a recognized but unsupported configuration,
	// e.g. the divgrad nabla method or a zero-column output field.
	ErrNotImplemented = errors.New("operators: not implemented")
)
