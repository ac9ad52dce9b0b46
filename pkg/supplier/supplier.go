// Package supplier provides the composable value-generator primitives the
// loader assembles into per-field generator trees. Every supplier exposes a
// single capability: the next value for a given iteration index.
package supplier

// ValueSupplier is the capability every value generator implements.
// Implementations may carry internal state, but absent configured randomness
// the same iteration index yields the same value from a freshly constructed
// supplier of the same configuration.
type ValueSupplier interface {
	// Next returns the value for the given iteration index
	Next(iteration int) interface{}
}

// Func adapts a plain function to the ValueSupplier interface
type Func func(iteration int) interface{}

// Next implements ValueSupplier
func (f Func) Next(iteration int) interface{} {
	return f(iteration)
}
