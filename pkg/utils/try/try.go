// Package try shortens error checks in tests and one-off setup code.
//
//	cl := try.To(profiles.Load(path)).OrFatal(t)
package try

// Fataler stops the current flow with a message, as *testing.T or *log.Logger do.
type Fataler interface {
	Fatal(...any)
}

// Result is a value paired with the error returned together with it.
//
// The value is meaningful only when the error is nil.
type Result[T any] struct {
	value T
	err   error
}

// To pairs a value with its error.
func To[T any](value T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}
	return Result[T]{value: value}
}

// Get unpacks the pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Err returns the error of the pair, or nil.
func (r Result[T]) Err() error {
	return r.err
}

// OrFatal returns the value, or calls ftl.Fatal with the error.
//
// When ftl has a Helper method (like *testing.T), it is called before Fatal.
func (r Result[T]) OrFatal(ftl Fataler) T {
	if r.err == nil {
		return r.value
	}
	if h, ok := ftl.(interface{ Helper() }); ok {
		h.Helper()
	}
	ftl.Fatal(r.err)
	return *new(T)
}

// OrDefault returns the value, or d when the pair has an error.
func (r Result[T]) OrDefault(d T) T {
	if r.err != nil {
		return d
	}
	return r.value
}
