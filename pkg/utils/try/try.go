package try

// something have method `Fatal`.
//
// For example in standard libraries: *testing.T, log.Logger
type Fataler interface {
	Fatal(...any)
}

// Pair of (T, error) returned from a function call.
//
// When error is nil, the Result is "ok", and T value is handled as valid.
type Result[T any] struct {
	value T
	err   error
}

// wrap return values of a function call.
//
//	f := try.To(os.Open(name)).OrFatal(t)
func To[T any](value T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}
	return Result[T]{value: value}
}

// get value & error pair
//
// If the Result is ok, return (value, nil).
// Otherwise, return (zero-value, error).
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// When Result is ok, it just returns the T value.
//
// Otherwise, it calls ftl.Fatal(err) .
// If ftl has "Helper()" method (like *testing.T), also that is called before `Fatal`.
func (r Result[T]) OrFatal(ftl Fataler) T {
	if r.err == nil {
		return r.value
	}
	if hlp, ok := ftl.(interface{ Helper() }); ok {
		hlp.Helper()
	}
	ftl.Fatal(r.err)
	return *new(T)
}

func (r Result[T]) OrDefault(d T) T {
	if r.err != nil {
		return d
	}
	return r.value
}
