package air

import "github.com/vybium/vybium-stark-fri/internal/starkcore/field"

// GenerateFibonacciTrace produces the length-n execution trace T[0]=T[1]=1,
// T[i]=T[i-1]+T[i-2], the single built-in instantiation this package exercises
// end to end. n must be at least 2.
func GenerateFibonacciTrace(f *field.Field, n int) ([]*field.FieldElement, error) {
	if n < 2 {
		return nil, errInvalidTrace("fibonacci trace length must be at least 2, got %d", n)
	}
	trace := make([]*field.FieldElement, n)
	trace[0] = f.One()
	trace[1] = f.One()
	for i := 2; i < n; i++ {
		trace[i] = trace[i-1].Add(trace[i-2])
	}
	return trace, nil
}
