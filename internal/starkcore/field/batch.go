package field

import (
	"fmt"
	"runtime"
	"sync"
)

// BatchInvert inverts every element of elements using Montgomery's trick:
// one field inversion plus 3*(n-1) multiplications, instead of n inversions.
//
//  1. acc[i] = elements[0] * ... * elements[i]
//  2. accInv = acc[n-1]^-1
//  3. back-substitute: results[i] = accInv * acc[i-1]; accInv *= elements[i]
func (f *Field) BatchInvert(elements []*FieldElement) ([]*FieldElement, error) {
	n := len(elements)
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		inv, err := elements[0].Inv()
		if err != nil {
			return nil, err
		}
		return []*FieldElement{inv}, nil
	}

	for i, e := range elements {
		if e.IsZero() {
			return nil, fmt.Errorf("field: batch invert: zero element at index %d", i)
		}
	}

	acc := make([]*FieldElement, n)
	acc[0] = elements[0]
	for i := 1; i < n; i++ {
		acc[i] = acc[i-1].Mul(elements[i])
	}

	accInv, err := acc[n-1].Inv()
	if err != nil {
		return nil, fmt.Errorf("field: batch invert: %w", err)
	}

	results := make([]*FieldElement, n)
	for i := n - 1; i > 0; i-- {
		results[i] = accInv.Mul(acc[i-1])
		accInv = accInv.Mul(elements[i])
	}
	results[0] = accInv

	return results, nil
}

// ParallelBatchInvert splits elements into chunks processed on separate
// goroutines, each running BatchInvert, then reassembles the result in order.
// Intended for the large element counts the LDE-domain quotient computations
// produce; semantics are identical to BatchInvert regardless of chunk count.
func (f *Field) ParallelBatchInvert(elements []*FieldElement) ([]*FieldElement, error) {
	n := len(elements)
	if n == 0 {
		return nil, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 2 {
		return f.BatchInvert(elements)
	}

	chunkSize := (n + workers - 1) / workers
	results := make([]*FieldElement, n)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			chunk, err := f.BatchInvert(elements[start:end])
			if err != nil {
				errs[w] = err
				return
			}
			copy(results[start:end], chunk)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
