package fri

import (
	"fmt"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/domain"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

// FoldEvaluations folds evaluations of a polynomial f over dom into
// evaluations of the half-degree folded polynomial over the squared domain,
// using the challenge beta.
//
// For each i in [0, N/2): writing x = dom[i], y = evaluations[i],
// y' = evaluations[i+N/2] (the evaluation at -x):
//
//	even = (y + y') / 2
//	odd  = (y - y') / (2x)
//	next[i] = even + beta*odd
//
// The (2x)^-1 terms for the whole layer are inverted in a single batched
// pass (Montgomery's trick) rather than one at a time.
func FoldEvaluations(f *field.Field, evaluations []*field.FieldElement, dom *domain.Domain, beta *field.FieldElement) ([]*field.FieldElement, *domain.Domain, error) {
	n := len(evaluations)
	if n < 2 || n%2 != 0 {
		return nil, nil, fmt.Errorf("fri: fold requires an even length >= 2, got %d", n)
	}
	if dom.Length != n {
		return nil, nil, fmt.Errorf("fri: domain length %d does not match evaluation count %d", dom.Length, n)
	}

	half := n / 2
	two := f.FromInt64(2)

	denominators := make([]*field.FieldElement, half)
	for i := 0; i < half; i++ {
		x := dom.At(i)
		denominators[i] = two.Mul(x)
	}
	denomInv, err := f.BatchInvert(denominators)
	if err != nil {
		return nil, nil, fmt.Errorf("fri: fold: %w", err)
	}
	twoInv, err := two.Inv()
	if err != nil {
		return nil, nil, fmt.Errorf("fri: fold: %w", err)
	}

	next := make([]*field.FieldElement, half)
	for i := 0; i < half; i++ {
		y := evaluations[i]
		ySym := evaluations[i+half]

		even := y.Add(ySym).Mul(twoInv)
		odd := y.Sub(ySym).Mul(denomInv[i])
		next[i] = even.Add(beta.Mul(odd))
	}

	nextDomain, err := dom.Halve()
	if err != nil {
		return nil, nil, fmt.Errorf("fri: fold: %w", err)
	}

	return next, nextDomain, nil
}
