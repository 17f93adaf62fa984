package poly

import (
	"fmt"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

// InterpolateCosetEvaluations recovers the coefficients of a polynomial P
// from its evaluations over a coset {offset * generator^i}. It works by
// observing that Q(X) = P(offset*X) evaluates to the same values over the
// plain subgroup {generator^i}, recovering Q's coefficients with IFFT, then
// unscaling: P_i = Q_i * offset^-i.
func InterpolateCosetEvaluations(f *field.Field, evaluations []*field.FieldElement, offset, generator *field.FieldElement) (*Polynomial, error) {
	qCoeffs, err := IFFT(f, evaluations, generator)
	if err != nil {
		return nil, fmt.Errorf("poly: coset interpolation: %w", err)
	}
	offsetInv, err := offset.Inv()
	if err != nil {
		return nil, fmt.Errorf("poly: coset interpolation: %w", err)
	}
	scaled := make([]*field.FieldElement, len(qCoeffs))
	power := f.One()
	for i, c := range qCoeffs {
		scaled[i] = c.Mul(power)
		power = power.Mul(offsetInv)
	}
	return New(f, scaled)
}
