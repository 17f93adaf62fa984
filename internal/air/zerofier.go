package air

import "github.com/vybium/vybium-stark-fri/internal/starkcore/field"

// BoundaryValueAt evaluates B(z) = (tAtZ - I(z)) / Z_B(z) at a single point,
// the pointwise counterpart of Arithmetization.BoundaryQuotient used to
// recompute an out-of-domain claim rather than a whole LDE vector.
func BoundaryValueAt(f *field.Field, g *field.FieldElement, constraints []BoundaryConstraint, z, tAtZ *field.FieldElement) (*field.FieldElement, error) {
	if len(constraints) == 0 {
		return nil, errInvalidTrace("boundary value requires at least one constraint")
	}

	points := make([]*field.FieldElement, len(constraints))
	values := make([]*field.FieldElement, len(constraints))
	for i, c := range constraints {
		points[i] = g.ExpInt(c.Point)
		values[i] = c.Value
	}

	interpolantAtZ, err := lagrangeValueAt(f, points, values, z)
	if err != nil {
		return nil, errInvalidTrace("evaluating boundary interpolant: %v", err)
	}

	zerofier := f.One()
	for _, p := range points {
		zerofier = zerofier.Mul(z.Sub(p))
	}
	if zerofier.IsZero() {
		return nil, errConstraintNotSatisfied("boundary zerofier vanishes at the out-of-domain point")
	}
	zerofierInv, err := zerofier.Inv()
	if err != nil {
		return nil, errConstraintNotSatisfied("inverting boundary zerofier at z: %v", err)
	}

	return tAtZ.Sub(interpolantAtZ).Mul(zerofierInv), nil
}

// TransitionValueAt evaluates T(z) = N(z) / Z_T(z) at a single point from a
// window of shifted trace evaluations [t(z), t(gz), t(g^2 z), ...].
func TransitionValueAt(f *field.Field, g *field.FieldElement, n int, constraint TransitionConstraint, z *field.FieldElement, window []*field.FieldElement) (*field.FieldElement, error) {
	if len(window) != constraint.Arity {
		return nil, errInvalidTrace("transition window length %d does not match constraint arity %d", len(window), constraint.Arity)
	}

	numerator := constraint.Eval(window)

	gLast1 := g.ExpInt(n - 2)
	gLast2 := g.ExpInt(n - 1)
	one := f.One()

	vanishing := z.ExpInt(n).Sub(one)
	if vanishing.IsZero() {
		return nil, errConstraintNotSatisfied("transition vanishing polynomial is zero at the out-of-domain point")
	}
	vanishInv, err := vanishing.Inv()
	if err != nil {
		return nil, errConstraintNotSatisfied("inverting transition vanishing polynomial at z: %v", err)
	}

	exemptionFactor := z.Sub(gLast1).Mul(z.Sub(gLast2))
	return numerator.Mul(exemptionFactor).Mul(vanishInv), nil
}

// lagrangeValueAt evaluates the Lagrange interpolant through (points[i],
// values[i]) at z without building the polynomial's coefficient form.
func lagrangeValueAt(f *field.Field, points, values []*field.FieldElement, z *field.FieldElement) (*field.FieldElement, error) {
	result := f.Zero()
	for i := range points {
		numerator := f.One()
		denominator := f.One()
		for j := range points {
			if i == j {
				continue
			}
			numerator = numerator.Mul(z.Sub(points[j]))
			denominator = denominator.Mul(points[i].Sub(points[j]))
		}
		denomInv, err := denominator.Inv()
		if err != nil {
			return nil, err
		}
		term := values[i].Mul(numerator).Mul(denomInv)
		result = result.Add(term)
	}
	return result, nil
}
