package air

import (
	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/poly"
)

// Composition is the polynomial H(x) = alpha1*B(x) + alpha2*T(x), stored
// both as LDE evaluations (for committing/folding) and in coefficient form
// (for evaluating at arbitrary out-of-domain points).
type Composition struct {
	field          *field.Field
	alpha1, alpha2 *field.FieldElement
	ldeEvaluations []*field.FieldElement
	coeffPoly      *poly.Polynomial
}

// NewComposition builds H from an arithmetization's boundary and transition
// quotients, challenges alpha1/alpha2 squeezed from the transcript.
func NewComposition(a *Arithmetization, boundary []BoundaryConstraint, transition TransitionConstraint, alpha1, alpha2 *field.FieldElement) (*Composition, error) {
	bQuot, err := a.BoundaryQuotient(boundary)
	if err != nil {
		return nil, err
	}
	tQuot, err := a.TransitionQuotient(transition)
	if err != nil {
		return nil, err
	}

	ldeEvaluations := make([]*field.FieldElement, len(bQuot))
	for i := range ldeEvaluations {
		ldeEvaluations[i] = alpha1.Mul(bQuot[i]).Add(alpha2.Mul(tQuot[i]))
	}

	coeffPoly, err := poly.InterpolateCosetEvaluations(a.field, ldeEvaluations, a.ldeDomain.Offset, a.ldeDomain.Generator)
	if err != nil {
		return nil, errInvalidTrace("recovering composition coefficients: %v", err)
	}

	return &Composition{
		field:          a.field,
		alpha1:         alpha1,
		alpha2:         alpha2,
		ldeEvaluations: ldeEvaluations,
		coeffPoly:      coeffPoly,
	}, nil
}

// LDEEvaluations returns H evaluated at every point of the arithmetization's
// LDE domain, in domain order.
func (c *Composition) LDEEvaluations() []*field.FieldElement { return c.ldeEvaluations }

// Eval evaluates H at an arbitrary point via its coefficient form, used for
// the out-of-domain consistency check.
func (c *Composition) Eval(z *field.FieldElement) *field.FieldElement {
	return c.coeffPoly.Eval(z)
}

// OODClaims is the set of evaluations a prover sends to support the
// out-of-domain consistency check: the trace at z, zg, zg^2, and H(z).
type OODClaims struct {
	Z, TZ, TZG, TZG2, HZ *field.FieldElement
}

// BuildOODClaims evaluates the trace and the composition polynomial at z,
// zg, and zg^2, where g is the trace subgroup's generator.
func BuildOODClaims(a *Arithmetization, c *Composition, z *field.FieldElement) *OODClaims {
	g := a.TraceGenerator()
	return &OODClaims{
		Z:    z,
		TZ:   a.EvalTraceAt(z),
		TZG:  a.EvalTraceAt(z.Mul(g)),
		TZG2: a.EvalTraceAt(z.Mul(g.Square())),
		HZ:   c.Eval(z),
	}
}

// VerifyOODConsistency recomputes H(z) from the claimed trace evaluations
// and the public constraint definitions, and accepts iff it matches claims.HZ.
func VerifyOODConsistency(f *field.Field, g *field.FieldElement, n int, boundary []BoundaryConstraint, transition TransitionConstraint, alpha1, alpha2 *field.FieldElement, claims *OODClaims) error {
	bz, err := BoundaryValueAt(f, g, boundary, claims.Z, claims.TZ)
	if err != nil {
		return err
	}
	tz, err := TransitionValueAt(f, g, n, transition, claims.Z, []*field.FieldElement{claims.TZ, claims.TZG, claims.TZG2})
	if err != nil {
		return err
	}

	reconstructed := alpha1.Mul(bz).Add(alpha2.Mul(tz))
	if !reconstructed.Equal(claims.HZ) {
		return errOutOfDomainMismatch(reconstructed.String(), claims.HZ.String())
	}
	return nil
}
