package air

import (
	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/poly"
)

// DeepComposition is D(x), the linear combination that folds every
// out-of-domain claim (H(z), t(z), t(zg), t(zg^2)) into a single low-degree
// test, stored as LDE evaluations and in coefficient form so it can be
// handed directly to FRI.
type DeepComposition struct {
	ldeEvaluations []*field.FieldElement
	coeffPoly      *poly.Polynomial
}

// NewDeepComposition builds D over a's LDE domain from the composition H,
// the out-of-domain claims, and four challenges betas squeezed from the
// transcript after the OOD check.
func NewDeepComposition(a *Arithmetization, c *Composition, claims *OODClaims, betas [4]*field.FieldElement) (*DeepComposition, error) {
	g := a.TraceGenerator()
	zg := claims.Z.Mul(g)
	zg2 := claims.Z.Mul(g.Square())

	ldePoints := a.LDEDomain().Elements()
	hEvals := c.LDEEvaluations()
	tEvals := a.TraceLDE()

	denomZ := make([]*field.FieldElement, len(ldePoints))
	denomZG := make([]*field.FieldElement, len(ldePoints))
	denomZG2 := make([]*field.FieldElement, len(ldePoints))
	for i, x := range ldePoints {
		denomZ[i] = x.Sub(claims.Z)
		denomZG[i] = x.Sub(zg)
		denomZG2[i] = x.Sub(zg2)
	}
	// These batches span the whole LDE domain (O(n*blowup) elements), the
	// data-parallel opportunity Montgomery's trick trades an inversion-per-
	// element for; split across goroutines rather than run serially.
	invZ, err := a.field.ParallelBatchInvert(denomZ)
	if err != nil {
		return nil, errConstraintNotSatisfied("inverting DEEP denominator (x - z): %v", err)
	}
	invZG, err := a.field.ParallelBatchInvert(denomZG)
	if err != nil {
		return nil, errConstraintNotSatisfied("inverting DEEP denominator (x - zg): %v", err)
	}
	invZG2, err := a.field.ParallelBatchInvert(denomZG2)
	if err != nil {
		return nil, errConstraintNotSatisfied("inverting DEEP denominator (x - zg^2): %v", err)
	}

	ldeEvaluations := make([]*field.FieldElement, len(ldePoints))
	for i := range ldePoints {
		term0 := betas[0].Mul(hEvals[i].Sub(claims.HZ)).Mul(invZ[i])
		term1 := betas[1].Mul(tEvals[i].Sub(claims.TZ)).Mul(invZ[i])
		term2 := betas[2].Mul(tEvals[i].Sub(claims.TZG)).Mul(invZG[i])
		term3 := betas[3].Mul(tEvals[i].Sub(claims.TZG2)).Mul(invZG2[i])
		ldeEvaluations[i] = term0.Add(term1).Add(term2).Add(term3)
	}

	coeffPoly, err := poly.InterpolateCosetEvaluations(a.field, ldeEvaluations, a.ldeDomain.Offset, a.ldeDomain.Generator)
	if err != nil {
		return nil, errInvalidTrace("recovering DEEP composition coefficients: %v", err)
	}

	return &DeepComposition{ldeEvaluations: ldeEvaluations, coeffPoly: coeffPoly}, nil
}

// LDEEvaluations returns D evaluated at every point of the arithmetization's
// LDE domain, in domain order; Polynomial returns the same values' low-degree
// coefficient form, ready to feed into fri.Prove.
func (d *DeepComposition) LDEEvaluations() []*field.FieldElement { return d.ldeEvaluations }

// Polynomial returns D in coefficient form.
func (d *DeepComposition) Polynomial() *poly.Polynomial { return d.coeffPoly }

// FinalSpotCheck recomputes D(x0) from the FRI-authenticated openings
// hAtX0, tAtX0 and the trusted out-of-domain claims, and accepts iff it
// matches committedDAtX0, the value FRI actually opened at x0.
func FinalSpotCheck(g *field.FieldElement, claims *OODClaims, betas [4]*field.FieldElement, x0, hAtX0, tAtX0, committedDAtX0 *field.FieldElement) error {
	zg := claims.Z.Mul(g)
	zg2 := claims.Z.Mul(g.Square())

	invZ, err := x0.Sub(claims.Z).Inv()
	if err != nil {
		return errConstraintNotSatisfied("x0 coincides with the out-of-domain point z: %v", err)
	}
	invZG, err := x0.Sub(zg).Inv()
	if err != nil {
		return errConstraintNotSatisfied("x0 coincides with zg: %v", err)
	}
	invZG2, err := x0.Sub(zg2).Inv()
	if err != nil {
		return errConstraintNotSatisfied("x0 coincides with zg^2: %v", err)
	}

	term0 := betas[0].Mul(hAtX0.Sub(claims.HZ)).Mul(invZ)
	term1 := betas[1].Mul(tAtX0.Sub(claims.TZ)).Mul(invZ)
	term2 := betas[2].Mul(tAtX0.Sub(claims.TZG)).Mul(invZG)
	term3 := betas[3].Mul(tAtX0.Sub(claims.TZG2)).Mul(invZG2)
	reconstructed := term0.Add(term1).Add(term2).Add(term3)

	if !reconstructed.Equal(committedDAtX0) {
		return errFinalSpotCheckMismatch(reconstructed.String(), committedDAtX0.String())
	}
	return nil
}
