// Package air arithmetizes a single-column execution trace into boundary and
// transition constraint quotients, a composition polynomial with an
// out-of-domain consistency check, and a DEEP composition polynomial with a
// final spot check, all evaluated over a coset low-degree-extension domain
// ready to be handed to FRI.
package air

import (
	"github.com/vybium/vybium-stark-fri/internal/starkcore/domain"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/poly"
)

// BoundaryConstraint pins the trace value at a fixed point in the trace
// domain: t(g^Point) must equal Value.
type BoundaryConstraint struct {
	Point int
	Value *field.FieldElement
}

// TransitionConstraint evaluates a relation over a window of consecutive
// shifted trace evaluations [t(x), t(g*x), t(g^2*x), ...]. Arity fixes the
// window length; Eval must return zero exactly where the relation holds.
type TransitionConstraint struct {
	Arity int
	Eval  func(window []*field.FieldElement) *field.FieldElement
}

// FibonacciTransition is the one built-in transition relation this package
// exercises: t(g^2*x) - t(g*x) - t(x) = 0.
var FibonacciTransition = TransitionConstraint{
	Arity: 3,
	Eval: func(window []*field.FieldElement) *field.FieldElement {
		return window[2].Sub(window[1]).Sub(window[0])
	},
}

// Arithmetization holds the trace polynomial and its evaluations over a
// coset LDE domain disjoint from the trace subgroup.
type Arithmetization struct {
	field       *field.Field
	traceLength int
	traceDomain *domain.Domain
	ldeDomain   *domain.Domain
	tracePoly   *poly.Polynomial
	traceLDE    []*field.FieldElement
}

// New builds the trace polynomial by interpolating trace over a subgroup of
// size len(trace), then evaluates it over a coset LDE domain of size
// len(trace)*blowup.
func New(f *field.Field, trace []*field.FieldElement, blowup int) (*Arithmetization, error) {
	n := len(trace)
	traceDomain, err := domain.New(f, n)
	if err != nil {
		return nil, errInvalidTrace("building trace domain: %v", err)
	}

	tracePoly, err := poly.InterpolateEvaluations(f, traceDomain.Elements(), trace)
	if err != nil {
		return nil, errInvalidTrace("interpolating trace polynomial: %v", err)
	}

	offset, err := domain.CosetOffset(f, n)
	if err != nil {
		return nil, errInvalidTrace("finding LDE coset offset: %v", err)
	}
	ldeSubgroup, err := domain.New(f, n*blowup)
	if err != nil {
		return nil, errInvalidTrace("building LDE domain: %v", err)
	}
	ldeDomain := ldeSubgroup.WithOffset(offset)

	traceLDE := tracePoly.EvalBatch(ldeDomain.Elements())

	return &Arithmetization{
		field:       f,
		traceLength: n,
		traceDomain: traceDomain,
		ldeDomain:   ldeDomain,
		tracePoly:   tracePoly,
		traceLDE:    traceLDE,
	}, nil
}

// LDEDomain returns the coset domain L the constraint quotients are
// evaluated over.
func (a *Arithmetization) LDEDomain() *domain.Domain { return a.ldeDomain }

// TraceLDE returns t evaluated at every point of the LDE domain.
func (a *Arithmetization) TraceLDE() []*field.FieldElement { return a.traceLDE }

// TraceLength returns n, the trace subgroup's order.
func (a *Arithmetization) TraceLength() int { return a.traceLength }

// EvalTraceAt evaluates the trace polynomial at an arbitrary point, used for
// out-of-domain evaluations (z, zg, zg^2).
func (a *Arithmetization) EvalTraceAt(x *field.FieldElement) *field.FieldElement {
	return a.tracePoly.Eval(x)
}

// TraceGenerator returns g, the generator of the trace subgroup.
func (a *Arithmetization) TraceGenerator() *field.FieldElement { return a.traceDomain.Generator }

// BoundaryQuotient computes B(x) = (t(x) - I(x)) / Z_B(x) over the LDE
// domain, where I interpolates the boundary constraints and
// Z_B(x) = prod(x - g^Point).
func (a *Arithmetization) BoundaryQuotient(constraints []BoundaryConstraint) ([]*field.FieldElement, error) {
	if len(constraints) == 0 {
		return nil, errInvalidTrace("boundary quotient requires at least one constraint")
	}

	points := make([]*field.FieldElement, len(constraints))
	values := make([]*field.FieldElement, len(constraints))
	for i, c := range constraints {
		points[i] = a.traceDomain.Generator.ExpInt(c.Point)
		values[i] = c.Value
	}
	interpolant, err := poly.InterpolateEvaluations(a.field, points, values)
	if err != nil {
		return nil, errInvalidTrace("interpolating boundary constraints: %v", err)
	}

	ldePoints := a.ldeDomain.Elements()
	denominators := make([]*field.FieldElement, len(ldePoints))
	for i, x := range ldePoints {
		d := a.field.One()
		for _, p := range points {
			d = d.Mul(x.Sub(p))
		}
		denominators[i] = d
	}
	denomInv, err := a.field.BatchInvert(denominators)
	if err != nil {
		return nil, errConstraintNotSatisfied("inverting boundary zerofier: %v", err)
	}

	iAtLDE := interpolant.EvalBatch(ldePoints)
	quotient := make([]*field.FieldElement, len(ldePoints))
	for i := range ldePoints {
		numerator := a.traceLDE[i].Sub(iAtLDE[i])
		quotient[i] = numerator.Mul(denomInv[i])
	}
	return quotient, nil
}

// TransitionQuotient computes T(x) = N(x) / Z_T(x) over the LDE domain,
// where N is the constraint applied to the shifted trace window and
// Z_T(x) = (x^n - 1) / ((x - g^(n-2))(x - g^(n-1))).
func (a *Arithmetization) TransitionQuotient(constraint TransitionConstraint) ([]*field.FieldElement, error) {
	ldePoints := a.ldeDomain.Elements()
	g := a.traceDomain.Generator
	n := a.traceLength

	windows := make([][]*field.FieldElement, constraint.Arity)
	shift := a.field.One()
	for k := 0; k < constraint.Arity; k++ {
		shifted := make([]*field.FieldElement, len(ldePoints))
		for i, x := range ldePoints {
			shifted[i] = shift.Mul(x)
		}
		windows[k] = a.tracePoly.EvalBatch(shifted)
		shift = shift.Mul(g)
	}

	gLast1 := g.ExpInt(n - 2)
	gLast2 := g.ExpInt(n - 1)
	one := a.field.One()

	vanishing := make([]*field.FieldElement, len(ldePoints))
	for i, x := range ldePoints {
		vanishing[i] = x.ExpInt(n).Sub(one)
	}
	vanishInv, err := a.field.BatchInvert(vanishing)
	if err != nil {
		return nil, errConstraintNotSatisfied("inverting transition vanishing polynomial: %v", err)
	}

	quotient := make([]*field.FieldElement, len(ldePoints))
	for i, x := range ldePoints {
		window := make([]*field.FieldElement, constraint.Arity)
		for k := range windows {
			window[k] = windows[k][i]
		}
		numerator := constraint.Eval(window)
		exemptionFactor := x.Sub(gLast1).Mul(x.Sub(gLast2))
		quotient[i] = numerator.Mul(exemptionFactor).Mul(vanishInv[i])
	}
	return quotient, nil
}
