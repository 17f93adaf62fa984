package air

import (
	"testing"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

func buildFibonacciFixture(t *testing.T) (*Arithmetization, []BoundaryConstraint, *Composition, *OODClaims, [4]*field.FieldElement) {
	t.Helper()
	f := field.DefaultPrimeField

	trace, err := GenerateFibonacciTrace(f, 8)
	if err != nil {
		t.Fatalf("GenerateFibonacciTrace: %v", err)
	}

	a, err := New(f, trace, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	boundary := []BoundaryConstraint{
		{Point: 0, Value: f.One()},
		{Point: 1, Value: f.One()},
	}
	alpha1 := f.FromInt64(5)
	alpha2 := f.FromInt64(7)

	c, err := NewComposition(a, boundary, FibonacciTransition, alpha1, alpha2)
	if err != nil {
		t.Fatalf("NewComposition: %v", err)
	}

	z := f.FromInt64(10)
	claims := BuildOODClaims(a, c, z)

	betas := [4]*field.FieldElement{
		f.FromInt64(11), f.FromInt64(13), f.FromInt64(15), f.FromInt64(17),
	}

	return a, boundary, c, claims, betas
}

func TestBoundaryQuotientSucceedsForFibonacciTrace(t *testing.T) {
	f := field.DefaultPrimeField
	trace, err := GenerateFibonacciTrace(f, 8)
	if err != nil {
		t.Fatalf("GenerateFibonacciTrace: %v", err)
	}
	a, err := New(f, trace, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	boundary := []BoundaryConstraint{
		{Point: 0, Value: f.One()},
		{Point: 1, Value: f.One()},
	}
	if _, err := a.BoundaryQuotient(boundary); err != nil {
		t.Fatalf("BoundaryQuotient: %v", err)
	}
}

func TestTransitionQuotientHoldsForFibonacciTrace(t *testing.T) {
	f := field.DefaultPrimeField
	trace, err := GenerateFibonacciTrace(f, 8)
	if err != nil {
		t.Fatalf("GenerateFibonacciTrace: %v", err)
	}
	a, err := New(f, trace, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := a.TransitionQuotient(FibonacciTransition); err != nil {
		t.Fatalf("TransitionQuotient: %v", err)
	}
}

func TestTransitionQuotientDiffersForBrokenTrace(t *testing.T) {
	f := field.DefaultPrimeField
	trace, err := GenerateFibonacciTrace(f, 8)
	if err != nil {
		t.Fatalf("GenerateFibonacciTrace: %v", err)
	}
	trace[4] = trace[4].Add(f.One())

	a, err := New(f, trace, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	quotientEvals, err := a.TransitionQuotient(FibonacciTransition)
	if err != nil {
		t.Fatalf("TransitionQuotient: %v", err)
	}

	correctTrace, _ := GenerateFibonacciTrace(f, 8)
	correctA, _ := New(f, correctTrace, 8)
	correctEvals, _ := correctA.TransitionQuotient(FibonacciTransition)

	allMatch := true
	for i := range quotientEvals {
		if !quotientEvals[i].Equal(correctEvals[i]) {
			allMatch = false
			break
		}
	}
	if allMatch {
		t.Fatal("expected broken trace to produce different transition quotient evaluations")
	}
}

func TestOODConsistencyAccepted(t *testing.T) {
	a, boundary, _, claims, _ := buildFibonacciFixture(t)
	f := field.DefaultPrimeField

	err := VerifyOODConsistency(f, a.TraceGenerator(), a.TraceLength(), boundary, FibonacciTransition, f.FromInt64(5), f.FromInt64(7), claims)
	if err != nil {
		t.Fatalf("VerifyOODConsistency rejected an honest claim: %v", err)
	}
}

func TestOODConsistencyRejectsTamperedHZ(t *testing.T) {
	a, boundary, _, claims, _ := buildFibonacciFixture(t)
	f := field.DefaultPrimeField

	tampered := *claims
	tampered.HZ = tampered.HZ.Add(f.One())

	err := VerifyOODConsistency(f, a.TraceGenerator(), a.TraceLength(), boundary, FibonacciTransition, f.FromInt64(5), f.FromInt64(7), &tampered)
	if err == nil {
		t.Fatal("expected VerifyOODConsistency to reject a tampered H(z) claim")
	}
}

func TestOODConsistencyRejectsTamperedChallenge(t *testing.T) {
	a, boundary, _, claims, _ := buildFibonacciFixture(t)
	f := field.DefaultPrimeField

	tamperedAlpha1 := f.FromInt64(5).Add(f.One())

	err := VerifyOODConsistency(f, a.TraceGenerator(), a.TraceLength(), boundary, FibonacciTransition, tamperedAlpha1, f.FromInt64(7), claims)
	if err == nil {
		t.Fatal("expected VerifyOODConsistency to reject a verifier-only-tampered alpha1 challenge")
	}
}

func TestFinalSpotCheckAccepted(t *testing.T) {
	a, _, c, claims, betas := buildFibonacciFixture(t)

	deep, err := NewDeepComposition(a, c, claims, betas)
	if err != nil {
		t.Fatalf("NewDeepComposition: %v", err)
	}

	x0Index := 5
	x0 := a.LDEDomain().At(x0Index)
	hAtX0 := c.LDEEvaluations()[x0Index]
	tAtX0 := a.TraceLDE()[x0Index]
	committedDAtX0 := deep.LDEEvaluations()[x0Index]

	err = FinalSpotCheck(a.TraceGenerator(), claims, betas, x0, hAtX0, tAtX0, committedDAtX0)
	if err != nil {
		t.Fatalf("FinalSpotCheck rejected an honest opening: %v", err)
	}
}

func TestFinalSpotCheckRejectsTamperedOpening(t *testing.T) {
	a, _, c, claims, betas := buildFibonacciFixture(t)
	f := field.DefaultPrimeField

	deep, err := NewDeepComposition(a, c, claims, betas)
	if err != nil {
		t.Fatalf("NewDeepComposition: %v", err)
	}

	x0Index := 5
	x0 := a.LDEDomain().At(x0Index)
	hAtX0 := c.LDEEvaluations()[x0Index].Add(f.One())
	tAtX0 := a.TraceLDE()[x0Index]
	committedDAtX0 := deep.LDEEvaluations()[x0Index]

	err = FinalSpotCheck(a.TraceGenerator(), claims, betas, x0, hAtX0, tAtX0, committedDAtX0)
	if err == nil {
		t.Fatal("expected FinalSpotCheck to reject a tampered H(x0) opening")
	}
}

func TestDeepCompositionPolynomialMatchesEvaluations(t *testing.T) {
	a, _, c, claims, betas := buildFibonacciFixture(t)

	deep, err := NewDeepComposition(a, c, claims, betas)
	if err != nil {
		t.Fatalf("NewDeepComposition: %v", err)
	}

	for i, x := range a.LDEDomain().Elements() {
		if !deep.Polynomial().Eval(x).Equal(deep.LDEEvaluations()[i]) {
			t.Fatalf("DEEP polynomial disagrees with its own LDE evaluation at index %d", i)
		}
	}
}
