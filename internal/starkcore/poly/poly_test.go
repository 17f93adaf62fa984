package poly

import (
	"testing"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

func testField(t *testing.T) *field.Field {
	t.Helper()
	f, err := field.NewFromUint64(3221225473)
	if err != nil {
		t.Fatalf("NewFromUint64: %v", err)
	}
	return f
}

func TestEvalHorner(t *testing.T) {
	f := testField(t)
	// p(x) = x^3 - 3x + 2, coefficients ascending: [2, -3, 0, 1]
	coeffs := []*field.FieldElement{
		f.FromInt64(2),
		f.FromInt64(-3),
		f.FromInt64(0),
		f.FromInt64(1),
	}
	p, err := New(f, coeffs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Degree() != 3 {
		t.Fatalf("Degree() = %d, want 3", p.Degree())
	}

	for x := int64(-5); x <= 5; x++ {
		got := p.Eval(f.FromInt64(x))
		want := x*x*x - 3*x + 2
		if !got.Equal(f.FromInt64(want)) {
			t.Fatalf("p(%d) = %s, want %d", x, got, want)
		}
	}
}

func TestAddSubMul(t *testing.T) {
	f := testField(t)
	p1, _ := New(f, []*field.FieldElement{f.FromInt64(1), f.FromInt64(2)})
	p2, _ := New(f, []*field.FieldElement{f.FromInt64(3), f.FromInt64(4)})

	sum, err := p1.Add(p2)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !sum.Eval(f.FromInt64(1)).Equal(f.FromInt64(10)) {
		t.Fatalf("sum(1) wrong")
	}

	diff, err := p2.Sub(p1)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !diff.Eval(f.FromInt64(1)).Equal(f.FromInt64(4)) {
		t.Fatalf("diff(1) wrong")
	}

	prod, err := p1.Mul(p2)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !prod.Eval(f.FromInt64(1)).Equal(f.FromInt64(3 * 7)) {
		t.Fatalf("prod(1) wrong")
	}
}

func TestDivExact(t *testing.T) {
	f := testField(t)
	// (x-1)(x-2) = x^2 - 3x + 2
	quad, _ := New(f, []*field.FieldElement{f.FromInt64(2), f.FromInt64(-3), f.FromInt64(1)})
	linear, _ := New(f, []*field.FieldElement{f.FromInt64(-1), f.FromInt64(1)})

	quotient, remainder, err := quad.Div(linear)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if remainder.Degree() >= 0 {
		t.Fatalf("expected zero remainder, got degree %d", remainder.Degree())
	}
	if !quotient.Eval(f.FromInt64(5)).Equal(f.FromInt64(3)) {
		t.Fatalf("quotient(5) = %s, want 3 (expect x-2)", quotient.Eval(f.FromInt64(5)))
	}
}

func TestLagrangeInterpolation(t *testing.T) {
	f := testField(t)
	points := []Point{
		{X: f.FromInt64(0), Y: f.FromInt64(1)},
		{X: f.FromInt64(1), Y: f.FromInt64(1)},
		{X: f.FromInt64(2), Y: f.FromInt64(2)},
		{X: f.FromInt64(3), Y: f.FromInt64(3)},
	}
	p, err := LagrangeInterpolation(f, points)
	if err != nil {
		t.Fatalf("LagrangeInterpolation: %v", err)
	}
	for _, pt := range points {
		if !p.Eval(pt.X).Equal(pt.Y) {
			t.Fatalf("interpolant(%s) = %s, want %s", pt.X, p.Eval(pt.X), pt.Y)
		}
	}
}

func TestFFTRoundTrip(t *testing.T) {
	f := testField(t)
	omega := f.PrimitiveRootOfUnity(8)
	if omega == nil {
		t.Fatal("no 8th root of unity found")
	}

	coeffs := make([]*field.FieldElement, 8)
	for i := range coeffs {
		coeffs[i] = f.FromInt64(int64(i + 1))
	}

	evals, err := FFT(f, coeffs, omega)
	if err != nil {
		t.Fatalf("FFT: %v", err)
	}
	back, err := IFFT(f, evals, omega)
	if err != nil {
		t.Fatalf("IFFT: %v", err)
	}
	for i := range coeffs {
		if !back[i].Equal(coeffs[i]) {
			t.Fatalf("round trip coeff %d mismatch: got %s want %s", i, back[i], coeffs[i])
		}
	}
}

func TestComposeAndClone(t *testing.T) {
	f := testField(t)
	p, _ := New(f, []*field.FieldElement{f.FromInt64(1), f.FromInt64(1)}) // 1 + x
	g, _ := New(f, []*field.FieldElement{f.FromInt64(0), f.FromInt64(2)}) // 2x

	composed, err := p.Compose(g)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// p(g(x)) = 1 + 2x
	if !composed.Eval(f.FromInt64(3)).Equal(f.FromInt64(7)) {
		t.Fatalf("composed(3) = %s, want 7", composed.Eval(f.FromInt64(3)))
	}

	clone := p.Clone()
	if !clone.Eval(f.FromInt64(4)).Equal(p.Eval(f.FromInt64(4))) {
		t.Fatalf("clone diverges from original")
	}
}

func TestInterpolateCosetEvaluations(t *testing.T) {
	f := testField(t)
	generator := f.PrimitiveRootOfUnity(8)
	if generator == nil {
		t.Fatal("no 8th root of unity found")
	}
	offset := f.FromInt64(3)

	coeffs := make([]*field.FieldElement, 8)
	for i := range coeffs {
		coeffs[i] = f.FromInt64(int64(i - 3))
	}
	p, err := New(f, coeffs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cosetPoints := make([]*field.FieldElement, 8)
	power := f.One()
	for i := range cosetPoints {
		cosetPoints[i] = offset.Mul(power)
		power = power.Mul(generator)
	}
	evals := p.EvalBatch(cosetPoints)

	recovered, err := InterpolateCosetEvaluations(f, evals, offset, generator)
	if err != nil {
		t.Fatalf("InterpolateCosetEvaluations: %v", err)
	}
	for i, c := range p.Coefficients() {
		if !recovered.Coefficients()[i].Equal(c) {
			t.Fatalf("recovered coeff %d = %s, want %s", i, recovered.Coefficients()[i], c)
		}
	}
}
