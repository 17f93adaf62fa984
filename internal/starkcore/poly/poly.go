// Package poly implements univariate polynomial algebra over a prime field.
package poly

import (
	"fmt"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

// Polynomial is a finite sequence of field-element coefficients in ascending
// power: coefficients[i] is the coefficient of x^i.
type Polynomial struct {
	coefficients []*field.FieldElement
	field        *field.Field
}

// Point is an (x, y) pair used by interpolation.
type Point struct {
	X *field.FieldElement
	Y *field.FieldElement
}

// New creates a polynomial from coefficients in ascending power order.
// Trailing zero coefficients are trimmed so Degree() reflects the true degree.
func New(f *field.Field, coefficients []*field.FieldElement) (*Polynomial, error) {
	if f == nil {
		return nil, fmt.Errorf("poly: nil field")
	}
	trimmed := trimTrailingZeros(coefficients)
	return &Polynomial{coefficients: trimmed, field: f}, nil
}

func trimTrailingZeros(coeffs []*field.FieldElement) []*field.FieldElement {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	out := make([]*field.FieldElement, n)
	copy(out, coeffs[:n])
	return out
}

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Coefficients returns the coefficients in ascending power order. The slice
// must not be mutated by the caller.
func (p *Polynomial) Coefficients() []*field.FieldElement {
	return p.coefficients
}

// Clone returns a deep copy of p.
func (p *Polynomial) Clone() *Polynomial {
	coeffs := make([]*field.FieldElement, len(p.coefficients))
	copy(coeffs, p.coefficients)
	return &Polynomial{coefficients: coeffs, field: p.field}
}

// Eval evaluates p at x using Horner's method.
func (p *Polynomial) Eval(x *field.FieldElement) *field.FieldElement {
	result := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result
}

// EvalBatch evaluates p at every point in xs.
func (p *Polynomial) EvalBatch(xs []*field.FieldElement) []*field.FieldElement {
	out := make([]*field.FieldElement, len(xs))
	for i, x := range xs {
		out[i] = p.Eval(x)
	}
	return out
}

func (p *Polynomial) coeffAt(i int) *field.FieldElement {
	if i < len(p.coefficients) {
		return p.coefficients[i]
	}
	return p.field.Zero()
}

// Add returns p + other.
func (p *Polynomial) Add(other *Polynomial) (*Polynomial, error) {
	n := len(p.coefficients)
	if len(other.coefficients) > n {
		n = len(other.coefficients)
	}
	out := make([]*field.FieldElement, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeffAt(i).Add(other.coeffAt(i))
	}
	return New(p.field, out)
}

// Sub returns p - other.
func (p *Polynomial) Sub(other *Polynomial) (*Polynomial, error) {
	n := len(p.coefficients)
	if len(other.coefficients) > n {
		n = len(other.coefficients)
	}
	out := make([]*field.FieldElement, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeffAt(i).Sub(other.coeffAt(i))
	}
	return New(p.field, out)
}

// MulScalar returns p scaled by a constant.
func (p *Polynomial) MulScalar(c *field.FieldElement) (*Polynomial, error) {
	out := make([]*field.FieldElement, len(p.coefficients))
	for i, coeff := range p.coefficients {
		out[i] = coeff.Mul(c)
	}
	return New(p.field, out)
}

// Mul returns p * other via schoolbook convolution.
func (p *Polynomial) Mul(other *Polynomial) (*Polynomial, error) {
	if p.Degree() < 0 || other.Degree() < 0 {
		return New(p.field, nil)
	}
	out := make([]*field.FieldElement, len(p.coefficients)+len(other.coefficients)-1)
	for i := range out {
		out[i] = p.field.Zero()
	}
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return New(p.field, out)
}

// Div performs polynomial long division, returning quotient and remainder
// such that p = quotient*divisor + remainder and remainder.Degree() < divisor.Degree().
func (p *Polynomial) Div(divisor *Polynomial) (quotient, remainder *Polynomial, err error) {
	if divisor.Degree() < 0 {
		return nil, nil, fmt.Errorf("poly: division by zero polynomial")
	}
	if p.Degree() < divisor.Degree() {
		z, _ := New(p.field, nil)
		return z, p.Clone(), nil
	}

	remCoeffs := make([]*field.FieldElement, len(p.coefficients))
	copy(remCoeffs, p.coefficients)
	quotCoeffs := make([]*field.FieldElement, p.Degree()-divisor.Degree()+1)
	for i := range quotCoeffs {
		quotCoeffs[i] = p.field.Zero()
	}

	divLead := divisor.coefficients[divisor.Degree()]
	divDeg := divisor.Degree()

	for degree := len(remCoeffs) - 1; degree >= divDeg; degree-- {
		if remCoeffs[degree].IsZero() {
			continue
		}
		coeff, derr := remCoeffs[degree].Div(divLead)
		if derr != nil {
			return nil, nil, fmt.Errorf("poly: division: %w", derr)
		}
		shift := degree - divDeg
		quotCoeffs[shift] = coeff
		for j := 0; j <= divDeg; j++ {
			remCoeffs[shift+j] = remCoeffs[shift+j].Sub(coeff.Mul(divisor.coefficients[j]))
		}
	}

	quotient, err = New(p.field, quotCoeffs)
	if err != nil {
		return nil, nil, err
	}
	remainder, err = New(p.field, remCoeffs)
	if err != nil {
		return nil, nil, err
	}
	return quotient, remainder, nil
}

// Compose returns p(g(x)).
func (p *Polynomial) Compose(g *Polynomial) (*Polynomial, error) {
	result, err := New(p.field, []*field.FieldElement{p.coeffAt(0)})
	if err != nil {
		return nil, err
	}
	gPower, err := New(p.field, []*field.FieldElement{p.field.One()})
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(p.coefficients); i++ {
		gPower, err = gPower.Mul(g)
		if err != nil {
			return nil, err
		}
		term, err := gPower.MulScalar(p.coefficients[i])
		if err != nil {
			return nil, err
		}
		result, err = result.Add(term)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// String renders the polynomial in ascending-power form for debugging.
func (p *Polynomial) String() string {
	if p.Degree() < 0 {
		return "0"
	}
	s := ""
	for i, c := range p.coefficients {
		if i > 0 {
			s += " + "
		}
		s += fmt.Sprintf("%s*x^%d", c, i)
	}
	return s
}

// LagrangeInterpolation returns the unique minimal-degree polynomial passing
// through all given points. Points must have distinct X values.
func LagrangeInterpolation(f *field.Field, points []Point) (*Polynomial, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("poly: no points to interpolate")
	}

	result, err := New(f, []*field.FieldElement{f.Zero()})
	if err != nil {
		return nil, err
	}

	for i, pi := range points {
		basis, err := New(f, []*field.FieldElement{f.One()})
		if err != nil {
			return nil, err
		}
		for j, pj := range points {
			if i == j {
				continue
			}
			denom := pi.X.Sub(pj.X)
			if denom.IsZero() {
				return nil, fmt.Errorf("poly: duplicate interpolation x-coordinate at %d,%d", i, j)
			}
			denomInv, err := denom.Inv()
			if err != nil {
				return nil, err
			}
			linear, err := New(f, []*field.FieldElement{pj.X.Neg().Mul(denomInv), denomInv})
			if err != nil {
				return nil, err
			}
			basis, err = basis.Mul(linear)
			if err != nil {
				return nil, err
			}
		}
		term, err := basis.MulScalar(pi.Y)
		if err != nil {
			return nil, err
		}
		result, err = result.Add(term)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// InterpolateEvaluations interpolates a polynomial from (xs[i], ys[i]) pairs.
func InterpolateEvaluations(f *field.Field, xs, ys []*field.FieldElement) (*Polynomial, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("poly: xs/ys length mismatch")
	}
	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return LagrangeInterpolation(f, points)
}
