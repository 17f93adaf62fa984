// Package field implements prime field arithmetic for the prover and verifier.
package field

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Field is a prime field Z/pZ. All FieldElement values produced by a Field
// carry a pointer back to it; arithmetic between elements of different
// fields panics rather than silently producing nonsense.
type Field struct {
	modulus *big.Int
}

// FieldElement is a residue in a Field.
type FieldElement struct {
	field *Field
	value *big.Int
}

// New creates a field with the given modulus. The modulus must be greater than 2.
func New(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("field: modulus must be greater than 2, got %s", modulus)
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// NewFromUint64 creates a field from a uint64 modulus.
func NewFromUint64(modulus uint64) (*Field, error) {
	return New(new(big.Int).SetUint64(modulus))
}

// Modulus returns a copy of the field's modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// Equal reports whether two Field values share the same modulus.
func (f *Field) Equal(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// Element creates a field element from a big.Int, reducing it modulo the field's modulus.
func (f *Field) Element(value *big.Int) *FieldElement {
	normalized := new(big.Int).Mod(value, f.modulus)
	return &FieldElement{field: f, value: normalized}
}

// FromInt64 creates a field element from an int64.
func (f *Field) FromInt64(value int64) *FieldElement {
	return f.Element(big.NewInt(value))
}

// FromUint64 creates a field element from a uint64.
func (f *Field) FromUint64(value uint64) *FieldElement {
	return f.Element(new(big.Int).SetUint64(value))
}

// FromBytes interprets data as a big-endian unsigned integer and reduces it into the field.
func (f *Field) FromBytes(data []byte) *FieldElement {
	return f.Element(new(big.Int).SetBytes(data))
}

// Random returns a cryptographically random field element.
func (f *Field) Random() (*FieldElement, error) {
	value, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return nil, fmt.Errorf("field: random element: %w", err)
	}
	return f.Element(value), nil
}

// Zero returns the additive identity.
func (f *Field) Zero() *FieldElement { return f.Element(big.NewInt(0)) }

// One returns the multiplicative identity.
func (f *Field) One() *FieldElement { return f.Element(big.NewInt(1)) }

// Field returns the field this element belongs to.
func (fe *FieldElement) Field() *Field { return fe.field }

// Big returns a copy of the element's value as a big.Int.
func (fe *FieldElement) Big() *big.Int { return new(big.Int).Set(fe.value) }

func (fe *FieldElement) mustSameField(other *FieldElement) {
	if !fe.field.Equal(other.field) {
		panic("field: operands belong to different fields")
	}
}

// Add returns fe + other.
func (fe *FieldElement) Add(other *FieldElement) *FieldElement {
	fe.mustSameField(other)
	return fe.field.Element(new(big.Int).Add(fe.value, other.value))
}

// Sub returns fe - other.
func (fe *FieldElement) Sub(other *FieldElement) *FieldElement {
	fe.mustSameField(other)
	return fe.field.Element(new(big.Int).Sub(fe.value, other.value))
}

// Neg returns -fe.
func (fe *FieldElement) Neg() *FieldElement {
	return fe.field.Element(new(big.Int).Neg(fe.value))
}

// Mul returns fe * other.
func (fe *FieldElement) Mul(other *FieldElement) *FieldElement {
	fe.mustSameField(other)
	return fe.field.Element(new(big.Int).Mul(fe.value, other.value))
}

// Square returns fe * fe.
func (fe *FieldElement) Square() *FieldElement { return fe.Mul(fe) }

// Inv returns the multiplicative inverse of fe. Errors if fe is zero.
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.value.Sign() == 0 {
		return nil, fmt.Errorf("field: cannot invert zero")
	}
	x := new(big.Int).ModInverse(fe.value, fe.field.modulus)
	if x == nil {
		return nil, fmt.Errorf("field: inverse does not exist for %s", fe.value)
	}
	return fe.field.Element(x), nil
}

// Div returns fe / other.
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	fe.mustSameField(other)
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("field: division: %w", err)
	}
	return fe.Mul(inv), nil
}

// Exp returns fe^exponent.
func (fe *FieldElement) Exp(exponent *big.Int) *FieldElement {
	e := exponent
	if e.Sign() < 0 {
		panic("field: negative exponent not supported")
	}
	return fe.field.Element(new(big.Int).Exp(fe.value, e, fe.field.modulus))
}

// ExpInt returns fe^n for a non-negative int n.
func (fe *FieldElement) ExpInt(n int) *FieldElement {
	return fe.Exp(big.NewInt(int64(n)))
}

// Equal reports whether two elements (from the same field) are numerically equal.
func (fe *FieldElement) Equal(other *FieldElement) bool {
	if !fe.field.Equal(other.field) {
		return false
	}
	return fe.value.Cmp(other.value) == 0
}

// IsZero reports whether fe is the additive identity.
func (fe *FieldElement) IsZero() bool { return fe.value.Sign() == 0 }

// IsOne reports whether fe is the multiplicative identity.
func (fe *FieldElement) IsOne() bool { return fe.value.Cmp(big.NewInt(1)) == 0 }

// String returns the element's decimal representation.
func (fe *FieldElement) String() string { return fe.value.String() }

// canonicalByteLen is wide enough for any modulus used by this package (up to 256 bits).
const canonicalByteLen = 32

// Bytes returns a canonical fixed-width big-endian encoding of the element,
// suitable for Merkle leaves and transcript absorption.
func (fe *FieldElement) Bytes() []byte {
	raw := fe.value.Bytes()
	out := make([]byte, canonicalByteLen)
	copy(out[canonicalByteLen-len(raw):], raw)
	return out
}

// DefaultPrimeField is an FFT-friendly prime field (p = 3*2^30 + 1) used by
// the test vectors and the demo: it supports subgroups of size up to 2^30.
var DefaultPrimeField, _ = NewFromUint64(3221225473)

// DefaultGenerator is a generator of DefaultPrimeField's multiplicative group.
var DefaultGenerator = DefaultPrimeField.FromInt64(5)
