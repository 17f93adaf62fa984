// Package domain implements subgroup and coset evaluation domains over a
// prime field with power-of-two length.
package domain

import (
	"fmt"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

// Domain is {offset * generator^i : i = 0..length-1}, a coset of a
// multiplicative subgroup of order length. A subgroup domain is the special
// case offset = 1.
type Domain struct {
	Offset    *field.FieldElement
	Generator *field.FieldElement
	Length    int
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// New creates a subgroup domain (offset = 1) of the given power-of-two length.
func New(f *field.Field, length int) (*Domain, error) {
	if !isPowerOfTwo(length) {
		return nil, fmt.Errorf("domain: length must be a power of two, got %d", length)
	}
	g := f.PrimitiveRootOfUnity(length)
	if g == nil {
		return nil, fmt.Errorf("domain: no %d-th root of unity in this field", length)
	}
	return &Domain{Offset: f.One(), Generator: g, Length: length}, nil
}

// WithOffset returns a coset of d scaled by offset.
func (d *Domain) WithOffset(offset *field.FieldElement) *Domain {
	return &Domain{Offset: offset, Generator: d.Generator, Length: d.Length}
}

// Halve returns the domain of half the length: offset and generator are each
// squared.
func (d *Domain) Halve() (*Domain, error) {
	if d.Length < 2 {
		return nil, fmt.Errorf("domain: cannot halve a domain of length %d", d.Length)
	}
	return &Domain{
		Offset:    d.Offset.Square(),
		Generator: d.Generator.Square(),
		Length:    d.Length / 2,
	}, nil
}

// Elements returns every point in the domain, in order.
func (d *Domain) Elements() []*field.FieldElement {
	out := make([]*field.FieldElement, d.Length)
	current := d.Offset
	for i := 0; i < d.Length; i++ {
		out[i] = current
		current = current.Mul(d.Generator)
	}
	return out
}

// At returns the i-th element, offset * generator^i.
func (d *Domain) At(i int) *field.FieldElement {
	return d.Offset.Mul(d.Generator.ExpInt(i))
}

// SymmetricIndex returns (i + length/2) mod length, the index of -D[i] in a
// subgroup domain (generalizes to cosets the same way since the offset
// cancels in the ratio between symmetric points).
func (d *Domain) SymmetricIndex(i int) int {
	half := d.Length / 2
	return (i + half) % d.Length
}
