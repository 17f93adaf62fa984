package transcript

import (
	"testing"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

func TestDeterminism(t *testing.T) {
	f := field.DefaultPrimeField

	run := func() (*field.FieldElement, int) {
		tr := New([]byte("test protocol"))
		tr.Absorb([]byte("commitment-1"))
		beta := tr.SqueezeFieldElement(f)
		idx, err := tr.SqueezeIndex(1024)
		if err != nil {
			t.Fatalf("SqueezeIndex: %v", err)
		}
		return beta, idx
	}

	beta1, idx1 := run()
	beta2, idx2 := run()

	if !beta1.Equal(beta2) || idx1 != idx2 {
		t.Fatalf("transcript is not deterministic across identical runs")
	}
}

func TestConsecutiveSqueezesDiffer(t *testing.T) {
	tr := New([]byte("proto"))
	tr.Absorb([]byte("root"))

	f := field.DefaultPrimeField
	a := tr.SqueezeFieldElement(f)
	b := tr.SqueezeFieldElement(f)

	if a.Equal(b) {
		t.Fatal("two consecutive squeezes produced the same field element")
	}
}

func TestDifferentAbsorbDivergesChallenges(t *testing.T) {
	f := field.DefaultPrimeField

	tr1 := New([]byte("proto"))
	tr1.Absorb([]byte("root-a"))
	c1 := tr1.SqueezeFieldElement(f)

	tr2 := New([]byte("proto"))
	tr2.Absorb([]byte("root-b"))
	c2 := tr2.SqueezeFieldElement(f)

	if c1.Equal(c2) {
		t.Fatal("different absorbed data produced the same challenge")
	}
}

func TestSqueezeIndexRejectsNonPositive(t *testing.T) {
	tr := New([]byte("proto"))
	if _, err := tr.SqueezeIndex(0); err == nil {
		t.Fatal("expected error for zero domain size")
	}
}
