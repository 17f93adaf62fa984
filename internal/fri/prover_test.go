package fri

import (
	"testing"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/poly"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/transcript"
)

func testPolynomial(t *testing.T, f *field.Field, degree int) *poly.Polynomial {
	t.Helper()
	coeffs := make([]*field.FieldElement, degree+1)
	for i := range coeffs {
		coeffs[i] = f.FromInt64(int64(i + 1))
	}
	p, err := poly.New(f, coeffs)
	if err != nil {
		t.Fatalf("poly.New: %v", err)
	}
	return p
}

func TestProveVerifyRoundTrip(t *testing.T) {
	f := field.DefaultPrimeField
	protocolID := []byte("fri-round-trip-test")

	params, err := NewParams(15, 8, 6, protocolID)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	p := testPolynomial(t, f, 15)

	proof, err := Prove(f, p, params, transcript.New(protocolID))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if err := Verify(f, params, proof, transcript.New(protocolID)); err != nil {
		t.Fatalf("Verify rejected an honest proof: %v", err)
	}
}

func TestVerifyRejectsTamperedLastLayerValue(t *testing.T) {
	f := field.DefaultPrimeField
	protocolID := []byte("fri-tamper-test")

	params, err := NewParams(7, 4, 4, protocolID)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	p := testPolynomial(t, f, 7)

	proof, err := Prove(f, p, params, transcript.New(protocolID))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	proof.LastLayerValue = proof.LastLayerValue.Add(f.One())

	if err := Verify(f, params, proof, transcript.New(protocolID)); err == nil {
		t.Fatal("expected Verify to reject a tampered last-layer value")
	}
}

func TestVerifyRejectsTamperedQueryEvaluation(t *testing.T) {
	f := field.DefaultPrimeField
	protocolID := []byte("fri-tamper-eval-test")

	params, err := NewParams(7, 4, 4, protocolID)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	p := testPolynomial(t, f, 7)

	proof, err := Prove(f, p, params, transcript.New(protocolID))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	proof.QueryDecommitments[0].LayerEvaluations[0] = proof.QueryDecommitments[0].LayerEvaluations[0].Add(f.One())

	if err := Verify(f, params, proof, transcript.New(protocolID)); err == nil {
		t.Fatal("expected Verify to reject a tampered query evaluation")
	}
}

func TestVerifyRejectsTamperedLayerCommitment(t *testing.T) {
	f := field.DefaultPrimeField
	protocolID := []byte("fri-tamper-commitment-test")

	params, err := NewParams(7, 4, 4, protocolID)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	p := testPolynomial(t, f, 7)

	proof, err := Prove(f, p, params, transcript.New(protocolID))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(proof.LayerCommitments) < 2 {
		t.Fatalf("expected at least two layers, got %d", len(proof.LayerCommitments))
	}

	proof.LayerCommitments[1][0] ^= 0x01

	if err := Verify(f, params, proof, transcript.New(protocolID)); err == nil {
		t.Fatal("expected Verify to reject a single-bit-flipped layer commitment")
	}
}

func TestQueryDecommitmentCoversEveryLayer(t *testing.T) {
	f := field.DefaultPrimeField
	protocolID := []byte("fri-decommit-coverage-test")

	params, err := NewParams(7, 4, 4, protocolID)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	p := testPolynomial(t, f, 7)

	proof, err := Prove(f, p, params, transcript.New(protocolID))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	numLayers := len(proof.LayerCommitments)
	for q, qd := range proof.QueryDecommitments {
		if len(qd.LayerEvaluations) != numLayers {
			t.Fatalf("query %d: got %d decommitted layers, want %d (one per committed layer)", q, len(qd.LayerEvaluations), numLayers)
		}
	}

	finalLayer := numLayers - 1
	if !proof.QueryDecommitments[0].LayerEvaluations[finalLayer].Equal(proof.LastLayerValue) {
		t.Fatal("final layer's decommitted evaluation does not match the proof's last-layer value")
	}
}

func TestVerifyRejectsTamperedFinalLayerDecommitment(t *testing.T) {
	f := field.DefaultPrimeField
	protocolID := []byte("fri-tamper-final-layer-test")

	params, err := NewParams(7, 4, 4, protocolID)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	p := testPolynomial(t, f, 7)

	proof, err := Prove(f, p, params, transcript.New(protocolID))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	finalLayer := len(proof.LayerCommitments) - 1
	proof.QueryDecommitments[0].LayerEvaluations[finalLayer] = proof.QueryDecommitments[0].LayerEvaluations[finalLayer].Add(f.One())

	if err := Verify(f, params, proof, transcript.New(protocolID)); err == nil {
		t.Fatal("expected Verify to reject a tampered final-layer decommitment")
	}
}

func TestVerifyRejectsWrongProtocolID(t *testing.T) {
	f := field.DefaultPrimeField
	protocolID := []byte("fri-protocol-a")

	params, err := NewParams(7, 4, 4, protocolID)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	p := testPolynomial(t, f, 7)

	proof, err := Prove(f, p, params, transcript.New(protocolID))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if err := Verify(f, params, proof, transcript.New([]byte("fri-protocol-b"))); err == nil {
		t.Fatal("expected Verify to reject a proof replayed under a different protocol id")
	}
}

func TestSmallestDomainRoundTrip(t *testing.T) {
	f := field.DefaultPrimeField
	protocolID := []byte("fri-smallest-domain-test")

	params, err := NewParams(1, 2, 3, protocolID)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	p := testPolynomial(t, f, 1)

	proof, err := Prove(f, p, params, transcript.New(protocolID))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if err := Verify(f, params, proof, transcript.New(protocolID)); err != nil {
		t.Fatalf("Verify rejected an honest proof over a minimal domain: %v", err)
	}
}

func TestCosetDomainRoundTrip(t *testing.T) {
	f := field.DefaultPrimeField
	protocolID := []byte("fri-coset-domain-test")

	params, err := NewParams(15, 8, 6, protocolID)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	params.Offset = f.FromInt64(3)
	p := testPolynomial(t, f, 15)

	proof, err := Prove(f, p, params, transcript.New(protocolID))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if err := Verify(f, params, proof, transcript.New(protocolID)); err != nil {
		t.Fatalf("Verify rejected an honest proof over a coset domain: %v", err)
	}
}
