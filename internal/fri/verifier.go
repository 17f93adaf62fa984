package fri

import (
	"fmt"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/domain"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/merkle"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/transcript"
)

// Verify replays the Fiat-Shamir transcript, checks every query's Merkle
// openings, and checks folding consistency layer by layer in reverse. tr
// must be freshly seeded identically to the prover's transcript.
func Verify(f *field.Field, params *Params, proof *Proof, tr *transcript.Transcript) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if len(proof.LayerCommitments) == 0 {
		return errInvalidParams("proof has no layer commitments")
	}

	numFolds := len(proof.LayerCommitments) - 1
	numLayers := len(proof.LayerCommitments)

	dom0, err := domain.New(f, params.DomainSize())
	if err != nil {
		return errInvalidParams("building initial domain: %v", err)
	}
	if params.Offset != nil {
		dom0 = dom0.WithOffset(params.Offset)
	}

	layerDomains := make([]*domain.Domain, numLayers)
	cur := dom0
	for i := 0; i < numLayers; i++ {
		layerDomains[i] = cur
		if i < numLayers-1 {
			next, err := cur.Halve()
			if err != nil {
				return errInvalidParams("halving layer %d domain: %v", i, err)
			}
			cur = next
		}
	}

	tr.Absorb(proof.LayerCommitments[0][:])
	betas := make([]*field.FieldElement, numFolds)
	for i := 1; i < len(proof.LayerCommitments); i++ {
		betas[i-1] = tr.SqueezeFieldElement(f)
		root := proof.LayerCommitments[i]
		tr.Absorb(root[:])
	}
	tr.Absorb(proof.LastLayerValue.Bytes())

	if len(proof.QueryDecommitments) != params.NumQueries {
		return errInvalidMerkleProof(0)
	}

	two := f.FromInt64(2)
	twoInv, err := two.Inv()
	if err != nil {
		return fmt.Errorf("fri: verify: %w", err)
	}

	logger := params.logger()

	for queryNum, qd := range proof.QueryDecommitments {
		idx, err := tr.SqueezeIndex(dom0.Length)
		if err != nil {
			return fmt.Errorf("fri: verify: %w", err)
		}
		if idx != qd.QueryIndex {
			return errInvalidMerkleProof(0)
		}
		if len(qd.LayerEvaluations) != numLayers ||
			len(qd.LayerEvaluationsSym) != numLayers ||
			len(qd.LayerPaths) != numLayers ||
			len(qd.LayerPathsSym) != numLayers {
			return errInvalidMerkleProof(0)
		}

		layerIndices := make([]int, numLayers)
		curIdx := idx
		for i := 0; i < numLayers; i++ {
			layerSize := params.DomainSize() >> uint(i)
			symIdx := (curIdx + layerSize/2) % layerSize
			layerIndices[i] = curIdx

			if !merkle.Verify(proof.LayerCommitments[i], qd.LayerEvaluations[i].Bytes(), curIdx, qd.LayerPaths[i]) {
				return errInvalidMerkleProof(i)
			}
			if !merkle.Verify(proof.LayerCommitments[i], qd.LayerEvaluationsSym[i].Bytes(), symIdx, qd.LayerPathsSym[i]) {
				return errInvalidMerkleProof(i)
			}
			if i < numLayers-1 {
				curIdx = curIdx % (layerSize / 2)
			}
		}

		if !qd.LayerEvaluations[numFolds].Equal(proof.LastLayerValue) {
			return errInconsistentFolding(numFolds, proof.LastLayerValue.String(), qd.LayerEvaluations[numFolds].String())
		}

		claimedChild := proof.LastLayerValue
		for i := numFolds - 1; i >= 0; i-- {
			x := layerDomains[i].At(layerIndices[i])

			y := qd.LayerEvaluations[i]
			ySym := qd.LayerEvaluationsSym[i]

			twoXInv, err := two.Mul(x).Inv()
			if err != nil {
				return fmt.Errorf("fri: verify: %w", err)
			}
			even := y.Add(ySym).Mul(twoInv)
			odd := y.Sub(ySym).Mul(twoXInv)
			expected := even.Add(betas[i].Mul(odd))

			if !expected.Equal(claimedChild) {
				return errInconsistentFolding(i, claimedChild.String(), expected.String())
			}
			claimedChild = y
		}
		logger.Debug("fri: query verified", "query", queryNum, "index", idx)
	}

	return nil
}
