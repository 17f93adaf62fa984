package fri

import (
	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/merkle"
)

// Proof is the data the verifier needs to check a FRI low-degree claim
// without re-running the prover.
type Proof struct {
	// LayerCommitments holds one Merkle root per layer, including the
	// initial commitment and the trivial final layer of size FinalLayerSize.
	LayerCommitments [][merkle.DigestSize]byte
	// LastLayerValue is the single evaluation remaining after folding
	// reaches FinalLayerSize (canonically 1).
	LastLayerValue *field.FieldElement
	// QueryDecommitments has one entry per sampled query index.
	QueryDecommitments []QueryDecommitment
}

// QueryDecommitment carries, for one sampled initial-domain index, the
// authenticated evaluations needed to replay folding consistency at every
// committed layer, the final layer included.
type QueryDecommitment struct {
	// QueryIndex is the index sampled in the initial domain.
	QueryIndex int
	// LayerEvaluations[i] is the evaluation at this query's (reduced) index
	// in layer i's domain, for every i in [0, len(LayerCommitments)).
	LayerEvaluations []*field.FieldElement
	// LayerPaths[i] authenticates LayerEvaluations[i] against LayerCommitments[i].
	LayerPaths [][]merkle.PathNode
	// LayerEvaluationsSym[i] is the evaluation at the symmetric index.
	LayerEvaluationsSym []*field.FieldElement
	// LayerPathsSym[i] authenticates LayerEvaluationsSym[i].
	LayerPathsSym [][]merkle.PathNode
}
