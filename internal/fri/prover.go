package fri

import (
	"fmt"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/domain"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/merkle"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/poly"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/transcript"
)

type layer struct {
	evaluations []*field.FieldElement
	domain      *domain.Domain
	tree        *merkle.Tree
}

func leavesFromEvaluations(evaluations []*field.FieldElement) [][]byte {
	leaves := make([][]byte, len(evaluations))
	for i, e := range evaluations {
		leaves[i] = e.Bytes()
	}
	return leaves
}

// Prove commits to p, folds it down to params.FinalLayerSize, and samples
// params.NumQueries query indices, returning a Proof. tr must be freshly
// seeded (or otherwise positioned identically to the verifier's transcript)
// before this call.
func Prove(f *field.Field, p *poly.Polynomial, params *Params, tr *transcript.Transcript) (*Proof, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	dom0, err := domain.New(f, params.DomainSize())
	if err != nil {
		return nil, errInvalidParams("building initial domain: %v", err)
	}
	if params.Offset != nil {
		dom0 = dom0.WithOffset(params.Offset)
	}

	logger := params.logger()

	var layers []layer
	var commitments [][merkle.DigestSize]byte

	cur := p.EvalBatch(dom0.Elements())
	curDomain := dom0

	for layerIdx := 0; ; layerIdx++ {
		tree, err := merkle.New(leavesFromEvaluations(cur))
		if err != nil {
			return nil, errMerkleConstruction(layerIdx, err)
		}
		layers = append(layers, layer{evaluations: cur, domain: curDomain, tree: tree})
		root := tree.Root()
		commitments = append(commitments, root)
		tr.Absorb(root[:])
		logger.Debug("fri: committed layer", "layer", layerIdx, "domain_size", len(cur))

		if len(cur) <= params.FinalLayerSize {
			break
		}

		beta := tr.SqueezeFieldElement(f)
		next, nextDomain, err := FoldEvaluations(f, cur, curDomain, beta)
		if err != nil {
			return nil, fmt.Errorf("fri: fold phase (layer %d): %w", layerIdx, err)
		}
		cur = next
		curDomain = nextDomain
	}

	lastValue := layers[len(layers)-1].evaluations[0]
	tr.Absorb(lastValue.Bytes())
	logger.Debug("fri: folding complete", "num_layers", len(layers))

	decommitments := make([]QueryDecommitment, params.NumQueries)
	for q := 0; q < params.NumQueries; q++ {
		idx, err := tr.SqueezeIndex(dom0.Length)
		if err != nil {
			return nil, fmt.Errorf("fri: query phase: %w", err)
		}
		qd, err := decommitFor(layers, idx)
		if err != nil {
			return nil, err
		}
		decommitments[q] = qd
	}
	logger.Debug("fri: query phase complete", "num_queries", params.NumQueries)

	return &Proof{
		LayerCommitments:   commitments,
		LastLayerValue:     lastValue,
		QueryDecommitments: decommitments,
	}, nil
}

func decommitFor(layers []layer, initialIdx int) (QueryDecommitment, error) {
	qd := QueryDecommitment{QueryIndex: initialIdx}
	idx := initialIdx

	for i := 0; i < len(layers); i++ {
		l := layers[i]
		symIdx := l.domain.SymmetricIndex(idx)

		path, err := l.tree.Path(idx)
		if err != nil {
			return QueryDecommitment{}, fmt.Errorf("fri: decommit layer %d: %w", i, err)
		}
		pathSym, err := l.tree.Path(symIdx)
		if err != nil {
			return QueryDecommitment{}, fmt.Errorf("fri: decommit layer %d (sym): %w", i, err)
		}

		qd.LayerEvaluations = append(qd.LayerEvaluations, l.evaluations[idx])
		qd.LayerPaths = append(qd.LayerPaths, path)
		qd.LayerEvaluationsSym = append(qd.LayerEvaluationsSym, l.evaluations[symIdx])
		qd.LayerPathsSym = append(qd.LayerPathsSym, pathSym)

		if i < len(layers)-1 {
			idx = idx % (l.domain.Length / 2)
		}
	}

	return qd, nil
}
