// Package stark wires the FRI folding protocol and the AIR polynomial IOP
// into one end-to-end STARK: a prover arithmetizes a trace, commits to its
// low-degree extension and composition polynomial, answers an out-of-domain
// consistency check, folds a DEEP composition polynomial through FRI, and a
// verifier replays the same transcript to check every step without ever
// seeing the trace itself.
package stark

import (
	"github.com/vybium/vybium-stark-fri/internal/air"
	"github.com/vybium/vybium-stark-fri/internal/fri"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/domain"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/merkle"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/transcript"
)

// SpotCheckOpening authenticates the trace and composition evaluations at one
// FRI query index, letting the verifier recompute D(x0) and compare it
// against the value FRI itself opened there.
type SpotCheckOpening struct {
	TAtX0 *field.FieldElement
	TPath []merkle.PathNode
	HAtX0 *field.FieldElement
	HPath []merkle.PathNode
}

// AIRProof bundles everything the AIR layer contributes beyond the FRI
// sub-proof: the trace and composition commitments, the out-of-domain
// claims, and one SpotCheckOpening per FRI query index.
type AIRProof struct {
	TraceRoot  [merkle.DigestSize]byte
	CompRoot   [merkle.DigestSize]byte
	Claims     *air.OODClaims
	SpotChecks []SpotCheckOpening
}

// Proof is the complete artifact Verify checks: the AIR layer's commitments
// and openings, plus the FRI proof that the DEEP composition polynomial they
// imply is close to a low-degree polynomial.
type Proof struct {
	AIR AIRProof
	FRI *fri.Proof
}

// Prover holds everything needed to arithmetize a fixed trace against a
// fixed constraint set and produce a Proof.
type Prover struct {
	field      *field.Field
	params     *Params
	boundary   []air.BoundaryConstraint
	transition air.TransitionConstraint
	trace      []*field.FieldElement
}

// NewProver validates params and the trace's shape and returns a Prover
// ready to GenerateProof.
func NewProver(f *field.Field, params *Params, boundary []air.BoundaryConstraint, transition air.TransitionConstraint, trace []*field.FieldElement) (*Prover, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(trace) != params.TraceLength {
		return nil, errInvalidTrace("trace has length %d, params declares %d", len(trace), params.TraceLength)
	}
	return &Prover{
		field:      f,
		params:     params,
		boundary:   boundary,
		transition: transition,
		trace:      trace,
	}, nil
}

func friParamsFor(f *field.Field, p *Params) (*fri.Params, error) {
	friParams, err := fri.NewParams(p.TraceLength-1, p.BlowupFactor, p.NumFRIQueries, p.ProtocolID)
	if err != nil {
		return nil, err
	}
	offset, err := domain.CosetOffset(f, p.TraceLength)
	if err != nil {
		return nil, errInvalidParams("finding LDE coset offset: %v", err)
	}
	friParams.Offset = offset
	friParams.Logger = p.logger()
	return friParams, nil
}

// GenerateProof runs the prover side of the protocol: arithmetize, commit,
// answer the OOD check, fold the DEEP composition through FRI, and open the
// trace and composition commitments at every FRI query index.
func (p *Prover) GenerateProof() (*Proof, error) {
	logger := p.params.logger()

	a, err := air.New(p.field, p.trace, p.params.BlowupFactor)
	if err != nil {
		return nil, err
	}
	logger.Debug("stark: trace arithmetized", "trace_length", p.params.TraceLength, "lde_size", p.params.ldeDomainSize())

	traceTree, err := merkle.New(leavesOf(a.TraceLDE()))
	if err != nil {
		return nil, errMalformedProof("committing to trace LDE: %v", err)
	}
	traceRoot := traceTree.Root()
	logger.Debug("stark: committed trace LDE")

	tr := transcript.New(p.params.ProtocolID)
	tr.Absorb(traceRoot[:])
	alpha1 := tr.SqueezeFieldElement(p.field)
	alpha2 := tr.SqueezeFieldElement(p.field)

	comp, err := air.NewComposition(a, p.boundary, p.transition, alpha1, alpha2)
	if err != nil {
		return nil, err
	}

	compTree, err := merkle.New(leavesOf(comp.LDEEvaluations()))
	if err != nil {
		return nil, errMalformedProof("committing to composition LDE: %v", err)
	}
	compRoot := compTree.Root()
	tr.Absorb(compRoot[:])
	logger.Debug("stark: committed composition polynomial")

	z := tr.SqueezeFieldElement(p.field)
	claims := air.BuildOODClaims(a, comp, z)
	absorbClaims(tr, claims)
	logger.Debug("stark: out-of-domain claims built")

	betas := [4]*field.FieldElement{
		tr.SqueezeFieldElement(p.field),
		tr.SqueezeFieldElement(p.field),
		tr.SqueezeFieldElement(p.field),
		tr.SqueezeFieldElement(p.field),
	}

	deep, err := air.NewDeepComposition(a, comp, claims, betas)
	if err != nil {
		return nil, err
	}

	friParams, err := friParamsFor(p.field, p.params)
	if err != nil {
		return nil, err
	}

	friProof, err := fri.Prove(p.field, deep.Polynomial(), friParams, tr)
	if err != nil {
		return nil, err
	}

	spotChecks := make([]SpotCheckOpening, len(friProof.QueryDecommitments))
	for q, qd := range friProof.QueryDecommitments {
		idx := qd.QueryIndex
		tPath, err := traceTree.Path(idx)
		if err != nil {
			return nil, errMalformedProof("building trace authentication path for query %d: %v", q, err)
		}
		hPath, err := compTree.Path(idx)
		if err != nil {
			return nil, errMalformedProof("building composition authentication path for query %d: %v", q, err)
		}
		spotChecks[q] = SpotCheckOpening{
			TAtX0: a.TraceLDE()[idx],
			TPath: tPath,
			HAtX0: comp.LDEEvaluations()[idx],
			HPath: hPath,
		}
	}
	logger.Debug("stark: proof generated", "num_spot_checks", len(spotChecks))

	return &Proof{
		AIR: AIRProof{
			TraceRoot:  traceRoot,
			CompRoot:   compRoot,
			Claims:     claims,
			SpotChecks: spotChecks,
		},
		FRI: friProof,
	}, nil
}

// Verify replays the transcript, checks the out-of-domain consistency,
// checks the FRI low-degree proof, and authenticates plus recomputes the
// final spot check at every queried index.
func Verify(f *field.Field, params *Params, boundary []air.BoundaryConstraint, transition air.TransitionConstraint, proof *Proof) error {
	logger := params.logger()
	if err := params.Validate(); err != nil {
		return err
	}
	if proof.FRI == nil {
		return errMalformedProof("proof has no FRI sub-proof")
	}
	if len(proof.FRI.QueryDecommitments) != len(proof.AIR.SpotChecks) {
		return errMalformedProof("FRI has %d queries but AIR has %d spot checks", len(proof.FRI.QueryDecommitments), len(proof.AIR.SpotChecks))
	}

	tr := transcript.New(params.ProtocolID)
	tr.Absorb(proof.AIR.TraceRoot[:])
	alpha1 := tr.SqueezeFieldElement(f)
	alpha2 := tr.SqueezeFieldElement(f)

	tr.Absorb(proof.AIR.CompRoot[:])
	z := tr.SqueezeFieldElement(f)

	claims := proof.AIR.Claims
	if claims == nil || !claims.Z.Equal(z) {
		return errMalformedProof("out-of-domain point in the proof does not match the transcript's challenge")
	}
	absorbClaims(tr, claims)

	betas := [4]*field.FieldElement{
		tr.SqueezeFieldElement(f),
		tr.SqueezeFieldElement(f),
		tr.SqueezeFieldElement(f),
		tr.SqueezeFieldElement(f),
	}

	traceDomain, err := domain.New(f, params.TraceLength)
	if err != nil {
		return errInvalidParams("building trace domain: %v", err)
	}
	g := traceDomain.Generator

	if err := air.VerifyOODConsistency(f, g, params.TraceLength, boundary, transition, alpha1, alpha2, claims); err != nil {
		return err
	}
	logger.Debug("stark: out-of-domain consistency accepted")

	friParams, err := friParamsFor(f, params)
	if err != nil {
		return err
	}
	if err := fri.Verify(f, friParams, proof.FRI, tr); err != nil {
		return err
	}
	logger.Debug("stark: FRI proof accepted")

	ldeDomain, err := domain.New(f, friParams.DomainSize())
	if err != nil {
		return errInvalidParams("rebuilding LDE domain: %v", err)
	}
	ldeDomain = ldeDomain.WithOffset(friParams.Offset)

	for q, qd := range proof.FRI.QueryDecommitments {
		sc := proof.AIR.SpotChecks[q]
		if !merkle.Verify(proof.AIR.TraceRoot, sc.TAtX0.Bytes(), qd.QueryIndex, sc.TPath) {
			return errSpotCheckProof(q)
		}
		if !merkle.Verify(proof.AIR.CompRoot, sc.HAtX0.Bytes(), qd.QueryIndex, sc.HPath) {
			return errSpotCheckProof(q)
		}

		x0 := ldeDomain.At(qd.QueryIndex)
		committedDAtX0 := qd.LayerEvaluations[0]
		if err := air.FinalSpotCheck(g, claims, betas, x0, sc.HAtX0, sc.TAtX0, committedDAtX0); err != nil {
			return err
		}
	}
	logger.Debug("stark: proof verified", "num_spot_checks", len(proof.AIR.SpotChecks))

	return nil
}

func leavesOf(evaluations []*field.FieldElement) [][]byte {
	leaves := make([][]byte, len(evaluations))
	for i, e := range evaluations {
		leaves[i] = e.Bytes()
	}
	return leaves
}

func absorbClaims(tr *transcript.Transcript, claims *air.OODClaims) {
	tr.Absorb(claims.TZ.Bytes())
	tr.Absorb(claims.TZG.Bytes())
	tr.Absorb(claims.TZG2.Bytes())
	tr.Absorb(claims.HZ.Bytes())
}
