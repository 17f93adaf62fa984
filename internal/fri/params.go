package fri

import (
	"log/slog"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

// Params is the protocol-level configuration for a FRI instance: the
// claimed degree bound, the blowup factor, and the per-proof query count.
// NewParams validates the values, and Prove and Verify validate them again
// before use; callers may set Offset and Logger on the returned value.
type Params struct {
	// ClaimedDegree is the upper bound on the committed polynomial's degree.
	ClaimedDegree int
	// BlowupFactor is the power-of-two expansion ratio between the claimed
	// degree and the initial evaluation domain.
	BlowupFactor int
	// NumQueries is the number of query indices sampled per proof.
	NumQueries int
	// FinalLayerSize is the evaluation-vector length at which folding stops.
	// Fold-to-size-1 (the canonical choice here) sets this to 1.
	FinalLayerSize int
	// ProtocolID seeds the Fiat-Shamir transcript; both parties must agree on it.
	ProtocolID []byte
	// Offset, if non-nil, makes the initial domain the coset
	// {Offset * generator^i}, the coset variant used when FRI runs directly
	// on a caller's LDE domain (e.g. a composition polynomial's evaluations)
	// rather than a fresh plain subgroup. Nil means offset 1.
	Offset *field.FieldElement
	// Logger receives phase-boundary diagnostics (per-layer commit, query
	// sampling). Nil falls back to slog.Default(); never logged from inside
	// per-element loops.
	Logger *slog.Logger
}

func (p *Params) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// NewParams builds Params with FinalLayerSize defaulted to 1 (fold to a
// single value), validating before returning.
func NewParams(claimedDegree, blowupFactor, numQueries int, protocolID []byte) (*Params, error) {
	p := &Params{
		ClaimedDegree:  claimedDegree,
		BlowupFactor:   blowupFactor,
		NumQueries:     numQueries,
		FinalLayerSize: 1,
		ProtocolID:     protocolID,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// DomainSize returns the initial evaluation domain's size.
func (p *Params) DomainSize() int {
	return (p.ClaimedDegree + 1) * p.BlowupFactor
}

// Validate checks Params for internal consistency.
func (p *Params) Validate() error {
	if p.ClaimedDegree < 0 {
		return errInvalidParams("claimed degree must be non-negative, got %d", p.ClaimedDegree)
	}
	if !isPowerOfTwo(p.BlowupFactor) {
		return errInvalidParams("blowup factor must be a power of two, got %d", p.BlowupFactor)
	}
	if p.NumQueries < 1 {
		return errInvalidParams("num queries must be at least 1, got %d", p.NumQueries)
	}
	if !isPowerOfTwo(p.DomainSize()) {
		return errInvalidParams("(claimed_degree+1)*blowup_factor must be a power of two, got %d", p.DomainSize())
	}
	if !isPowerOfTwo(p.FinalLayerSize) || p.FinalLayerSize < 1 || p.FinalLayerSize > p.DomainSize() {
		return errInvalidParams("final layer size must be a power of two in [1, domain size], got %d", p.FinalLayerSize)
	}
	if len(p.ProtocolID) == 0 {
		return errInvalidParams("protocol id must not be empty")
	}
	return nil
}
