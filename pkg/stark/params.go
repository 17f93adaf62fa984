package stark

import "log/slog"

// Params configures one end-to-end STARK instance: the trace's shape, the
// low-degree-extension blowup, and the query count both Prove and Verify
// derive their FRI parameters from. Both parties must agree on an identical
// Params and ProtocolID ahead of time; nothing in Params is secret.
type Params struct {
	// TraceLength is n, the execution trace's length. Must be a power of two
	// of at least 2.
	TraceLength int
	// BlowupFactor is the power-of-two ratio between the trace domain and
	// the low-degree-extension domain the constraint quotients and the FRI
	// folding kernel run over.
	BlowupFactor int
	// NumFRIQueries is the number of query indices FRI samples per proof.
	NumFRIQueries int
	// ProtocolID seeds the shared Fiat-Shamir transcript.
	ProtocolID []byte
	// Logger receives phase-boundary diagnostics from both the AIR layer and
	// the FRI sub-proof it delegates to. Nil falls back to slog.Default().
	Logger *slog.Logger
}

func (p *Params) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// NewParams builds Params, validating before returning.
func NewParams(traceLength, blowupFactor, numFRIQueries int, protocolID []byte) (*Params, error) {
	p := &Params{
		TraceLength:   traceLength,
		BlowupFactor:  blowupFactor,
		NumFRIQueries: numFRIQueries,
		ProtocolID:    protocolID,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// Validate checks Params for internal consistency. It does not depend on any
// trace or constraint set, so both the prover and the verifier can call it
// independently before trusting a Params value.
func (p *Params) Validate() error {
	if !isPowerOfTwo(p.TraceLength) || p.TraceLength < 2 {
		return errInvalidParams("trace length must be a power of two of at least 2, got %d", p.TraceLength)
	}
	if !isPowerOfTwo(p.BlowupFactor) {
		return errInvalidParams("blowup factor must be a power of two, got %d", p.BlowupFactor)
	}
	if p.NumFRIQueries < 1 {
		return errInvalidParams("num FRI queries must be at least 1, got %d", p.NumFRIQueries)
	}
	if len(p.ProtocolID) == 0 {
		return errInvalidParams("protocol id must not be empty")
	}
	return nil
}

// ldeDomainSize returns the size of the coset low-degree-extension domain the
// constraint quotients and FRI both run over.
func (p *Params) ldeDomainSize() int { return p.TraceLength * p.BlowupFactor }
