// Package transcript implements a Fiat-Shamir transcript: a hash chain that
// derives verifier challenges deterministically from everything the prover
// has sent so far.
package transcript

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

// Transcript is a sponge-like absorb/squeeze hash chain. Absorbing re-hashes
// the current state together with the new data; squeezing re-hashes the
// current state together with a domain-separation tag and returns the fresh
// digest, so that two consecutive squeezes at otherwise-identical state never
// produce the same output.
type Transcript struct {
	state   [32]byte
	squeeze uint64 // monotonically increasing squeeze counter, folded into every squeeze
}

const (
	tagAbsorb  byte = 0x00
	tagSqueeze byte = 0x01
)

// New creates a transcript seeded from protocolID, the fixed byte-string both
// parties agree on ahead of time.
func New(protocolID []byte) *Transcript {
	t := &Transcript{state: sha3.Sum256(protocolID)}
	return t
}

// Absorb appends data to the transcript: state <- H(state || tag || data).
func (t *Transcript) Absorb(data []byte) {
	buf := make([]byte, 0, len(t.state)+1+len(data))
	buf = append(buf, t.state[:]...)
	buf = append(buf, tagAbsorb)
	buf = append(buf, data...)
	t.state = sha3.Sum256(buf)
}

// nextDigest advances the chain and returns the fresh output. Every call
// mixes in a monotonically increasing counter so repeated squeezes at the
// same absorbed state are never correlated.
func (t *Transcript) nextDigest() [32]byte {
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], t.squeeze)
	t.squeeze++

	buf := make([]byte, 0, len(t.state)+1+len(counter))
	buf = append(buf, t.state[:]...)
	buf = append(buf, tagSqueeze)
	buf = append(buf, counter[:]...)
	digest := sha3.Sum256(buf)
	t.state = digest
	return digest
}

// SqueezeFieldElement derives a uniformly-distributed (within the hash's bias
// budget) element of f.
func (t *Transcript) SqueezeFieldElement(f *field.Field) *field.FieldElement {
	digest := t.nextDigest()
	return f.FromBytes(digest[:])
}

// SqueezeIndex derives an index uniformly in [0, domainSize) by interpreting
// the first 8 bytes of a fresh digest as a big-endian u64 reduced modulo
// domainSize. domainSize must be positive.
func (t *Transcript) SqueezeIndex(domainSize int) (int, error) {
	if domainSize <= 0 {
		return 0, fmt.Errorf("transcript: domain size must be positive, got %d", domainSize)
	}
	digest := t.nextDigest()
	v := binary.BigEndian.Uint64(digest[:8])
	return int(v % uint64(domainSize)), nil
}

// SqueezeBytes returns n uniformly-random bytes, hashing as many blocks as
// needed.
func (t *Transcript) SqueezeBytes(n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		digest := t.nextDigest()
		out = append(out, digest[:]...)
	}
	return out[:n]
}

// State returns the transcript's current internal state, for diagnostics and
// tests only; it must never be used to derive challenges directly.
func (t *Transcript) State() [32]byte { return t.state }
