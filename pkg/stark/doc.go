// Package stark assembles the FRI folding protocol and a single-column AIR
// polynomial IOP into one pedagogical STARK prover and verifier.
//
// # Quick Start
//
// Proving and verifying a Fibonacci-style trace:
//
//	f := field.DefaultPrimeField
//	trace, _ := air.GenerateFibonacciTrace(f, 8)
//
//	params, _ := stark.NewParams(8, 8, 12, []byte("example-protocol"))
//	boundary := []air.BoundaryConstraint{
//		{Point: 0, Value: f.One()},
//		{Point: 1, Value: f.One()},
//	}
//
//	prover, err := stark.NewProver(f, params, boundary, air.FibonacciTransition, trace)
//	if err != nil {
//		log.Fatal(err)
//	}
//	proof, err := prover.GenerateProof()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := stark.Verify(f, params, boundary, air.FibonacciTransition, proof); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// stark.Prover orchestrates internal/air (trace arithmetization, the
// composition polynomial, the out-of-domain consistency check, and the DEEP
// composition) and internal/fri (the low-degree folding proof over the DEEP
// polynomial), sharing one Fiat-Shamir transcript across both. stark.Verify
// replays the same sequence of absorbs and squeezes and surfaces the first
// typed error encountered from either layer.
//
// # Non-goals
//
// This package targets legibility over production security: it does not
// select concrete security parameters, apply zero-knowledge masking, support
// recursive proof composition, or arithmetize multi-column traces.
package stark
