// Command starkdemo exercises the FRI and AIR/STARK pipelines end to end
// against fixed, documented scenarios. It is a thin driver: all proving and
// verification logic lives in internal/fri, internal/air, and pkg/stark.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vybium/vybium-stark-fri/internal/air"
	"github.com/vybium/vybium-stark-fri/internal/fri"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/poly"
	"github.com/vybium/vybium-stark-fri/internal/starkcore/transcript"
	"github.com/vybium/vybium-stark-fri/pkg/stark"
)

func main() {
	scenario := flag.String("scenario", "stark", "which scenario to run: \"stark\" (Fibonacci AIR+FRI) or \"fri\" (bare FRI low-degree proof)")
	verbose := flag.Bool("verbose", false, "enable debug-level logging of phase transitions")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var err error
	switch *scenario {
	case "stark":
		err = runStarkScenario(logger)
	case "fri":
		err = runFRIScenario(logger)
	default:
		fmt.Fprintf(os.Stderr, "unknown scenario %q (want \"stark\" or \"fri\")\n", *scenario)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
		os.Exit(1)
	}
}

// runStarkScenario proves and verifies a length-8 Fibonacci trace end to end
// through the AIR arithmetization and FRI.
func runStarkScenario(logger *slog.Logger) error {
	f := field.DefaultPrimeField

	trace, err := air.GenerateFibonacciTrace(f, 8)
	if err != nil {
		return fmt.Errorf("generating trace: %w", err)
	}

	params, err := stark.NewParams(8, 8, 12, []byte("starkdemo-fibonacci"))
	if err != nil {
		return fmt.Errorf("building params: %w", err)
	}
	params.Logger = logger

	boundary := []air.BoundaryConstraint{
		{Point: 0, Value: f.One()},
		{Point: 1, Value: f.One()},
	}

	prover, err := stark.NewProver(f, params, boundary, air.FibonacciTransition, trace)
	if err != nil {
		return fmt.Errorf("building prover: %w", err)
	}

	proof, err := prover.GenerateProof()
	if err != nil {
		return fmt.Errorf("generating proof: %w", err)
	}
	fmt.Printf("stark: generated proof over a length-%d Fibonacci trace (%d FRI queries)\n", params.TraceLength, len(proof.FRI.QueryDecommitments))

	if err := stark.Verify(f, params, boundary, air.FibonacciTransition, proof); err != nil {
		return fmt.Errorf("verifying proof: %w", err)
	}
	fmt.Println("stark: proof verified")
	return nil
}

// runFRIScenario proves and verifies a plain degree-3 polynomial's
// proximity to low degree, independent of any AIR.
func runFRIScenario(logger *slog.Logger) error {
	f := field.DefaultPrimeField

	// P(x) = x^3 - 3x + 2, i.e. coefficients [2, -3, 0, 1].
	coeffs := []*field.FieldElement{
		f.FromInt64(2),
		f.FromInt64(-3),
		f.FromInt64(0),
		f.FromInt64(1),
	}
	p, err := poly.New(f, coeffs)
	if err != nil {
		return fmt.Errorf("building polynomial: %w", err)
	}

	protocolID := []byte("Educational FRI")
	params, err := fri.NewParams(3, 8, 2, protocolID)
	if err != nil {
		return fmt.Errorf("building params: %w", err)
	}
	params.Logger = logger

	proof, err := fri.Prove(f, p, params, transcript.New(protocolID))
	if err != nil {
		return fmt.Errorf("proving: %w", err)
	}
	fmt.Printf("fri: folded a degree-%d polynomial down to a single value over %d layers\n", p.Degree(), len(proof.LayerCommitments))

	if err := fri.Verify(f, params, proof, transcript.New(protocolID)); err != nil {
		return fmt.Errorf("verifying: %w", err)
	}
	fmt.Println("fri: proof verified")
	return nil
}
