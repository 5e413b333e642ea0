// Command cairostep executes steps of a Cairo memory image and checks or
// proves them with the oblivious step circuit.
//
//	LOOKUP_BITS=16 cairostep -input step.json -steps 4 -mode groth16 -out regs.bin -proof step.proof -vk step.vk
//	cairostep -verify -mode groth16 -proof step.proof -vk step.vk
//
// The public witness of a proof is stored next to it, with a .public suffix.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"

	oblivious "github.com/PolyhedraZK/ObliviousCairo"
	"github.com/PolyhedraZK/ObliviousCairo/cairo"
	"github.com/PolyhedraZK/ObliviousCairo/config"
	"github.com/PolyhedraZK/ObliviousCairo/field"
	"github.com/PolyhedraZK/ObliviousCairo/input"
	"github.com/PolyhedraZK/ObliviousCairo/utils"
)

var errNoProofFiles = errors.New("-proof and -vk are required to verify")

// artifacts are the files a run writes, each skipped when empty.
type artifacts struct {
	Registers string
	Proof     string
	VK        string
}

func publicPath(proof string) string {
	return proof + ".public"
}

func main() {
	logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger())
	log := logger.Logger()

	cfg := config.Default()
	var inputPath string
	var verifyOnly bool
	var out artifacts
	flag.StringVar(&inputPath, "input", "", "step witness, .json or .cbor")
	flag.StringVar(&out.Registers, "out", "", "file receiving the final registers")
	flag.StringVar(&out.Proof, "proof", "", "proof file in groth16 and plonk modes")
	flag.StringVar(&out.VK, "vk", "", "verifying key file in groth16 and plonk modes")
	flag.BoolVar(&verifyOnly, "verify", false, "verify -proof against -vk instead of running")
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatal().Strs("args", flag.Args()).Msg("unknown arguments")
	}

	if verifyOnly {
		if err := verify(cfg, out); err != nil {
			log.Fatal().Err(err).Msg("verify")
		}
		log.Info().Str("proof", out.Proof).Msg("proof verified")
		return
	}

	if err := cfg.LoadEnv(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if inputPath == "" {
		log.Fatal().Msg("-input is required")
	}
	if err := run(cfg, inputPath, out); err != nil {
		log.Fatal().Err(err).Msg("cairostep")
	}
}

func run(cfg *config.Config, inputPath string, out artifacts) error {
	log := logger.Logger()
	if err := cfg.Validate(); err != nil {
		return err
	}
	f, err := cfg.Field()
	if err != nil {
		return err
	}

	in, err := input.Load(inputPath)
	if err != nil {
		return err
	}
	memory, s, err := in.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	m := &cairo.Machine{Field: f, Memory: memory, Strict: cfg.MachineStrict()}
	trace, err := m.Run(s, cfg.Steps)
	if err != nil {
		return err
	}
	final := trace[len(trace)-1]
	log.Info().Stringer("initial", s).Stringer("final", final).Int("steps", cfg.Steps).Msg("executed")

	circuit, assignment := buildCircuit(cfg, memory, s, final)
	if err := prove(cfg, f, circuit, assignment, out); err != nil {
		return err
	}

	if out.Registers != "" {
		if err := os.WriteFile(out.Registers, encodeOutput(f, cfg.Steps, final), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func buildCircuit(cfg *config.Config, memory []*big.Int, s, final cairo.State) (frontend.Circuit, frontend.Circuit) {
	if cfg.Steps == 1 {
		return cairo.NewStepCircuit(len(memory), cfg.StepConfig()), cairo.NewStepAssignment(memory, s, final)
	}
	return cairo.NewTraceCircuit(len(memory), cfg.Steps, cfg.StepConfig()), cairo.NewTraceAssignment(memory, s, final)
}

func prove(cfg *config.Config, f *field.Field, circuit, assignment frontend.Circuit, out artifacts) error {
	backend := oblivious.Groth16
	if cfg.Mode != config.ModeMock {
		var err error
		if backend, err = oblivious.BackendFromString(cfg.Mode); err != nil {
			return err
		}
	}
	cr, err := oblivious.Compile(f.Curve(), backend, circuit)
	if err != nil {
		return err
	}
	if cfg.Mode == config.ModeMock {
		return cr.Check(assignment)
	}

	keys, err := cr.Setup()
	if err != nil {
		return err
	}
	proof, err := cr.Prove(keys, assignment)
	if err != nil {
		return err
	}
	if err := keys.Verify(proof); err != nil {
		return err
	}
	if out.Proof != "" {
		if err := writeFile(out.Proof, proof); err != nil {
			return err
		}
		if err := writeFile(publicPath(out.Proof), proof.PublicWitness()); err != nil {
			return err
		}
	}
	if out.VK != "" {
		if err := writeFile(out.VK, writerFunc(keys.WriteVerifyingKey)); err != nil {
			return err
		}
	}
	return nil
}

// verify checks a proof written by a previous run.
func verify(cfg *config.Config, in artifacts) error {
	if in.Proof == "" || in.VK == "" {
		return errNoProofFiles
	}
	backend, err := oblivious.BackendFromString(cfg.Mode)
	if err != nil {
		return err
	}
	f, err := cfg.Field()
	if err != nil {
		return err
	}

	vkFile, err := os.Open(in.VK)
	if err != nil {
		return err
	}
	defer vkFile.Close()
	keys, err := oblivious.ReadVerifyingKey(f.Curve(), backend, vkFile)
	if err != nil {
		return fmt.Errorf("%s: %w", in.VK, err)
	}

	proofFile, err := os.Open(in.Proof)
	if err != nil {
		return err
	}
	defer proofFile.Close()
	publicFile, err := os.Open(publicPath(in.Proof))
	if err != nil {
		return err
	}
	defer publicFile.Close()
	proof, err := oblivious.ReadProof(f.Curve(), backend, proofFile, publicFile)
	if err != nil {
		return fmt.Errorf("%s: %w", in.Proof, err)
	}
	return keys.Verify(proof)
}

type writerFunc func(io.Writer) (int64, error)

func (w writerFunc) WriteTo(out io.Writer) (int64, error) {
	return w(out)
}

func writeFile(path string, src io.WriterTo) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := src.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return out.Close()
}

// encodeOutput lays out the step count followed by the final pc, ap and fp.
func encodeOutput(f *field.Field, steps int, final cairo.State) []byte {
	o := utils.NewOutputBuf(f.FieldBitLen())
	o.AppendUint32(uint32(steps))
	o.AppendBigInt(final.PC)
	o.AppendBigInt(final.AP)
	o.AppendBigInt(final.FP)
	return o.Bytes()
}
