package main

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	oblivious "github.com/PolyhedraZK/ObliviousCairo"
	"github.com/PolyhedraZK/ObliviousCairo/cairo"
	"github.com/PolyhedraZK/ObliviousCairo/config"
	"github.com/PolyhedraZK/ObliviousCairo/field"
	"github.com/PolyhedraZK/ObliviousCairo/input"
	"github.com/PolyhedraZK/ObliviousCairo/utils"
)

// writeProgram stores a loop that walks ap over three non-zero cells and
// then calls, five steps in total.
func writeProgram(t *testing.T, name string) string {
	loop := cairo.Instruction{OffOp1: 1}.With(cairo.FlagOp1Imm, cairo.FlagPCJnz, cairo.FlagAPAdd1)
	call := cairo.Instruction{}.With(cairo.FlagOpcodeCall)
	memory := make([]*big.Int, 12)
	for i := range memory {
		memory[i] = new(big.Int)
	}
	memory[0].SetUint64(loop.Encode())
	memory[2].SetUint64(call.Encode())
	memory[4].SetInt64(3)
	memory[5].SetInt64(2)
	memory[6].SetInt64(1)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, input.Save(path, input.New(memory, cairo.NewState(0, 4, 0))))
	return path
}

func testConfig(mode string, steps int) *config.Config {
	cfg := config.Default()
	cfg.LookupBits = 8
	cfg.Mode = mode
	cfg.Steps = steps
	cfg.CheckIndices = true
	return cfg
}

func TestRun(t *testing.T) {
	for _, tc := range []struct {
		name  string
		file  string
		mode  string
		steps int
		final cairo.State
	}{
		{"mock_one_step", "step.json", config.ModeMock, 1, cairo.NewState(0, 5, 0)},
		{"mock_trace", "step.cbor", config.ModeMock, 5, cairo.NewState(3, 10, 10)},
		{"groth16_trace", "step.json", config.ModeGroth16, 4, cairo.NewState(2, 8, 0)},
		{"plonk_step", "step.json", config.ModePlonk, 1, cairo.NewState(0, 5, 0)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(tc.mode, tc.steps)
			in := writeProgram(t, tc.file)
			out := outputs(t)
			require.NoError(t, run(cfg, in, out))

			b, err := os.ReadFile(out.Registers)
			require.NoError(t, err)
			f, err := cfg.Field()
			require.NoError(t, err)
			steps, final := decodeOutput(f, b)
			require.Equal(t, tc.steps, steps)
			require.True(t, final.Equal(tc.final), final.String())

			if tc.mode == config.ModeMock {
				for _, path := range []string{out.Proof, publicPath(out.Proof), out.VK} {
					_, err = os.Stat(path)
					require.ErrorIs(t, err, os.ErrNotExist)
				}
				return
			}
			require.NoError(t, verify(cfg, out))
		})
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	cfg := testConfig(config.ModeGroth16, 1)
	first, second := outputs(t), outputs(t)
	require.NoError(t, run(cfg, writeProgram(t, "step.json"), first))
	require.NoError(t, run(cfg, writeProgram(t, "step.json"), second))

	require.NoError(t, verify(cfg, second))
	require.Error(t, verify(cfg, artifacts{Proof: first.Proof, VK: second.VK}))
	require.ErrorIs(t, verify(cfg, artifacts{Proof: first.Proof}), errNoProofFiles)

	cfg.Mode = config.ModeMock
	require.ErrorIs(t, verify(cfg, first), oblivious.ErrUnknownBackend)
}

func outputs(t *testing.T) artifacts {
	dir := t.TempDir()
	return artifacts{
		Registers: filepath.Join(dir, "regs.bin"),
		Proof:     filepath.Join(dir, "step.proof"),
		VK:        filepath.Join(dir, "step.vk"),
	}
}

func TestRunStrictFailure(t *testing.T) {
	// the seventh step reaches [ap+3] past the end of memory
	cfg := testConfig(config.ModeMock, 8)
	err := run(cfg, writeProgram(t, "step.json"), artifacts{})
	require.ErrorIs(t, err, cairo.ErrAddressOutOfRange)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := testConfig("stark", 1)
	require.ErrorIs(t, run(cfg, writeProgram(t, "step.json"), artifacts{}), config.ErrInvalidConfig)
}

func decodeOutput(f *field.Field, b []byte) (int, cairo.State) {
	i := utils.NewInputBuf(b, f.FieldBitLen())
	steps := int(i.ReadUint32())
	final := cairo.State{PC: i.ReadBigInt(), AP: i.ReadBigInt(), FP: i.ReadBigInt()}
	if i.Len() != 0 {
		panic(fmt.Sprintf("%d trailing bytes", i.Len()))
	}
	return steps, final
}
