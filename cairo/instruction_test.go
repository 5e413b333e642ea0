package cairo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagPositions(t *testing.T) {
	// positions are part of the encoding and must never move
	expected := map[string]int{
		"dst_reg":   FlagDstReg,
		"op0_reg":   FlagOp0Reg,
		"op1_imm":   FlagOp1Imm,
		"op1_fp":    FlagOp1FP,
		"op1_ap":    FlagOp1AP,
		"res_add":   FlagResAdd,
		"res_mul":   FlagResMul,
		"jump_abs":  FlagPCJumpAbs,
		"jump_rel":  FlagPCJumpRel,
		"jnz":       FlagPCJnz,
		"ap_addres": FlagAPAddRes,
		"ap_add1":   FlagAPAdd1,
		"ret":       FlagOpcodeRet,
		"call":      FlagOpcodeCall,
		"assert_eq": FlagOpcodeAssertEq,
	}
	positions := map[string]int{
		"dst_reg": 48, "op0_reg": 49,
		"op1_imm": 50, "op1_fp": 51, "op1_ap": 52,
		"res_add": 53, "res_mul": 54,
		"jump_abs": 55, "jump_rel": 56, "jnz": 57,
		"ap_addres": 58, "ap_add1": 59,
		"ret": 60, "call": 61, "assert_eq": 62,
	}
	for name, got := range expected {
		require.Equal(t, positions[name], got, name)
	}
}

func TestEncodeFields(t *testing.T) {
	ins := Instruction{OffDst: 0x1234, OffOp0: 0xabcd, OffOp1: 0xffff}
	require.Equal(t, uint64(0x0000_ffff_abcd_1234), ins.Encode())

	for bit := FlagsStart; bit < InstructionBits; bit++ {
		word := Instruction{}.With(bit).Encode()
		require.Equal(t, uint64(1)<<bit, word, "bit %d", bit)
		require.True(t, DecodeInstruction(word).Has(bit))
		for other := FlagsStart; other < InstructionBits; other++ {
			if other != bit {
				require.False(t, DecodeInstruction(word).Has(other), "bit %d leaks into %d", bit, other)
			}
		}
	}
}

func TestDecodeIgnoresBit63(t *testing.T) {
	ins := DecodeInstruction(1<<63 | 5)
	require.Equal(t, uint16(5), ins.OffDst)
	require.Equal(t, uint16(0), ins.Flags)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		word := rng.Uint64() >> 1
		require.Equal(t, word, DecodeInstruction(word).Encode())
	}
}

func TestWithWithout(t *testing.T) {
	ins := Instruction{}.With(FlagPCJnz, FlagOpcodeCall)
	require.True(t, ins.Has(FlagPCJnz))
	require.True(t, ins.Has(FlagOpcodeCall))
	ins = ins.Without(FlagPCJnz)
	require.False(t, ins.Has(FlagPCJnz))
	require.True(t, ins.Has(FlagOpcodeCall))
	require.Equal(t, "dst=0 op0=0 op1=0 call", ins.String())

	require.Panics(t, func() { Instruction{}.With(47) })
	require.Panics(t, func() { Instruction{}.Has(63) })
}
