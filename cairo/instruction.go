package cairo

import (
	"fmt"
	"strings"
)

// Instruction word layout, least significant bit first.
//
//	[0,16)  off_dst
//	[16,32) off_op0
//	[32,48) off_op1
//	48      dst_reg      1: fp, 0: ap
//	49      op0_reg      1: fp, 0: ap
//	50..52  op1_src      imm (base pc, size 2), fp, ap; none: base op0
//	53..54  res_logic    add, mul; none: op1
//	55..57  pc_update    jump abs, jump rel, jnz; none: pc + size
//	58..59  ap_update    add res, add 1; none: unchanged
//	60..62  opcode       ret, call, assert-eq
const (
	InstructionBits = 63
	OffsetBits      = 16

	OffDstStart = 0
	OffOp0Start = 16
	OffOp1Start = 32
	FlagsStart  = 48
)

// Flag bit positions in the instruction word.
const (
	FlagDstReg = FlagsStart + iota
	FlagOp0Reg
	FlagOp1Imm
	FlagOp1FP
	FlagOp1AP
	FlagResAdd
	FlagResMul
	FlagPCJumpAbs
	FlagPCJumpRel
	FlagPCJnz
	FlagAPAddRes
	FlagAPAdd1
	FlagOpcodeRet
	FlagOpcodeCall
	FlagOpcodeAssertEq
)

const flagsMask = 1<<(InstructionBits-FlagsStart) - 1

var flagNames = [...]string{
	"dst_fp", "op0_fp", "op1_imm", "op1_fp", "op1_ap",
	"res_add", "res_mul", "jump_abs", "jump_rel", "jnz",
	"ap_add_res", "ap_add1", "ret", "call", "assert_eq",
}

// Instruction is the native form of a decoded instruction word. Flags holds
// word bits [48,63), bit i of Flags being word bit 48+i.
type Instruction struct {
	OffDst uint16
	OffOp0 uint16
	OffOp1 uint16
	Flags  uint16
}

// DecodeInstruction splits a word into its fields. Bits at or above
// InstructionBits are ignored.
func DecodeInstruction(word uint64) Instruction {
	return Instruction{
		OffDst: uint16(word >> OffDstStart),
		OffOp0: uint16(word >> OffOp0Start),
		OffOp1: uint16(word >> OffOp1Start),
		Flags:  uint16(word>>FlagsStart) & flagsMask,
	}
}

// Encode packs the instruction into a word.
func (ins Instruction) Encode() uint64 {
	return uint64(ins.OffDst)<<OffDstStart |
		uint64(ins.OffOp0)<<OffOp0Start |
		uint64(ins.OffOp1)<<OffOp1Start |
		uint64(ins.Flags&flagsMask)<<FlagsStart
}

// Has reports whether the flag at word bit position flag is set.
func (ins Instruction) Has(flag int) bool {
	return ins.Flags&flagMask(flag) != 0
}

// With returns a copy of ins with the given flags set.
func (ins Instruction) With(flags ...int) Instruction {
	for _, f := range flags {
		ins.Flags |= flagMask(f)
	}
	return ins
}

// Without returns a copy of ins with the given flags cleared.
func (ins Instruction) Without(flags ...int) Instruction {
	for _, f := range flags {
		ins.Flags &^= flagMask(f)
	}
	return ins
}

func (ins Instruction) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "dst=%d op0=%d op1=%d", ins.OffDst, ins.OffOp0, ins.OffOp1)
	for i, name := range flagNames {
		if ins.Has(FlagsStart + i) {
			sb.WriteString(" ")
			sb.WriteString(name)
		}
	}
	return sb.String()
}

func flagMask(flag int) uint16 {
	if flag < FlagsStart || flag >= InstructionBits {
		panic(fmt.Sprintf("invalid flag bit %d", flag))
	}
	return 1 << (flag - FlagsStart)
}
