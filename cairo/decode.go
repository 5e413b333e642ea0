package cairo

import (
	"github.com/consensys/gnark/frontend"

	"github.com/PolyhedraZK/ObliviousCairo/std/bitslice"
)

// Decoded holds the fields of an instruction word inside a circuit. Every
// flag is a boolean digit of the word.
type Decoded struct {
	Bits []frontend.Variable

	OffDst frontend.Variable
	OffOp0 frontend.Variable
	OffOp1 frontend.Variable

	DstReg frontend.Variable
	Op0Reg frontend.Variable

	Op1Imm frontend.Variable
	Op1FP  frontend.Variable
	Op1AP  frontend.Variable

	ResAdd frontend.Variable
	ResMul frontend.Variable

	PCJumpAbs frontend.Variable
	PCJumpRel frontend.Variable
	PCJnz     frontend.Variable

	APAddRes frontend.Variable
	APAdd1   frontend.Variable

	OpcodeRet      frontend.Variable
	OpcodeCall     frontend.Variable
	OpcodeAssertEq frontend.Variable
}

// Decode splits word into InstructionBits digits and slices out every field.
// A word of InstructionBits bits or more makes the system unsatisfiable.
func Decode(api frontend.API, word frontend.Variable) Decoded {
	b := bitslice.Decompose(api, word, InstructionBits)
	return Decoded{
		Bits: b,

		OffDst: bitslice.Slice(api, b, OffDstStart, OffDstStart+OffsetBits),
		OffOp0: bitslice.Slice(api, b, OffOp0Start, OffOp0Start+OffsetBits),
		OffOp1: bitslice.Slice(api, b, OffOp1Start, OffOp1Start+OffsetBits),

		DstReg: b[FlagDstReg],
		Op0Reg: b[FlagOp0Reg],

		Op1Imm: b[FlagOp1Imm],
		Op1FP:  b[FlagOp1FP],
		Op1AP:  b[FlagOp1AP],

		ResAdd: b[FlagResAdd],
		ResMul: b[FlagResMul],

		PCJumpAbs: b[FlagPCJumpAbs],
		PCJumpRel: b[FlagPCJumpRel],
		PCJnz:     b[FlagPCJnz],

		APAddRes: b[FlagAPAddRes],
		APAdd1:   b[FlagAPAdd1],

		OpcodeRet:      b[FlagOpcodeRet],
		OpcodeCall:     b[FlagOpcodeCall],
		OpcodeAssertEq: b[FlagOpcodeAssertEq],
	}
}
