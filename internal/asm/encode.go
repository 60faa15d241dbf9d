// encode.go implements the Encoder of §4.5: a pure function from a resolved
// PendingInstruction to exactly one byte, including the semantic register checks
// the parser's shape validation deliberately leaves to this stage.
package asm

import (
	"github.com/nicholasprowse/HADLoC/internal/diag"
	"github.com/nicholasprowse/HADLoC/internal/text"
)

// fixedOpcodes is the static lookup table for instructions with no operand at
// all. Values are grounded on codewriter.py's FIXED table.
var fixedOpcodes = map[string]byte{
	"nop": 0x01, "hlt": 0x00, "ics": 0x03, "icc": 0x02,
}

// jumpOpcodes is the static lookup table for the jump family, each of which
// takes a target-address operand: `jxx target` expands exactly like `lda
// target` (ldu; mov L H; ldb, or their Ref forms for a forward label reference)
// followed by the bare jump opcode itself. Values are grounded on
// codewriter.py's FIXED table.
var jumpOpcodes = map[string]byte{
	"jmp": 0x1F, "jlt": 0x1C, "jeq": 0x1A, "jgt": 0x19, "jle": 0x1E,
	"jge": 0x1B, "jne": 0x1D, "jcs": 0x12, "jis": 0x14,
}

// unaryOpcodeX and unaryOpcodeLM give the opcode nibble for a unary ALU op,
// selected by whether the single register argument is X (table "X") or L/M
// (table "LM").
var unaryOpcodeX = map[ALUOp]byte{OpNot: 0x0, OpNeg: 0x8, OpInc: 0xC, OpDec: 0x4}
var unaryOpcodeLM = map[ALUOp]byte{OpNot: 0x3, OpNeg: 0xF, OpInc: 0xB, OpDec: 0x7}

// binaryOpcode is the opcode nibble for and/or/add; sub is computed separately
// because it is not commutative.
var binaryOpcode = map[ALUOp]byte{OpAnd: 0xA, OpOr: 0xE, OpAdd: 0x9}

// Encode converts a single resolved Instruction into its byte. file is used only
// to tag diagnostics.
func Encode(file string, instr Instruction) (byte, error) {
	switch ins := instr.(type) {
	case Fixed:
		return ins.Opcode, nil

	case Ldb:
		return encodeLdb(file, ins)

	case Ldu:
		return encodeLdb(file, Ldb(ins))

	case LdbRef, LduRef:
		return 0, diag.EncodingError("unresolved label reference reached the encoder")

	case Mov:
		return encodeMov(file, ins)

	case Opd:
		return encodeOp(file, ins.Reg, ins.Pos, true)

	case Opi:
		return encodeOp(file, ins.Reg, ins.Pos, false)


	case Arith:
		return encodeArith(file, ins)

	default:
		return 0, diag.EncodingError("unknown instruction type")
	}
}

func encodeLdb(_ string, ins Ldb) (byte, error) {
	return 0x80 | ins.Value, nil
}

func encodeMov(file string, m Mov) (byte, error) {
	if m.Src == m.Dst {
		return fixedOpcodes["nop"], nil
	}

	if m.Src == RegH {
		return 0, diag.ArgumentError(file, m.Pos, "H cannot be used as a mov source")
	}

	if m.Dst == RegI {
		return 0, diag.ArgumentError(file, m.Pos, "I cannot be used as a mov destination")
	}

	var s byte
	if m.Dst == RegM || m.Src == RegY {
		s = 1
	}

	return 0x20 | s<<4 | m.Dst.code()<<2 | m.Src.code(), nil
}

func encodeOp(file string, reg Register, pos text.Text, isOpd bool) (byte, error) {
	if reg == RegY || reg == RegH {
		return 0, diag.ArgumentError(file, pos, "Y and H are not valid operands of opd/opi")
	}

	var d byte
	if isOpd {
		d = 1
	}

	return 0x08 | d<<2 | reg.code(), nil
}

func encodeArith(file string, a Arith) (byte, error) {
	if a.Dst != RegX && a.Dst != RegL {
		return 0, diag.ArgumentError(file, a.Pos, "arithmetic destination must be X or L")
	}

	if isIYH(a.Arg1) {
		return 0, diag.ArgumentError(file, a.Pos, "I, Y and H are not valid arithmetic operands")
	}

	if a.HasArg2 && isIYH(a.Arg2) {
		return 0, diag.ArgumentError(file, a.Pos, "I, Y and H are not valid arithmetic operands")
	}

	if a.HasArg2 {
		if a.Arg1 == RegX && a.Arg2 == RegX {
			return 0, diag.ArgumentError(file, a.Pos, "both arithmetic operands cannot be X")
		}

		if a.Arg1 != RegX && a.Arg2 != RegX {
			return 0, diag.ArgumentError(file, a.Pos, "at least one arithmetic operand must be X")
		}
	}

	var x byte
	if a.Dst == RegX {
		x = 1
	}

	var m byte
	var opcode byte

	if a.Op.unary() {
		if a.Arg1 == RegM {
			m = 1
		}

		if a.Arg1 == RegX {
			opcode = unaryOpcodeX[a.Op]
		} else {
			opcode = unaryOpcodeLM[a.Op]
		}
	} else {
		if a.Arg1 == RegM || a.Arg2 == RegM {
			m = 1
		}

		if a.Op == OpSub {
			if a.Arg1 == RegX {
				opcode = 0xD
			} else {
				opcode = 0x5
			}
		} else {
			opcode = binaryOpcode[a.Op]
		}
	}

	return 0x40 | x<<5 | m<<4 | opcode, nil
}

func isIYH(r Register) bool {
	return r == RegI || r == RegY || r == RegH
}
