package asm

import "github.com/nicholasprowse/HADLoC/internal/text"

// expandLoadBytes implements the ldb/ldu pseudo-instruction expansion rule shared
// by the parser (for an already-known value) and the label resolver (once a
// forward label reference becomes known): one Ldb/Ldu if bit 7 of the relevant
// byte is clear, or the complemented byte followed by `not L L` otherwise.
func expandLoadBytes(kind string, value int32, pos text.Text) []Instruction {
	var n byte
	if kind == "ldb" {
		n = byte(value & 0xFF)
	} else {
		n = byte((value >> 8) & 0xFF)
	}

	if n&0x80 == 0 {
		if kind == "ldb" {
			return []Instruction{Ldb{Value: n, Pos: pos}}
		}

		return []Instruction{Ldu{Value: n, Pos: pos}}
	}

	comp := (^n) & 0x7F

	var first Instruction
	if kind == "ldb" {
		first = Ldb{Value: comp, Pos: pos}
	} else {
		first = Ldu{Value: comp, Pos: pos}
	}

	return []Instruction{first, Arith{Op: OpNot, Dst: RegL, Arg1: RegL, Pos: pos}}
}
