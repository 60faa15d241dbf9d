package asm

import "github.com/nicholasprowse/HADLoC/internal/text"

// Instruction is one variant of the PendingInstruction sum type produced by the
// parser and consumed by the label resolver and encoder. The resolver
// pattern-matches on the concrete type; new variants must be added to both the
// resolver's re-expansion switch and the encoder's dispatch.
type Instruction interface {
	// Span returns the source span this instruction was parsed from, for
	// diagnostics raised while resolving or encoding it.
	Span() text.Text
}

// Fixed is an instruction whose encoding never depends on operands (nop, hlt,
// the jump family, icc/ics).
type Fixed struct {
	Opcode byte
	Pos    text.Text
}

func (f Fixed) Span() text.Text { return f.Pos }

// Ldb loads the low 7 bits of an already-known value into L. Value must be < 0x80.
type Ldb struct {
	Value byte
	Pos   text.Text
}

func (l Ldb) Span() text.Text { return l.Pos }

// Ldu loads the high 7 bits (bits 8-14) of an already-known value into L, to be
// moved into H by the lda expansion.
type Ldu struct {
	Value byte
	Pos   text.Text
}

func (l Ldu) Span() text.Text { return l.Pos }

// LdbRef is a placeholder for an ldb whose argument is a label not yet resolved.
// The resolver replaces it with an Ldb (possibly followed by an Arith `not L L`).
type LdbRef struct {
	Label string
	Pos   text.Text
}

func (l LdbRef) Span() text.Text { return l.Pos }

// LduRef is the Ldu counterpart of LdbRef.
type LduRef struct {
	Label string
	Pos   text.Text
}

func (l LduRef) Span() text.Text { return l.Pos }

// Mov moves Src into Dst.
type Mov struct {
	Dst, Src Register
	Pos      text.Text
}

func (m Mov) Span() text.Text { return m.Pos }

// Opd writes Reg to the display's data port.
type Opd struct {
	Reg Register
	Pos text.Text
}

func (o Opd) Span() text.Text { return o.Pos }

// Opi writes Reg to the display's instruction port.
type Opi struct {
	Reg Register
	Pos text.Text
}

func (o Opi) Span() text.Text { return o.Pos }

// Arith is an ALU operation. Arg2 and HasArg2 are unused for unary ops.
type Arith struct {
	Op      ALUOp
	Dst     Register
	Arg1    Register
	Arg2    Register
	HasArg2 bool
	Pos     text.Text
}

func (a Arith) Span() text.Text { return a.Pos }
