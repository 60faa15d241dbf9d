package asm

//go:generate stringer -type=ALUOp

// ALUOp is one of the eight arithmetic/logic keywords recognized by the parser.
// Source-level `sub` encodes to one of two machine opcodes depending on which
// operand is X; see encode.go.
type ALUOp uint8

const (
	OpNot ALUOp = iota
	OpNeg
	OpInc
	OpDec
	OpSub
	OpAnd
	OpOr
	OpAdd
)

// aluKeywords maps the lexeme of an arithmetic keyword to its ALUOp.
var aluKeywords = map[string]ALUOp{
	"not": OpNot, "neg": OpNeg, "inc": OpInc, "dec": OpDec,
	"sub": OpSub, "and": OpAnd, "or": OpOr, "add": OpAdd,
}

// unary reports whether op takes a single register argument.
func (op ALUOp) unary() bool {
	switch op {
	case OpNot, OpNeg, OpInc, OpDec:
		return true
	default:
		return false
	}
}
