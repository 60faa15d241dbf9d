// Package token defines the lexical tokens produced by the lexer and consumed by
// the parser.
package token

import (
	"fmt"

	"github.com/nicholasprowse/HADLoC/internal/text"
)

// Kind classifies a Token.
type Kind uint8

// Token kinds.
const (
	// Keyword is one of the 28 reserved words in §6 (e.g. "mov", "ldb", "define").
	Keyword Kind = iota

	// Identifier is a label or constant name.
	Identifier

	// Register is one of the six machine registers (X, L, H, M, I, Y).
	Register

	// Integer carries a decoded integer value.
	Integer

	// Symbol is one of ": + - & | ! ( )".
	Symbol

	// InstructionEnd marks a source line boundary between two real tokens. It
	// has no lexeme; its Text span only supplies a coordinate.
	InstructionEnd
)

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "KEYWORD"
	case Identifier:
		return "IDENTIFIER"
	case Register:
		return "REGISTER"
	case Integer:
		return "INTEGER"
	case Symbol:
		return "SYMBOL"
	case InstructionEnd:
		return "INSTRUCTION_END"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Token is a single lexical unit: its Kind, the source text it was lexed from, and
// (for Integer tokens only) the decoded value.
type Token struct {
	Kind  Kind
	Text  text.Text
	Value int32
}

func (t Token) String() string {
	if t.Kind == InstructionEnd {
		return "INSTRUCTION_END"
	}

	return fmt.Sprintf("%s(%q)", t.Kind, t.Text.String())
}

// Lexeme returns the token's source text as a plain string. It is empty for
// InstructionEnd tokens.
func (t Token) Lexeme() string {
	if t.Kind == InstructionEnd {
		return ""
	}

	return t.Text.String()
}

// New builds a token of the given kind from a lexed span.
func New(kind Kind, span text.Text) Token {
	return Token{Kind: kind, Text: span}
}

// NewInteger builds an Integer token carrying the decoded value.
func NewInteger(span text.Text, value int32) Token {
	return Token{Kind: Integer, Text: span, Value: value}
}

// NewEnd builds an InstructionEnd token positioned at span at (the lexer passes the
// first character of the token that begins the new line). It has no lexeme of its
// own; the span only keeps a coordinate for diagnostics.
func NewEnd(at text.Text) Token {
	return Token{Kind: InstructionEnd, Text: at}
}
