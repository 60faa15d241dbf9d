// Package diag implements the source-position-aware diagnostics shared by the
// lexer, parser, label resolver and encoder: SyntaxError, ArgumentError, NameError
// and ValueError, each of which carries a span into the original source so the
// caller can render a caret pointing at the offending characters.
package diag

import (
	"fmt"
	"strings"

	"github.com/nicholasprowse/HADLoC/internal/text"
)

// Kind discriminates the error kinds in spec §7.
type Kind uint8

const (
	// Syntax reports a malformed token, unclosed comment, misplaced symbol or
	// unexpected token.
	Syntax Kind = iota

	// Argument reports a wrong number or kind of operands, or a semantically
	// invalid register in an otherwise shape-valid instruction.
	Argument

	// Name reports use of an undefined identifier, or one name defined twice.
	Name

	// Value reports an integer literal or computed constant out of range.
	Value

	// Encoding is reached only if an earlier phase let an invalid instruction
	// through to the encoder -- a bug indicator, not a user error.
	Encoding
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case Argument:
		return "Argument"
	case Name:
		return "Name"
	case Value:
		return "Value"
	case Encoding:
		return "Encoding"
	default:
		return "Unknown"
	}
}

// Error is a diagnostic pointing at a span of the original source.
type Error struct {
	Kind Kind
	File string
	Msg  string
	Pos  text.Text // the offending span
}

// New builds a diagnostic for the given span. file may be empty when the source did
// not come from a file (see spec §7).
func New(kind Kind, file string, pos text.Text, msg string) *Error {
	return &Error{Kind: kind, File: file, Msg: msg, Pos: pos}
}

func (e *Error) Error() string {
	var b strings.Builder

	c := e.Pos.Coordinate(0)

	if e.File != "" {
		fmt.Fprintf(&b, "%s error in %q, line %d: %s\n", e.Kind, e.File, c.Line+1, e.Msg)
	} else {
		fmt.Fprintf(&b, "%s error at line %d: %s\n", e.Kind, c.Line+1, e.Msg)
	}

	if line := e.Pos.Line(0); line >= 0 {
		fmt.Fprintf(&b, "%s\n%s%s\n",
			e.Pos.SourceLine(c.Line),
			strings.Repeat(" ", c.Column),
			strings.Repeat("^", max(1, e.Pos.Len())),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Is reports whether target is a *Error of the same Kind, so callers can test with
// errors.Is(err, diag.New(diag.Name, "", text.Empty(), "")).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}

	return other.Kind == e.Kind
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// SyntaxError, ArgumentError, NameError and ValueError are convenience
// constructors for the four user-facing diagnostic kinds in spec §7.
func SyntaxError(file string, pos text.Text, msg string) *Error {
	return New(Syntax, file, pos, msg)
}

func ArgumentError(file string, pos text.Text, msg string) *Error {
	return New(Argument, file, pos, msg)
}

func NameError(file string, pos text.Text, msg string) *Error {
	return New(Name, file, pos, msg)
}

func ValueError(file string, pos text.Text, msg string) *Error {
	return New(Value, file, pos, msg)
}

// EncodingError reports an internal bug: an instruction reached the encoder in a
// state the parser should never have produced.
func EncodingError(msg string) *Error {
	return New(Encoding, "", text.Empty(), msg)
}

// Warning is a non-fatal diagnostic: an unused label or constant. Unlike Error,
// warnings never abort a phase; they are accumulated and returned alongside a
// successful result.
type WarningKind uint8

const (
	UnusedLabel WarningKind = iota
	UnusedConstant
)

func (k WarningKind) String() string {
	if k == UnusedLabel {
		return "unused label"
	}

	return "unused constant"
}

type Warning struct {
	Kind WarningKind
	Name string
	Pos  text.Text
}

func (w Warning) String() string {
	c := w.Pos.Coordinate(0)
	return fmt.Sprintf("warning: %s %q at line %d", w.Kind, w.Name, c.Line+1)
}
