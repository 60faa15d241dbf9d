/*
Package asm implements the assembler for HADLoC, an 8-bit didactic computer.

The assembler generates machine code from HDC assembly, a small language of fixed
instructions, register-to-register moves, ALU ops and a handful of pseudo-
instructions for loading wide or negative immediates.

	loop:
	    ldb 5
	    mov L X
	    jmp loop

See Grammar for the constant-expression language accepted by ldb/ldu/lda and
define. Assembling proceeds in four strictly sequential passes: lexing (package
lexer), parsing (Parse), label resolution (Resolve) and encoding (Encode); Assemble
runs all four and returns the final byte image plus any non-fatal warnings about
unused labels or constants.
*/
package asm

import (
	"github.com/nicholasprowse/HADLoC/internal/diag"
	"github.com/nicholasprowse/HADLoC/internal/lexer"
	"github.com/nicholasprowse/HADLoC/internal/text"
)

// Grammar declares the syntax of HDC assembly in EBNF (with some liberties).
var Grammar = `
program       = { line } ;
line          = definition | ( [ label ] [ instruction ] ) ;
definition    = "define" identifier const-expr ;
label         = identifier ':' ;
instruction   = fixed-instr | move-instr | op-instr | arith-instr | load-pseudo ;
load-pseudo   = ( "ldb" | "ldu" | "lda" ) const-expr ;
const-expr    = identifier /* undefined: label reference */
              | or-expr ;
or-expr       = and-expr { '|' and-expr } ;
and-expr      = add-expr { '&' add-expr } ;
add-expr      = unary-expr { ( '+' | '-' ) unary-expr } ;
unary-expr    = { '-' | '!' } primary ;
primary       = identifier /* defined: constant value */
              | integer
              | '(' or-expr ')' ;
`

// Result is the output of a complete, successful assembly.
type Result struct {
	// Code is the final machine-code byte image. Code[0] and Code[1] are always
	// 0x01 (nop); the last byte is always 0x00 (hlt).
	Code []byte

	// Warnings holds non-fatal diagnostics: unused labels and constants.
	Warnings []diag.Warning
}

// Assemble runs the full pipeline -- lex, parse, resolve, encode -- over src and
// returns the machine code image. file names the source for diagnostics; it may
// be empty if src did not come from a file.
func Assemble(file string, src text.Text) (*Result, error) {
	tokens, err := lexer.Lex(file, src)
	if err != nil {
		return nil, err
	}

	symbols, instrs, warnings, err := Parse(file, tokens)
	if err != nil {
		return nil, err
	}

	instrs, err = Resolve(file, symbols, instrs)
	if err != nil {
		return nil, err
	}

	code := make([]byte, len(instrs))

	for i, instr := range instrs {
		b, err := Encode(file, instr)
		if err != nil {
			return nil, err
		}

		code[i] = b
	}

	return &Result{Code: code, Warnings: warnings}, nil
}
