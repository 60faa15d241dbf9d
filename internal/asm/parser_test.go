package asm_test

import (
	"testing"

	"github.com/nicholasprowse/HADLoC/internal/asm"
	"github.com/nicholasprowse/HADLoC/internal/lexer"
	"github.com/nicholasprowse/HADLoC/internal/text"
)

func parse(t *testing.T, src string) (*asm.SymbolTable, []asm.Instruction) {
	t.Helper()

	tokens, err := lexer.Lex("test.hdc", text.New(src, 0))
	if err != nil {
		t.Fatalf("Lex: unexpected error: %s", err)
	}

	symbols, instrs, _, err := asm.Parse("test.hdc", tokens)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %s", src, err)
	}

	return symbols, instrs
}

func TestParse_preSeededNopsAndTrailingHalt(t *testing.T) {
	_, instrs := parse(t, "nop")

	if len(instrs) != 4 {
		t.Fatalf("len: got %d, want 4 (two nops, the explicit nop, hlt)", len(instrs))
	}

	for i := 0; i < 3; i++ {
		f, ok := instrs[i].(asm.Fixed)
		if !ok || f.Opcode != 0x01 {
			t.Errorf("instrs[%d]: got %#v, want Fixed(nop)", i, instrs[i])
		}
	}

	if f, ok := instrs[3].(asm.Fixed); !ok || f.Opcode != 0x00 {
		t.Errorf("last instruction: got %#v, want Fixed(hlt)", instrs[3])
	}
}

func TestParse_labelResolvesPastPreSeededNops(t *testing.T) {
	symbols, _ := parse(t, "loop: nop")

	idx, ok := symbols.Label("loop")
	if !ok {
		t.Fatal("expected label 'loop' to be defined")
	}

	if idx != 2 {
		t.Errorf("loop address: got %d, want 2", idx)
	}
}

func TestParse_duplicateDefinitionIsNameError(t *testing.T) {
	tokens, err := lexer.Lex("test.hdc", text.New("define K 1\ndefine K 2", 0))
	if err != nil {
		t.Fatalf("Lex: %s", err)
	}

	if _, _, _, err := asm.Parse("test.hdc", tokens); err == nil {
		t.Fatal("expected NameError for duplicate definition")
	}
}

func TestParse_expressionPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want int32
	}{
		{"1 + 2 & 3", 3},        // (1+2) & 3 = 3
		{"1 | 2 & 0", 1},        // 1 | (2&0) = 1
		{"- - 5", 5},            // double negation cancels
		{"! ! 5", 5},            // double not cancels
		{"-(2 + 3)", -5},
		{"2 + 3 - 1", 4},
	}

	for _, c := range cases {
		tokens, err := lexer.Lex("test.hdc", text.New("define K "+c.src, 0))
		if err != nil {
			t.Fatalf("%q: lex error: %s", c.src, err)
		}

		symbols, _, _, err := asm.Parse("test.hdc", tokens)
		if err != nil {
			t.Fatalf("%q: parse error: %s", c.src, err)
		}

		got, ok := symbols.Constant("K")
		if !ok {
			t.Fatalf("%q: constant K not defined", c.src)
		}

		if got != c.want {
			t.Errorf("%q: got %d, want %d", c.src, got, c.want)
		}
	}
}

func TestParse_labelReferenceCannotParticipateInExpression(t *testing.T) {
	tokens, err := lexer.Lex("test.hdc", text.New("ldb undefined + 1", 0))
	if err != nil {
		t.Fatalf("lex error: %s", err)
	}

	// undefined+1 parses as a bare label reference "undefined" (terminating the
	// expression before the '+'), leaving a stray '+ 1' that fails as a syntax
	// error -- label references may not be used as expression operands.
	if _, _, _, err := asm.Parse("test.hdc", tokens); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestParse_ldaExpandsToThreeInstructions(t *testing.T) {
	_, instrs := parse(t, "define K 0x55\nlda K")

	// 2 pre-seeded nops, then ldu, mov L H, ldb, then hlt.
	if len(instrs) != 6 {
		t.Fatalf("len: got %d, want 6 (%v)", len(instrs), instrs)
	}

	if _, ok := instrs[2].(asm.Ldu); !ok {
		t.Errorf("instrs[2]: got %T, want Ldu", instrs[2])
	}

	mov, ok := instrs[3].(asm.Mov)
	if !ok || mov.Dst != asm.RegH || mov.Src != asm.RegL {
		t.Errorf("instrs[3]: got %#v, want Mov{Dst: H, Src: L}", instrs[3])
	}

	if _, ok := instrs[4].(asm.Ldb); !ok {
		t.Errorf("instrs[4]: got %T, want Ldb", instrs[4])
	}
}
