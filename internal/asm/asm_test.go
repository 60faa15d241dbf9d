package asm_test

import (
	"testing"

	"github.com/nicholasprowse/HADLoC/internal/asm"
	"github.com/nicholasprowse/HADLoC/internal/text"
)

func assemble(t *testing.T, src string) *asm.Result {
	t.Helper()

	res, err := asm.Assemble("test.hdc", text.New(src, 0))
	if err != nil {
		t.Fatalf("Assemble(%q): unexpected error: %s", src, err)
	}

	return res
}

func TestAssemble_hlt(t *testing.T) {
	res := assemble(t, "hlt")
	want := []byte{0x01, 0x01, 0x00}
	assertBytes(t, res.Code, want)
}

func TestAssemble_ldbSmall(t *testing.T) {
	res := assemble(t, "ldb 0x42")
	want := []byte{0x01, 0x01, 0xC2, 0x00}
	assertBytes(t, res.Code, want)
}

func TestAssemble_ldbWide(t *testing.T) {
	// ldb 0x80: load ~0x80 & 0x7F = 0x7F (-> 0xFF), then "not L L". "not L L" is an
	// ALU op (dst=L, arg=L, neither is X), so its byte carries the 0x40 ALU prefix
	// plus UNARY['LM']['not'] = 0x3, i.e. 0x43.
	res := assemble(t, "ldb 0x80")
	want := []byte{0x01, 0x01, 0xFF, 0x43, 0x00}
	assertBytes(t, res.Code, want)
}

func TestAssemble_defineAndConstantArithmetic(t *testing.T) {
	res := assemble(t, "define K 5\nldb K+2")
	want := []byte{0x01, 0x01, 0x87, 0x00}
	assertBytes(t, res.Code, want)

	if len(res.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
}

func TestAssemble_forwardLabelLoop(t *testing.T) {
	res := assemble(t, "loop: jmp loop")

	// two leading nops, then the jmp-target load sequence, then jmp, then hlt.
	if res.Code[0] != 0x01 || res.Code[1] != 0x01 {
		t.Fatalf("leading bytes: got %#v", res.Code[:2])
	}

	if last := res.Code[len(res.Code)-2]; last != 0x1F {
		t.Errorf("expected jmp (0x1F) before hlt, got %#x", last)
	}

	if hlt := res.Code[len(res.Code)-1]; hlt != 0x00 {
		t.Errorf("expected trailing hlt, got %#x", hlt)
	}
}

func TestAssemble_addRegisterShapes(t *testing.T) {
	res := assemble(t, "add X L X")
	want := []byte{0x01, 0x01, 0x69, 0x00}
	assertBytes(t, res.Code, want)
}

func TestAssemble_addInvalidDestinationIsArgumentError(t *testing.T) {
	_, err := asm.Assemble("test.hdc", text.New("add H L X", 0))
	if err == nil {
		t.Fatal("expected ArgumentError, got nil")
	}
}

func TestAssemble_movSameRegisterIsNop(t *testing.T) {
	res := assemble(t, "mov X X")
	want := []byte{0x01, 0x01, 0x01, 0x00}
	assertBytes(t, res.Code, want)
}

func TestAssemble_undefinedLabelIsNameError(t *testing.T) {
	_, err := asm.Assemble("test.hdc", text.New("jmp missing", 0))
	if err == nil {
		t.Fatal("expected error for undefined label")
	}
}

func TestAssemble_unusedConstantWarns(t *testing.T) {
	res := assemble(t, "define K 5\nhlt")

	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(res.Warnings), res.Warnings)
	}
}

func TestAssemble_constantMustPrecedeUse(t *testing.T) {
	_, err := asm.Assemble("test.hdc", text.New("ldb K\ndefine K 5", 0))
	if err == nil {
		t.Fatal("expected NameError for forward-referenced constant")
	}
}

func assertBytes(t *testing.T, got, want []byte) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len: got %d %#v, want %d %#v", len(got), got, len(want), want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte[%d]: got %#x, want %#x", i, got[i], want[i])
		}
	}
}
