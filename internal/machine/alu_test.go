package machine_test

import (
	"testing"

	"github.com/nicholasprowse/HADLoC/internal/machine"
)

// aluInstr builds a 01xmoooo instruction byte.
func aluInstr(x, m bool, op byte) byte {
	var b byte = 0x40
	if x {
		b |= 0x20
	}
	if m {
		b |= 0x10
	}
	return b | op
}

func TestExecALU_addSetsCarryOnOverflow(t *testing.T) {
	cpu := machine.New([]byte{aluInstr(true, false, 0x9), 0x00}) // add, dst=X, arg=L
	cpu.X = 0xFF
	cpu.L = 0x02

	if err := cpu.Step(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cpu.X != 0x01 {
		t.Errorf("X: got %#x, want 0x01 (0xFF+0x02 truncated)", cpu.X)
	}

	if !cpu.CF {
		t.Error("expected CF set on overflowing add")
	}
}

func TestExecALU_andLeavesCarryUntouched(t *testing.T) {
	cpu := machine.New([]byte{aluInstr(false, false, 0xA), 0x00}) // and, dst=L
	cpu.X = 0xF0
	cpu.L = 0x0F
	cpu.CF = true

	if err := cpu.Step(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cpu.L != 0x00 {
		t.Errorf("L: got %#x, want 0x00", cpu.L)
	}

	if !cpu.CF {
		t.Error("CF should be untouched by a logical op")
	}
}

func TestExecALU_decFromZeroSetsCarry(t *testing.T) {
	cpu := machine.New([]byte{aluInstr(true, false, 0x4), 0x00}) // dec X
	cpu.X = 0x00

	if err := cpu.Step(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cpu.X != 0xFF {
		t.Errorf("X: got %#x, want 0xFF (wrapped)", cpu.X)
	}

	if !cpu.CF {
		t.Error("expected CF set on a borrowing decrement")
	}
}

func TestExecALU_readsFromMemoryWhenMSet(t *testing.T) {
	cpu := machine.New([]byte{aluInstr(true, true, 0x9), 0x00}) // add, arg=M
	cpu.X = 0x01
	cpu.H, cpu.L = 0, 0
	cpu.RAM[0] = 0x04

	if err := cpu.Step(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cpu.X != 0x05 {
		t.Errorf("X: got %#x, want 0x05", cpu.X)
	}
}

func TestExecJump_signedModeJmpTakenWithXZero(t *testing.T) {
	// jmp always (0001 1 111 -> X bit set, u=e=f=1): target H:L = 0x0002.
	cpu := machine.New([]byte{0x1F, 0x00, 0x00})
	cpu.H, cpu.L = 0, 2

	if err := cpu.Step(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cpu.PC != 2 {
		t.Errorf("PC: got %d, want 2", cpu.PC)
	}
}

func TestExecJump_flagModeOnCarry(t *testing.T) {
	cpu := machine.New([]byte{0x12, 0x00, 0x00}) // jcs: flag mode, carry bit only
	cpu.CF = true
	cpu.H, cpu.L = 0, 2

	if err := cpu.Step(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cpu.PC != 2 {
		t.Errorf("PC: got %d, want 2 (jcs should fire when CF set)", cpu.PC)
	}
}

func TestExecJump_flagModeNotTakenWithoutCarry(t *testing.T) {
	cpu := machine.New([]byte{0x12, 0x00, 0x00})
	cpu.CF = false

	if err := cpu.Step(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cpu.PC != 1 {
		t.Errorf("PC: got %d, want 1 (jcs should not fire without CF)", cpu.PC)
	}
}

func TestExecCarry_incrementsHModulo128(t *testing.T) {
	cpu := machine.New([]byte{0x03, 0x00}) // ics: increment H if CF set
	cpu.CF = true
	cpu.H = 0x7F

	if err := cpu.Step(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cpu.H != 0x00 {
		t.Errorf("H: got %#x, want 0x00 (wrapped modulo 128)", cpu.H)
	}
}

func TestExecCarry_iccIncrementsOnlyWithoutCarry(t *testing.T) {
	cpu := machine.New([]byte{0x02, 0x00}) // icc: increment H if CF clear
	cpu.CF = true
	cpu.H = 0x10

	if err := cpu.Step(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cpu.H != 0x10 {
		t.Errorf("H: got %#x, want unchanged 0x10 (icc should not fire with CF set)", cpu.H)
	}
}
