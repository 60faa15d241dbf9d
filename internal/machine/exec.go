package machine

// exec.go defines the CPU instruction cycle: fetch, dispatch by highest set bit,
// execute, advance PC.

import (
	"context"
	"errors"
	"fmt"

	"github.com/nicholasprowse/HADLoC/internal/log"
)

// ErrHalted is returned by Step once it executes a hlt (0x00) instruction.
var ErrHalted = errors.New("halted")

// Run steps the CPU until it halts or ctx is cancelled.
func (cpu *CPU) Run(ctx context.Context) error {
	cpu.log.Info("START", log.Group("STATE", cpu))

	for {
		select {
		case <-ctx.Done():
			cpu.log.Warn("CANCELLED")
			return ctx.Err()
		default:
		}

		if err := cpu.Step(); err != nil {
			if errors.Is(err, ErrHalted) {
				cpu.log.Info("HALTED", log.Group("STATE", cpu))
				return nil
			}

			cpu.log.Error("STEP ERROR", "ERR", err, log.Group("STATE", cpu))

			return err
		}
	}
}

// Step executes exactly one instruction. It returns ErrHalted, without advancing
// PC, once the instruction at PC is 0x00.
func (cpu *CPU) Step() error {
	instr := cpu.ROM[cpu.PC]

	switch {
	case instr == 0x00:
		return fmt.Errorf("step: %w", ErrHalted)

	case instr&0x80 != 0:
		cpu.L = instr & 0x7F
		cpu.PC++

	case instr&0x40 != 0:
		cpu.execALU(instr)
		cpu.PC++

	case instr&0x20 != 0:
		cpu.execMov(instr)
		cpu.PC++

	case instr&0x10 != 0:
		cpu.execJump(instr)

	case instr&0x08 != 0:
		cpu.execOut(instr)
		cpu.PC++

	case instr == 0x01:
		cpu.PC++

	case instr&0x02 != 0: // 0x02 or 0x03
		cpu.execCarry(instr)
		cpu.PC++

	default:
		cpu.PC++
	}

	cpu.log.Debug("executed", "IR", fmt.Sprintf("%#02x", instr), log.Group("STATE", cpu))

	return nil
}

// regCode is the two-bit register field shared by mov and out.
type regCode byte

const (
	codeX regCode = 0
	codeL regCode = 1
	codeIH regCode = 2
	codeMY regCode = 3
)

// readSrc reads the source operand of a mov or out instruction. s, when the field
// is codeMY, selects M (s=false) or Y (s=true).
func (cpu *CPU) readSrc(code regCode, s bool) byte {
	switch code {
	case codeX:
		return cpu.X
	case codeL:
		return cpu.L
	case codeIH:
		return cpu.IN
	default: // codeMY
		if s {
			return cpu.Y
		}

		return cpu.readMem()
	}
}

// execMov runs a 001sddss instruction: s disambiguates I/H and M/Y, dd is the
// 2-bit destination code, ss is the 2-bit source code.
func (cpu *CPU) execMov(instr byte) {
	s := instr&0x10 != 0
	dst := regCode((instr >> 2) & 0x03)
	src := regCode(instr & 0x03)

	val := cpu.readSrc(src, s)

	switch dst {
	case codeX:
		cpu.X = val
	case codeL:
		cpu.L = val
	case codeIH:
		cpu.H = val & 0x7F
	default: // codeMY
		if s {
			cpu.writeMem(val)
		} else {
			cpu.Y = val
		}
	}
}

// execOut runs a 00001dss instruction: d selects data (1) vs. instruction (0)
// port of the display; ss is the 2-bit source code. The encoder rejects Y and H
// as sources, so code 3 always reads M and no s bit is needed here.
func (cpu *CPU) execOut(instr byte) {
	d := instr&0x04 != 0
	src := regCode(instr & 0x03)
	val := cpu.readSrc(src, false)

	if d {
		cpu.Display.WriteData(val)
	} else {
		cpu.Display.WriteInstruction(val)
	}
}

// execJump runs a 0001Xuef instruction. Bit 3 (X) selects signed X-compare mode;
// otherwise the flag mode applies. PC is incremented first so a taken jump
// overwrites that advance with the H:L target.
func (cpu *CPU) execJump(instr byte) {
	cpu.PC++

	var jump bool

	if instr&0x08 != 0 {
		signed := int8(cpu.X)

		if instr&0x01 != 0 && signed > 0 {
			jump = true
		}

		if instr&0x02 != 0 && cpu.X == 0 {
			jump = true
		}

		if instr&0x04 != 0 && signed < 0 {
			jump = true
		}
	} else {
		if instr&0x02 != 0 && cpu.CF {
			jump = true
		}

		if instr&0x04 != 0 && cpu.IF {
			jump = true
		}
	}

	if jump {
		cpu.PC = cpu.memAddr()
	}
}

// execCarry runs the carry-conditional H-increment opcodes 0x02/0x03: H
// increments, modulo 128, when the carry flag matches the opcode's sense.
func (cpu *CPU) execCarry(instr byte) {
	if (instr == 0x03 && cpu.CF) || (instr == 0x02 && !cpu.CF) {
		cpu.H = (cpu.H + 1) & 0x7F
	}
}
