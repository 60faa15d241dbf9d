package machine

import (
	"fmt"

	"github.com/nicholasprowse/HADLoC/internal/log"
)

// memSize is the size of both ROM and RAM: 2^15 bytes, the full span of the 15-bit
// address bus.
const memSize = 1 << 15

// CPU is a HADLoC computer simulated in software.
type CPU struct {
	PC uint16 // 15-bit program counter.

	X, L, Y, IN byte // General-purpose and input-latch registers.
	H           byte // 7-bit register; top bit is always clear.

	CF bool // Carry flag, written only by additive ALU operations.
	IF bool // Input-ready flag, raised by Input and never cleared implicitly.

	ROM [memSize]byte
	RAM [memSize]byte

	Display Display

	log *log.Logger
}

// New creates a CPU with rom copied into ROM (zero-padded to 2^15 bytes) and RAM
// zeroed. PC starts at 0.
func New(rom []byte) *CPU {
	if len(rom) > memSize {
		panic("machine: rom exceeds 2^15 bytes")
	}

	cpu := &CPU{log: log.DefaultLogger()}
	copy(cpu.ROM[:], rom)
	cpu.Display.Clear()

	return cpu
}

// WithLogger overrides the CPU's logger.
func (cpu *CPU) WithLogger(l *log.Logger) {
	cpu.log = l
}

func (cpu *CPU) String() string {
	return fmt.Sprintf(
		"PC:%#04x X:%#02x L:%#02x H:%#02x Y:%#02x IN:%#02x CF:%t IF:%t",
		cpu.PC, cpu.X, cpu.L, cpu.H, cpu.Y, cpu.IN, cpu.CF, cpu.IF,
	)
}

func (cpu *CPU) LogValue() log.Value {
	return log.GroupValue(
		log.String("PC", fmt.Sprintf("%#04x", cpu.PC)),
		log.String("X", fmt.Sprintf("%#02x", cpu.X)),
		log.String("L", fmt.Sprintf("%#02x", cpu.L)),
		log.String("H", fmt.Sprintf("%#02x", cpu.H)),
		log.String("Y", fmt.Sprintf("%#02x", cpu.Y)),
		log.Any("CF", cpu.CF),
		log.Any("IF", cpu.IF),
	)
}

// memAddr returns the 15-bit RAM address currently pointed to by H:L.
func (cpu *CPU) memAddr() uint16 {
	return uint16(cpu.H)<<8 | uint16(cpu.L)
}

// readMem reads the RAM byte addressed by H:L (the M register).
func (cpu *CPU) readMem() byte {
	return cpu.RAM[cpu.memAddr()]
}

// writeMem writes v to the RAM byte addressed by H:L (the M register).
func (cpu *CPU) writeMem(v byte) {
	cpu.RAM[cpu.memAddr()] = v
}

// Input raises the input-ready flag with the given value. IF is never cleared
// implicitly by Step; call ClearInput once the program has consumed it, typically
// after a jis branch fires. See ClearInput's doc comment for the rationale.
func (cpu *CPU) Input(v byte) {
	cpu.IN = v
	cpu.IF = true
}

// ClearInput lowers the input-ready flag. The source this emulator is modeled on
// does not specify exactly when IF is cleared after a jis fires; this emulator
// leaves that decision to the caller rather than guessing at an unobservable
// detail, and exposes it as an explicit operation instead.
func (cpu *CPU) ClearInput() {
	cpu.IF = false
}
