/*
Package machine implements the HADLoC instruction-cycle emulator: a CPU with six
registers (X, L, H, M, I, Y -- M and I are not independent storage but aliases
for a RAM read/write and the input latch respectively), 2^15 bytes of ROM, 2^15
bytes of RAM, and a 20x4 character Display.

Step executes exactly one instruction and returns; Run drives Step in a loop until
the program halts or its context is cancelled. There is no privilege model,
interrupt vector table, or memory-mapped device bus here -- HADLoC has none of
those; the display is wired directly into the two output opcodes.
*/
package machine
