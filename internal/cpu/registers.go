package cpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// ErrUnknownRegister is returned by Lookup and Assign for names that
// do not match a register.
var ErrUnknownRegister = errors.New("unknown register")

// Register indexes an 8-bit register. The order of B through A follows
// the 3-bit register field of the opcodes, with F taking the slot that
// the opcodes use for (HL).
type Register = uint8

const (
	B Register = iota
	C
	D
	E
	H
	L
	F
	A
)

// Pair indexes a 16-bit register pair.
type Pair = uint8

const (
	BC Pair = iota
	DE
	HL
	AF
)

// pairs holds the high and low register of every pair.
var pairs = [4][2]Register{
	BC: {B, C},
	DE: {D, E},
	HL: {H, L},
	AF: {A, F},
}

// Registers is the register file of the CPU. The 16-bit pairs are not
// stored, they are computed from the two 8-bit registers that make them
// up, so a write through either view is seen by the other.
type Registers struct {
	r [8]uint8

	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
}

// Get returns the value of an 8-bit register.
func (r *Registers) Get(reg Register) uint8 {
	return r.r[reg]
}

// Set sets an 8-bit register. The low nibble of F is always 0.
func (r *Registers) Set(reg Register, value uint8) {
	if reg == F {
		value &= 0xF0
	}
	r.r[reg] = value
}

// Pair returns the value of a register pair.
func (r *Registers) Pair(p Pair) uint16 {
	return utils.BytesToUint16(r.r[pairs[p][0]], r.r[pairs[p][1]])
}

// SetPair sets a register pair.
func (r *Registers) SetPair(p Pair, value uint16) {
	high, low := utils.Uint16ToBytes(value)
	r.Set(pairs[p][0], high)
	r.Set(pairs[p][1], low)
}

// registerNames maps the names accepted by Lookup and Assign.
var registerNames = map[string]Register{
	"a": A, "f": F, "b": B, "c": C, "d": D, "e": E, "h": H, "l": L,
}

var pairNames = map[string]Pair{
	"af": AF, "bc": BC, "de": DE, "hl": HL,
}

// Lookup returns the value of the register with the given name, one of
// a, b, c, d, e, h, l, f, sp, pc, bc, de, hl or af.
func (r *Registers) Lookup(name string) (uint16, error) {
	name = strings.ToLower(name)
	switch name {
	case "sp":
		return r.SP, nil
	case "pc":
		return r.PC, nil
	}
	if reg, ok := registerNames[name]; ok {
		return uint16(r.Get(reg)), nil
	}
	if p, ok := pairNames[name]; ok {
		return r.Pair(p), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRegister, name)
}

// Assign sets the register with the given name. Values assigned to an
// 8-bit register are truncated.
func (r *Registers) Assign(name string, value uint16) error {
	name = strings.ToLower(name)
	switch name {
	case "sp":
		r.SP = value
		return nil
	case "pc":
		r.PC = value
		return nil
	}
	if reg, ok := registerNames[name]; ok {
		r.Set(reg, uint8(value))
		return nil
	}
	if p, ok := pairNames[name]; ok {
		r.SetPair(p, value)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownRegister, name)
}

// String formats the registers the way the trace log prints them.
func (r *Registers) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X",
		r.r[A], r.r[F], r.r[B], r.r[C], r.r[D], r.r[E], r.r[H], r.r[L], r.SP, r.PC)
}
