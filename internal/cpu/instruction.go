package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// Instruction represents a single instruction of the CPU.
type Instruction struct {
	name   string                     // name of the instruction
	length uint8                      // length in bytes, including any prefix
	fn     func(*CPU, uint16)         // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Length returns the length of the instruction in bytes.
func (i Instruction) Length() uint8 {
	return i.length
}

var (
	// InstructionSet holds the first 256 instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, length uint8, fn func(*CPU, uint16)) {
	InstructionSet[opcode] = Instruction{name: name, length: length, fn: fn}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB.
// Every prefixed instruction is 2 bytes long.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name:   name,
		length: 2,
		fn:     func(c *CPU, _ uint16) { fn(c) },
	}
}

// operandNames indexes the 3-bit register field of an opcode.
var operandNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// illegalOpcodes are not decoded by the hardware. Executing one is
// reported and then treated as a NOP.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	DefineInstruction(0x00, "NOP", 1, func(c *CPU, _ uint16) {})
	DefineInstruction(0x10, "STOP", 2, func(c *CPU, _ uint16) {
		// the divider is reset on STOP
		c.regs.Write(types.DIV, 0)
		if c.cgb && c.regs.Get(types.KEY1)&types.Bit0 != 0 {
			c.toggleSpeed()
			return
		}
		c.mode = ModeStop
	})
	DefineInstruction(0x27, "DAA", 1, func(c *CPU, _ uint16) {
		a, f := DAA(c.r[A], c.flags())
		c.r[A] = a
		c.setFlags(f)
	})
	DefineInstruction(0x2F, "CPL", 1, func(c *CPU, _ uint16) {
		c.r[A] = ^c.r[A]
		c.setFlags(c.flags() | FlagSubtract | FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", 1, func(c *CPU, _ uint16) {
		c.setFlags(c.flags()&FlagZero | FlagCarry)
	})
	DefineInstruction(0x3F, "CCF", 1, func(c *CPU, _ uint16) {
		c.setFlags(c.flags()&(FlagZero|FlagCarry) ^ FlagCarry)
	})
	DefineInstruction(0x76, "HALT", 1, func(c *CPU, _ uint16) {
		c.mode = ModeHalt
	})
	DefineInstruction(0xF3, "DI", 1, func(c *CPU, _ uint16) {
		c.IRQ.Disable()
	})
	DefineInstruction(0xFB, "EI", 1, func(c *CPU, _ uint16) {
		c.IRQ.EnableDelayed()
	})
	// the CB table is looked up by the dispatcher, this entry only
	// carries the length
	DefineInstruction(0xCB, "PREFIX CB", 2, func(c *CPU, _ uint16) {})

	for _, opcode := range illegalOpcodes {
		opcode := opcode
		DefineInstruction(opcode, fmt.Sprintf("ILLEGAL %02X", opcode), 1, func(c *CPU, _ uint16) {
			c.log.Errorf("cpu: illegal opcode %02X at %04X", opcode, c.PC-1)
		})
	}
}
