package cpu

import "fmt"

// conditionNames names the 2-bit condition field of the conditional
// jumps, calls and returns.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition reports whether the condition selected by a 2-bit opcode
// field holds.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	case 3:
		return c.isFlagSet(FlagCarry)
	}
	panic(fmt.Sprintf("invalid condition: %d", cc))
}

// jumpRelative jumps to the address relative to the current PC, which
// already points past the JR instruction.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(offset)))
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.push(c.PC)
	c.PC = address
}

// ret pops the return address off the stack.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.pop()
}

func init() {
	DefineInstruction(0x18, "JR r8", 2, func(c *CPU, operand uint16) {
		c.jumpRelative(uint8(operand))
	})
	DefineInstruction(0xC3, "JP a16", 3, func(c *CPU, operand uint16) {
		c.PC = operand
	})
	DefineInstruction(0xE9, "JP HL", 1, func(c *CPU, _ uint16) {
		c.PC = c.Pair(HL)
	})
	DefineInstruction(0xCD, "CALL a16", 3, func(c *CPU, operand uint16) {
		c.call(operand)
	})
	DefineInstruction(0xC9, "RET", 1, func(c *CPU, _ uint16) {
		c.ret()
	})
	DefineInstruction(0xD9, "RETI", 1, func(c *CPU, _ uint16) {
		c.ret()
		c.IRQ.EnableNow()
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		name := conditionNames[cc]
		// 0x20, 0x28, 0x30, 0x38 - JR cc, r8
		DefineInstruction(0x20+cc<<3, fmt.Sprintf("JR %s, r8", name), 2, func(c *CPU, operand uint16) {
			if c.condition(cc) {
				c.jumpRelative(uint8(operand))
			}
		})
		// 0xC2, 0xCA, 0xD2, 0xDA - JP cc, a16
		DefineInstruction(0xC2+cc<<3, fmt.Sprintf("JP %s, a16", name), 3, func(c *CPU, operand uint16) {
			if c.condition(cc) {
				c.PC = operand
			}
		})
		// 0xC4, 0xCC, 0xD4, 0xDC - CALL cc, a16
		DefineInstruction(0xC4+cc<<3, fmt.Sprintf("CALL %s, a16", name), 3, func(c *CPU, operand uint16) {
			if c.condition(cc) {
				c.call(operand)
			}
		})
		// 0xC0, 0xC8, 0xD0, 0xD8 - RET cc
		DefineInstruction(0xC0+cc<<3, "RET "+name, 1, func(c *CPU, _ uint16) {
			if c.condition(cc) {
				c.ret()
			}
		})
	}

	// 0xC7, 0xCF, ... 0xFF - RST n
	for n := uint8(0); n < 8; n++ {
		vector := uint16(n) << 3
		DefineInstruction(0xC7+n<<3, fmt.Sprintf("RST %02XH", vector), 1, func(c *CPU, _ uint16) {
			c.call(vector)
		})
	}
}
