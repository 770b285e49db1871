package cpu

import "fmt"

// pairNamesSP names the 2-bit register pair field of the 16-bit loads
// and arithmetic, where 3 selects SP.
var pairNamesSP = [4]string{"BC", "DE", "HL", "SP"}

// pairNamesAF names the register pair field of PUSH and POP, where 3
// selects AF.
var pairNamesAF = [4]string{"BC", "DE", "HL", "AF"}

// getPairSP returns the register pair selected by a 2-bit opcode field.
func (c *CPU) getPairSP(index uint8) uint16 {
	if index == 3 {
		return c.SP
	}
	return c.Pair(index)
}

func (c *CPU) setPairSP(index uint8, value uint16) {
	if index == 3 {
		c.SP = value
		return
	}
	c.SetPair(index, value)
}

func init() {
	for i := uint8(0); i < 4; i++ {
		i := i
		// 0x01, 0x11, 0x21, 0x31 - LD rr, d16
		DefineInstruction(0x01+i<<4, fmt.Sprintf("LD %s, d16", pairNamesSP[i]), 3, func(c *CPU, operand uint16) {
			c.setPairSP(i, operand)
		})
		// 0xC1, 0xD1, 0xE1, 0xF1 - POP rr
		DefineInstruction(0xC1+i<<4, "POP "+pairNamesAF[i], 1, func(c *CPU, _ uint16) {
			c.SetPair(i, c.pop())
		})
		// 0xC5, 0xD5, 0xE5, 0xF5 - PUSH rr
		DefineInstruction(0xC5+i<<4, "PUSH "+pairNamesAF[i], 1, func(c *CPU, _ uint16) {
			c.push(c.Pair(i))
		})
	}

	// LD (rr), A and LD A, (rr), with HL incremented or decremented
	// after the access for 0x22, 0x2A, 0x32 and 0x3A.
	indirect := [4]struct {
		name   string
		pair   Pair
		adjust uint16
	}{
		{"BC", BC, 0},
		{"DE", DE, 0},
		{"HL+", HL, 1},
		{"HL-", HL, 0xFFFF},
	}
	for i, ind := range indirect {
		ind := ind
		DefineInstruction(0x02+uint8(i)<<4, fmt.Sprintf("LD (%s), A", ind.name), 1, func(c *CPU, _ uint16) {
			address := c.Pair(ind.pair)
			c.bus.Write(address, c.r[A])
			c.SetPair(ind.pair, address+ind.adjust)
		})
		DefineInstruction(0x0A+uint8(i)<<4, fmt.Sprintf("LD A, (%s)", ind.name), 1, func(c *CPU, _ uint16) {
			address := c.Pair(ind.pair)
			c.r[A] = c.bus.Read(address)
			c.SetPair(ind.pair, address+ind.adjust)
		})
	}

	for dst := uint8(0); dst < 8; dst++ {
		dst := dst
		// 0x06, 0x0E, ... 0x3E - LD r, d8
		DefineInstruction(0x06+dst<<3, fmt.Sprintf("LD %s, d8", operandNames[dst]), 2, func(c *CPU, operand uint16) {
			c.writeOperandRegister(dst, uint8(operand))
		})

		// 0x40 - 0x7F - LD r, r'
		for src := uint8(0); src < 8; src++ {
			src := src
			opcode := 0x40 + dst<<3 + src
			if opcode == 0x76 {
				continue // HALT
			}
			DefineInstruction(opcode, fmt.Sprintf("LD %s, %s", operandNames[dst], operandNames[src]), 1, func(c *CPU, _ uint16) {
				c.writeOperandRegister(dst, c.readOperandRegister(src))
			})
		}
	}
	// LD B, B doubles as a software breakpoint for test ROMs
	DefineInstruction(0x40, "LD B, B", 1, func(c *CPU, _ uint16) {
		if c.Debug {
			c.DebugBreakpoint = true
			c.Stop()
		}
	})

	DefineInstruction(0x08, "LD (a16), SP", 3, func(c *CPU, operand uint16) {
		c.bus.Write(operand, uint8(c.SP))
		c.bus.Write(operand+1, uint8(c.SP>>8))
	})
	DefineInstruction(0xE0, "LDH (a8), A", 2, func(c *CPU, operand uint16) {
		c.bus.Write(0xFF00|operand, c.r[A])
	})
	DefineInstruction(0xF0, "LDH A, (a8)", 2, func(c *CPU, operand uint16) {
		c.r[A] = c.bus.Read(0xFF00 | operand)
	})
	DefineInstruction(0xE2, "LD (C), A", 1, func(c *CPU, _ uint16) {
		c.bus.Write(0xFF00|uint16(c.r[C]), c.r[A])
	})
	DefineInstruction(0xF2, "LD A, (C)", 1, func(c *CPU, _ uint16) {
		c.r[A] = c.bus.Read(0xFF00 | uint16(c.r[C]))
	})
	DefineInstruction(0xEA, "LD (a16), A", 3, func(c *CPU, operand uint16) {
		c.bus.Write(operand, c.r[A])
	})
	DefineInstruction(0xFA, "LD A, (a16)", 3, func(c *CPU, operand uint16) {
		c.r[A] = c.bus.Read(operand)
	})
	DefineInstruction(0xF8, "LD HL, SP+r8", 2, func(c *CPU, operand uint16) {
		hl, f := AddSigned16(c.SP, uint8(operand))
		c.SetPair(HL, hl)
		c.setFlags(f)
	})
	DefineInstruction(0xF9, "LD SP, HL", 1, func(c *CPU, _ uint16) {
		c.SP = c.Pair(HL)
	})
}
