package cpu

import "fmt"

// aluOps are the 8 operations on A selected by bits 3-5 of the opcodes
// 0x80 - 0xBF and 0xC6 - 0xFE.
var aluOps = [8]struct {
	name string
	fn   func(c *CPU, n uint8)
}{
	{"ADD A,", func(c *CPU, n uint8) { c.r[A], c.r[F] = Add(c.r[A], n, false) }},
	{"ADC A,", func(c *CPU, n uint8) { c.r[A], c.r[F] = Add(c.r[A], n, c.isFlagSet(FlagCarry)) }},
	{"SUB", func(c *CPU, n uint8) { c.r[A], c.r[F] = Sub(c.r[A], n, false) }},
	{"SBC A,", func(c *CPU, n uint8) { c.r[A], c.r[F] = Sub(c.r[A], n, c.isFlagSet(FlagCarry)) }},
	{"AND", func(c *CPU, n uint8) { c.r[A], c.r[F] = And(c.r[A], n) }},
	{"XOR", func(c *CPU, n uint8) { c.r[A], c.r[F] = Xor(c.r[A], n) }},
	{"OR", func(c *CPU, n uint8) { c.r[A], c.r[F] = Or(c.r[A], n) }},
	{"CP", func(c *CPU, n uint8) { _, c.r[F] = Sub(c.r[A], n, false) }},
}

func init() {
	for op := uint8(0); op < 8; op++ {
		alu := aluOps[op]

		// 0x80 - 0xBF - ALU A, r
		for src := uint8(0); src < 8; src++ {
			src := src
			DefineInstruction(0x80+op<<3+src, fmt.Sprintf("%s %s", alu.name, operandNames[src]), 1, func(c *CPU, _ uint16) {
				alu.fn(c, c.readOperandRegister(src))
			})
		}
		// 0xC6, 0xCE, ... 0xFE - ALU A, d8
		DefineInstruction(0xC6+op<<3, alu.name+" d8", 2, func(c *CPU, operand uint16) {
			alu.fn(c, uint8(operand))
		})
	}

	for r := uint8(0); r < 8; r++ {
		r := r
		// 0x04, 0x0C, ... 0x3C - INC r
		DefineInstruction(0x04+r<<3, "INC "+operandNames[r], 1, func(c *CPU, _ uint16) {
			v, f := Inc(c.readOperandRegister(r), c.flags())
			c.writeOperandRegister(r, v)
			c.setFlags(f)
		})
		// 0x05, 0x0D, ... 0x3D - DEC r
		DefineInstruction(0x05+r<<3, "DEC "+operandNames[r], 1, func(c *CPU, _ uint16) {
			v, f := Dec(c.readOperandRegister(r), c.flags())
			c.writeOperandRegister(r, v)
			c.setFlags(f)
		})
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		// 0x03, 0x13, 0x23, 0x33 - INC rr
		DefineInstruction(0x03+i<<4, "INC "+pairNamesSP[i], 1, func(c *CPU, _ uint16) {
			c.setPairSP(i, c.getPairSP(i)+1)
		})
		// 0x0B, 0x1B, 0x2B, 0x3B - DEC rr
		DefineInstruction(0x0B+i<<4, "DEC "+pairNamesSP[i], 1, func(c *CPU, _ uint16) {
			c.setPairSP(i, c.getPairSP(i)-1)
		})
		// 0x09, 0x19, 0x29, 0x39 - ADD HL, rr
		DefineInstruction(0x09+i<<4, "ADD HL, "+pairNamesSP[i], 1, func(c *CPU, _ uint16) {
			hl, f := Add16(c.Pair(HL), c.getPairSP(i), c.flags())
			c.SetPair(HL, hl)
			c.setFlags(f)
		})
	}

	DefineInstruction(0xE8, "ADD SP, r8", 2, func(c *CPU, operand uint16) {
		sp, f := AddSigned16(c.SP, uint8(operand))
		c.SP = sp
		c.setFlags(f)
	})
}
