package cpu

import "fmt"

func init() {
	for b := uint8(0); b < 8; b++ {
		b := b
		for r := uint8(0); r < 8; r++ {
			r := r
			// 0x40 - 0x7F - BIT b, r
			DefineInstructionCB(0x40|b<<3|r, fmt.Sprintf("BIT %d, %s", b, operandNames[r]), func(c *CPU) {
				c.setFlags(TestBit(c.readOperandRegister(r), b, c.flags()))
			})
			// 0x80 - 0xBF - RES b, r
			DefineInstructionCB(0x80|b<<3|r, fmt.Sprintf("RES %d, %s", b, operandNames[r]), func(c *CPU) {
				c.writeOperandRegister(r, c.readOperandRegister(r)&^(1<<b))
			})
			// 0xC0 - 0xFF - SET b, r
			DefineInstructionCB(0xC0|b<<3|r, fmt.Sprintf("SET %d, %s", b, operandNames[r]), func(c *CPU) {
				c.writeOperandRegister(r, c.readOperandRegister(r)|1<<b)
			})
		}
	}
}
