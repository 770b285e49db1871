package cpu

import "fmt"

// shiftOps are the rotates and shifts of the first quarter of the CB
// table, selected by bits 3-5 of the opcode.
var shiftOps = [8]struct {
	name string
	fn   func(c *CPU, n uint8) (uint8, Flags)
}{
	{"RLC", func(c *CPU, n uint8) (uint8, Flags) { return RotateLeft(n) }},
	{"RRC", func(c *CPU, n uint8) (uint8, Flags) { return RotateRight(n) }},
	{"RL", func(c *CPU, n uint8) (uint8, Flags) { return RotateLeftThroughCarry(n, c.isFlagSet(FlagCarry)) }},
	{"RR", func(c *CPU, n uint8) (uint8, Flags) { return RotateRightThroughCarry(n, c.isFlagSet(FlagCarry)) }},
	{"SLA", func(c *CPU, n uint8) (uint8, Flags) { return ShiftLeftArithmetic(n) }},
	{"SRA", func(c *CPU, n uint8) (uint8, Flags) { return ShiftRightArithmetic(n) }},
	{"SWAP", func(c *CPU, n uint8) (uint8, Flags) { return Swap(n) }},
	{"SRL", func(c *CPU, n uint8) (uint8, Flags) { return ShiftRightLogical(n) }},
}

func init() {
	// 0x07, 0x0F, 0x17, 0x1F - RLCA, RRCA, RLA, RRA are the CB rotates
	// applied to A, except that Z is always reset.
	for i, name := range [4]string{"RLCA", "RRCA", "RLA", "RRA"} {
		op := shiftOps[i]
		DefineInstruction(0x07+uint8(i)<<3, name, 1, func(c *CPU, _ uint16) {
			a, f := op.fn(c, c.r[A])
			c.r[A] = a
			c.setFlags(f &^ FlagZero)
		})
	}

	for op := uint8(0); op < 8; op++ {
		shift := shiftOps[op]
		for r := uint8(0); r < 8; r++ {
			r := r
			DefineInstructionCB(op<<3|r, fmt.Sprintf("%s %s", shift.name, operandNames[r]), func(c *CPU) {
				v, f := shift.fn(c, c.readOperandRegister(r))
				c.writeOperandRegister(r, v)
				c.setFlags(f)
			})
		}
	}
}
