package cpu

// The ALU is a set of pure functions. Each one returns its result and
// the new flags, leaving it to the instruction to store them.

// Add adds b and the carry to a.
//
//	ADD A, n
//	ADC A, n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add(a, b uint8, carry bool) (uint8, Flags) {
	cin := uint8(0)
	if carry {
		cin = 1
	}
	sum := uint16(a) + uint16(b) + uint16(cin)
	result := uint8(sum)
	return result, flagIf(result == 0, FlagZero) |
		flagIf((a&0xF)+(b&0xF)+cin > 0xF, FlagHalfCarry) |
		flagIf(sum > 0xFF, FlagCarry)
}

// Sub subtracts b and the carry from a.
//
//	SUB n
//	SBC A, n
//	CP n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Sub(a, b uint8, carry bool) (uint8, Flags) {
	cin := 0
	if carry {
		cin = 1
	}
	diff := int(a) - int(b) - cin
	result := uint8(diff)
	return result, FlagSubtract |
		flagIf(result == 0, FlagZero) |
		flagIf(int(a&0xF)-int(b&0xF)-cin < 0, FlagHalfCarry) |
		flagIf(diff < 0, FlagCarry)
}

// And performs a bitwise AND.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func And(a, b uint8) (uint8, Flags) {
	result := a & b
	return result, flagIf(result == 0, FlagZero) | FlagHalfCarry
}

// Or performs a bitwise OR. Z is set if the result is zero, all the
// other flags are reset.
func Or(a, b uint8) (uint8, Flags) {
	result := a | b
	return result, flagIf(result == 0, FlagZero)
}

// Xor performs a bitwise XOR. Z is set if the result is zero, all the
// other flags are reset.
func Xor(a, b uint8) (uint8, Flags) {
	result := a ^ b
	return result, flagIf(result == 0, FlagZero)
}

// Inc increments n by 1.
//
//	INC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func Inc(n uint8, f Flags) (uint8, Flags) {
	result := n + 1
	return result, f&FlagCarry |
		flagIf(result == 0, FlagZero) |
		flagIf(n&0xF == 0xF, FlagHalfCarry)
}

// Dec decrements n by 1.
//
//	DEC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func Dec(n uint8, f Flags) (uint8, Flags) {
	result := n - 1
	return result, f&FlagCarry | FlagSubtract |
		flagIf(result == 0, FlagZero) |
		flagIf(n&0xF == 0, FlagHalfCarry)
}

// Add16 adds two 16-bit values.
//
//	ADD HL, rr
//
// Flags affected:
//
//	Z - Not affected.
//	N - Not affected.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func Add16(a, b uint16, f Flags) (uint16, Flags) {
	sum := uint32(a) + uint32(b)
	return uint16(sum), f&(FlagZero|FlagSubtract) |
		flagIf((a&0x0FFF)+(b&0x0FFF) > 0x0FFF, FlagHalfCarry) |
		flagIf(sum > 0xFFFF, FlagCarry)
}

// AddSigned16 adds the signed offset e to a. The carries are computed
// on the low byte, as an unsigned 8-bit addition.
//
//	ADD SP, e
//	LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func AddSigned16(a uint16, e uint8) (uint16, Flags) {
	result := uint16(int32(a) + int32(int8(e)))
	return result, flagIf((a&0xF)+uint16(e&0xF) > 0xF, FlagHalfCarry) |
		flagIf((a&0xFF)+uint16(e) > 0xFF, FlagCarry)
}

// DAA adjusts a to binary coded decimal after an addition or
// subtraction, using the flags that operation left behind.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set if the correction carried.
func DAA(a uint8, f Flags) (uint8, Flags) {
	carry := f&FlagCarry != 0
	if f&FlagSubtract == 0 {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if f&FlagHalfCarry != 0 || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if f&FlagHalfCarry != 0 {
			a -= 0x06
		}
	}
	return a, f&FlagSubtract | flagIf(a == 0, FlagZero) | flagIf(carry, FlagCarry)
}

// shiftFlags are the flags left by every rotate and shift: Z if the
// result is zero, C from the bit shifted out.
func shiftFlags(result uint8, out bool) Flags {
	return flagIf(result == 0, FlagZero) | flagIf(out, FlagCarry)
}

// RotateLeft rotates n left, bit 7 going to both bit 0 and the carry.
//
//	RLC n
func RotateLeft(n uint8) (uint8, Flags) {
	result := n<<1 | n>>7
	return result, shiftFlags(result, n&0x80 != 0)
}

// RotateRight rotates n right, bit 0 going to both bit 7 and the carry.
//
//	RRC n
func RotateRight(n uint8) (uint8, Flags) {
	result := n>>1 | n<<7
	return result, shiftFlags(result, n&0x01 != 0)
}

// RotateLeftThroughCarry rotates n left through the carry.
//
//	RL n
func RotateLeftThroughCarry(n uint8, carry bool) (uint8, Flags) {
	result := n << 1
	if carry {
		result |= 0x01
	}
	return result, shiftFlags(result, n&0x80 != 0)
}

// RotateRightThroughCarry rotates n right through the carry.
//
//	RR n
func RotateRightThroughCarry(n uint8, carry bool) (uint8, Flags) {
	result := n >> 1
	if carry {
		result |= 0x80
	}
	return result, shiftFlags(result, n&0x01 != 0)
}

// ShiftLeftArithmetic shifts n left into the carry, bit 0 is reset.
//
//	SLA n
func ShiftLeftArithmetic(n uint8) (uint8, Flags) {
	result := n << 1
	return result, shiftFlags(result, n&0x80 != 0)
}

// ShiftRightArithmetic shifts n right into the carry, bit 7 is kept.
//
//	SRA n
func ShiftRightArithmetic(n uint8) (uint8, Flags) {
	result := n>>1 | n&0x80
	return result, shiftFlags(result, n&0x01 != 0)
}

// ShiftRightLogical shifts n right into the carry, bit 7 is reset.
//
//	SRL n
func ShiftRightLogical(n uint8) (uint8, Flags) {
	result := n >> 1
	return result, shiftFlags(result, n&0x01 != 0)
}

// Swap swaps the upper and lower nibbles of n.
//
//	SWAP n
func Swap(n uint8) (uint8, Flags) {
	result := n<<4 | n>>4
	return result, flagIf(result == 0, FlagZero)
}

// TestBit tests bit b of n.
//
//	BIT b, n
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func TestBit(n uint8, b uint8, f Flags) Flags {
	return f&FlagCarry | FlagHalfCarry | flagIf(n&(1<<b) == 0, FlagZero)
}
