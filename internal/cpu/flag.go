package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

// Flags holds the flag bits of the F register.
type Flags = uint8

const (
	FlagZero      Flags = types.Bit7
	FlagSubtract  Flags = types.Bit6
	FlagHalfCarry Flags = types.Bit5
	FlagCarry     Flags = types.Bit4
)

// flagIf returns flag if cond holds, otherwise 0.
func flagIf(cond bool, flag Flags) Flags {
	if cond {
		return flag
	}
	return 0
}

// flags returns the F register.
func (c *CPU) flags() Flags {
	return c.r[F]
}

// setFlags replaces the F register.
func (c *CPU) setFlags(f Flags) {
	c.Set(F, f)
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flags) bool {
	return c.r[F]&flag != 0
}
