// Package timer provides an implementation of the Game Boy
// divider and timer. Both are driven by the instruction
// count rather than by machine cycles, and the timer
// generates interrupts at the frequency configured with
// the types.TAC register.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// frequencies selected by TAC bits 0-1, in Hz.
var frequencies = [4]uint32{4096, 262144, 65536, 16384}

// Controller is a timer controller. It increments DIV at a
// fixed rate, and TIMA at the rate selected by types.TAC,
// requesting a timer interrupt every time TIMA overflows.
type Controller struct {
	divCounter  uint32
	timaCounter uint32

	doubleSpeed bool

	regs *io.Registers
	irq  *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(regs *io.Registers, irq *interrupts.Service) *Controller {
	c := &Controller{
		regs: regs,
		irq:  irq,
	}
	// set up registers
	regs.Reserve(types.DIV, func(v uint8) uint8 {
		// any write resets the divider
		c.divCounter = 0
		return 0
	}, nil)
	regs.Reserve(types.TAC, func(v uint8) uint8 {
		if (v^regs.Get(types.TAC))&0b11 != 0 {
			c.timaCounter = 0
		}
		return v & 0b111
	}, func(v uint8) uint8 {
		return v | 0b1111_1000
	})

	return c
}

// Period returns the number of instructions between
// increments of TIMA for the given TAC value.
func Period(tac uint8, doubleSpeed bool) uint32 {
	p := types.InstructionsPerSecond / frequencies[tac&0b11]
	if doubleSpeed {
		p *= 2
	}
	return p
}

func (c *Controller) divPeriod() uint32 {
	if c.doubleSpeed {
		return types.InstructionsPerDIV * 2
	}
	return types.InstructionsPerDIV
}

// Tick advances the timer by one instruction.
func (c *Controller) Tick() {
	c.divCounter++
	if c.divCounter >= c.divPeriod() {
		c.divCounter = 0
		c.regs.Set(types.DIV, c.regs.Get(types.DIV)+1)
	}

	tac := c.regs.Get(types.TAC)
	if tac&types.Bit2 == 0 {
		return
	}
	c.timaCounter++
	if c.timaCounter < Period(tac, c.doubleSpeed) {
		return
	}
	c.timaCounter = 0

	tima := c.regs.Get(types.TIMA) + 1
	if tima == 0 {
		tima = c.regs.Get(types.TMA)
		c.irq.Request(interrupts.TimerFlag)
	}
	c.regs.Set(types.TIMA, tima)
}

// SetDoubleSpeed halves the rate of the divider and timer
// relative to the instruction count.
func (c *Controller) SetDoubleSpeed(enabled bool) {
	c.doubleSpeed = enabled
}

// Reset clears the internal counters.
func (c *Controller) Reset() {
	c.divCounter = 0
	c.timaCounter = 0
	c.doubleSpeed = false
}

var _ types.Stater = (*Controller)(nil)

func (c *Controller) Load(s *types.State) {
	c.divCounter = s.Read32()
	c.timaCounter = s.Read32()
	c.doubleSpeed = s.ReadBool()
}

func (c *Controller) Save(s *types.State) {
	s.Write32(c.divCounter)
	s.Write32(c.timaCounter)
	s.WriteBool(c.doubleSpeed)
}
