// Package serial provides the link port registers. Transfers are not
// timed: a transfer started with the internal clock completes as soon
// as SC is written.
package serial

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices, and for raising the serial
// interrupt once a transfer completes.
type Controller struct {
	regs           *io.Registers
	irq            *interrupts.Service
	AttachedDevice Device // the device that is attached to this controller.
}

// NewController creates a new Controller attached to a device that
// acts as if the port were unplugged. Use Attach to plug something in.
func NewController(regs *io.Registers, irq *interrupts.Service) *Controller {
	c := &Controller{
		regs:           regs,
		irq:            irq,
		AttachedDevice: nullDevice{},
	}
	regs.Reserve(types.SC, c.writeControl, func(v byte) byte {
		return v | 0x7E // bits 1-6 are unused
	})

	return c
}

// Attach attaches a Device to the Controller. A nil device unplugs
// the current one.
func (c *Controller) Attach(d Device) {
	if d == nil {
		d = nullDevice{}
	}
	c.AttachedDevice = d
}

func (c *Controller) writeControl(v byte) byte {
	// only the internal clock drives a transfer, an external clock
	// never ticks without a partner
	if v&(types.Bit7|types.Bit0) != types.Bit7|types.Bit0 {
		return v & (types.Bit7 | types.Bit0)
	}

	in := c.AttachedDevice.Exchange(c.regs.Get(types.SB))
	c.regs.Set(types.SB, in)
	c.irq.Request(interrupts.SerialFlag)

	return types.Bit0
}
