package serial

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func newController() (*Controller, *io.Registers, *interrupts.Service) {
	regs := io.NewRegisters()
	irq := interrupts.NewService(regs)
	return NewController(regs, irq), regs, irq
}

type echoDevice struct{ last byte }

func (e *echoDevice) Exchange(out byte) byte {
	e.last = out
	return out + 1
}

func TestController_Transfer(t *testing.T) {
	c, regs, irq := newController()
	dev := &echoDevice{}
	c.Attach(dev)

	regs.Write(types.SB, 0x41)
	regs.Write(types.SC, 0x81)

	assert.Equal(t, uint8(0x41), dev.last)
	assert.Equal(t, uint8(0x42), regs.Read(types.SB))
	assert.Equal(t, uint8(0x7F), regs.Read(types.SC), "transfer flag should be cleared")
	assert.Equal(t, uint8(interrupts.SerialFlag), irq.Flag())
}

func TestController_ExternalClock(t *testing.T) {
	c, regs, irq := newController()
	dev := &echoDevice{}
	c.Attach(dev)

	regs.Write(types.SB, 0x41)
	regs.Write(types.SC, 0x80)

	assert.Equal(t, uint8(0), dev.last)
	assert.Equal(t, uint8(0xFE), regs.Read(types.SC))
	assert.False(t, irq.Pending())
}

func TestController_Unplugged(t *testing.T) {
	c, regs, _ := newController()
	c.Attach(nil)
	regs.Write(types.SB, 0x12)
	regs.Write(types.SC, 0x81)
	assert.Equal(t, uint8(0xFF), regs.Read(types.SB))
}

func TestWriterDevice(t *testing.T) {
	c, regs, _ := newController()
	var out bytes.Buffer
	c.Attach(NewWriterDevice(&out))

	for _, b := range []byte("Passed") {
		regs.Write(types.SB, b)
		regs.Write(types.SC, 0x81)
	}
	assert.Equal(t, "Passed", out.String())
}

func TestBuffer(t *testing.T) {
	c, regs, _ := newController()
	buf := &Buffer{}
	c.Attach(buf)
	regs.Write(types.SB, 'X')
	regs.Write(types.SC, 0x81)
	assert.Equal(t, "X", buf.String())
}
