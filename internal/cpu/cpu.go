// Package cpu implements the Sharp LR35902 instruction set. Every
// executed instruction counts as one tick of the rest of the system,
// which drives the divider, the timer and the LCD.
package cpu

import (
	"context"
	"sync/atomic"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, and left once an interrupt is requested.
	ModeHalt
	// ModeStop is entered by STOP on the DMG, and behaves like ModeHalt.
	ModeStop
)

// contextCheckInterval is how many instructions Run executes between
// checks of its context.
const contextCheckInterval = 1 << 10

// Bus is the address space seen by the CPU.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	bus  Bus
	regs *io.Registers
	IRQ  *interrupts.Service

	// components that need to be ticked
	timer *timer.Controller
	ppu   *ppu.PPU

	mode        mode
	doubleSpeed bool
	cgb         bool

	// Instructions counts the iterations of the dispatcher, including
	// the ones spent halted.
	Instructions uint64

	// FramePacing makes the CPU wait for the display at the end of
	// every frame.
	FramePacing bool

	Debug           bool
	DebugBreakpoint bool

	stopped atomic.Bool
	log     log.Logger
}

// NewCPU creates a new CPU reading and writing through bus, and ticking
// the timer and the PPU once per instruction.
func NewCPU(bus Bus, regs *io.Registers, irq *interrupts.Service, t *timer.Controller, p *ppu.PPU, cgb bool, l log.Logger) *CPU {
	if l == nil {
		l = log.NewNullLogger()
	}
	c := &CPU{
		bus:   bus,
		regs:  regs,
		IRQ:   irq,
		timer: t,
		ppu:   p,
		cgb:   cgb,
		log:   l,
	}
	if cgb {
		regs.Reserve(types.KEY1, func(v uint8) uint8 {
			// only the armed bit is writable
			return regs.Get(types.KEY1)&types.Bit7 | v&types.Bit0
		}, func(v uint8) uint8 {
			return v | 0x7E
		})
	}
	return c
}

// Reset loads the register values left behind by the boot ROM of the
// given model.
func (c *CPU) Reset(model types.Model) {
	values := types.ModelRegisters[model]
	for i, reg := range []Register{A, F, B, C, D, E, H, L} {
		c.Set(reg, values[i])
	}
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.mode = ModeNormal
	c.doubleSpeed = false
	c.Instructions = 0
	c.DebugBreakpoint = false
	c.stopped.Store(false)
}

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.mode != ModeNormal
}

// DoubleSpeed reports whether the CGB double speed mode is active.
func (c *CPU) DoubleSpeed() bool {
	return c.doubleSpeed
}

// Step runs one iteration of the dispatcher: one instruction, or one
// idle tick while halted, followed by a check for interrupts.
func (c *CPU) Step() {
	if c.mode == ModeNormal {
		c.execute()
	} else if c.IRQ.Pending() {
		c.mode = ModeNormal
	}

	c.tick()
	c.IRQ.Tick()

	if c.IRQ.IME && c.IRQ.HasInterrupts() {
		c.executeInterrupt()
	}
}

// Stop asks Run and RunFor to return before the next instruction. It is
// safe to call from another goroutine.
func (c *CPU) Stop() {
	c.stopped.Store(true)
}

// Stopped reports whether Stop has been called since the last Reset.
func (c *CPU) Stopped() bool {
	return c.stopped.Load()
}

// Run runs the CPU until Stop is called or ctx is done.
func (c *CPU) Run(ctx context.Context) error {
	for !c.stopped.Load() {
		c.Step()
		if c.Instructions%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunFor runs at most n iterations, returning how many were run before
// Stop was called.
func (c *CPU) RunFor(n int) int {
	for i := 0; i < n; i++ {
		if c.stopped.Load() {
			return i
		}
		c.Step()
	}
	return n
}

// execute decodes and runs the instruction at PC. PC is moved past the
// whole instruction before it runs, so relative jumps and pushed return
// addresses start from the next instruction.
func (c *CPU) execute() {
	pc := c.PC
	opcode := c.bus.Read(pc)
	instruction := InstructionSet[opcode]
	if opcode == 0xCB {
		instruction = InstructionSetCB[c.bus.Read(pc+1)]
	}

	var operand uint16
	switch instruction.length {
	case 2:
		operand = uint16(c.bus.Read(pc + 1))
	case 3:
		operand = uint16(c.bus.Read(pc+1)) | uint16(c.bus.Read(pc+2))<<8
	}
	c.PC = pc + uint16(instruction.length)

	if c.Debug {
		c.log.Debugf("%04X: %-14s %s", pc, instruction.name, &c.Registers)
	}
	instruction.fn(c, operand)
}

// executeInterrupt pushes PC and jumps to the vector of the highest
// priority interrupt that is requested and enabled.
func (c *CPU) executeInterrupt() {
	vector := c.IRQ.Vector()
	c.IRQ.IME = false
	c.mode = ModeNormal
	c.push(c.PC)
	c.PC = vector
}

// tick the various components of the CPU.
func (c *CPU) tick() {
	c.Instructions++
	c.timer.Tick()
	if c.ppu.Tick() && c.FramePacing {
		c.ppu.WaitForDisplay(c.stopped.Load)
	}
}

// toggleSpeed switches between normal and double speed, as STOP does
// when the switch has been armed through KEY1.
func (c *CPU) toggleSpeed() {
	c.doubleSpeed = !c.doubleSpeed
	c.timer.SetDoubleSpeed(c.doubleSpeed)
	c.ppu.SetDoubleSpeed(c.doubleSpeed)

	key1 := uint8(0)
	if c.doubleSpeed {
		key1 = types.Bit7
	}
	c.regs.Set(types.KEY1, key1)
	c.log.Debugf("cpu: double speed %t", c.doubleSpeed)
}

// readHL reads the byte addressed by HL.
func (c *CPU) readHL() uint8 {
	return c.bus.Read(c.Pair(HL))
}

// readOperandRegister reads the register selected by a 3-bit opcode
// field, where 6 selects (HL).
func (c *CPU) readOperandRegister(index uint8) uint8 {
	if index == 6 {
		return c.readHL()
	}
	return c.r[index]
}

func (c *CPU) writeOperandRegister(index uint8, value uint8) {
	if index == 6 {
		c.bus.Write(c.Pair(HL), value)
		return
	}
	c.r[index] = value
}

// push pushes a 16 bit value onto the stack, high byte first.
func (c *CPU) push(value uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(value))
}

// pop pops a 16 bit value off the stack, low byte first.
func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.SP)
	c.SP++
	high := c.bus.Read(c.SP)
	c.SP++
	return utils.BytesToUint16(high, low)
}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	s.ReadData(c.r[:])
	c.r[F] &= 0xF0
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.mode = s.Read8()
	c.doubleSpeed = s.ReadBool()
	c.Instructions = s.Read64()
}

func (c *CPU) Save(s *types.State) {
	s.WriteData(c.r[:])
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(c.mode)
	s.WriteBool(c.doubleSpeed)
	s.Write64(c.Instructions)
}
