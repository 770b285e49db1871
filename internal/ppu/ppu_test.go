package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// memory is a flat 64KiB bus used as the DMA source.
type memory [0x10000]uint8

func (m *memory) Read(addr uint16) uint8 { return m[addr] }

type fakeDisplay struct {
	vm       VideoMemory
	lines    []uint8
	frames   int
	consumed bool
}

func (d *fakeDisplay) Attach(vm VideoMemory) { d.vm = vm }
func (d *fakeDisplay) Scanline(line uint8) { d.lines = append(d.lines, line) }
func (d *fakeDisplay) FrameReady() { d.frames++ }
func (d *fakeDisplay) FrameConsumed() bool { return d.consumed }

func newPPU(t *testing.T, cgb bool) (*PPU, *io.Registers, *interrupts.Service, *memory) {
	t.Helper()
	regs := io.NewRegisters()
	irq := interrupts.NewService(regs)
	p := New(regs, irq, cgb, nil)
	model := types.DMGABC
	if cgb {
		model = types.CGBABC
	}
	regs.Reset(model)
	p.Reset()
	regs.Write(types.IF, 0)

	mem := &memory{}
	p.AttachBus(mem)
	return p, regs, irq, mem
}

func tick(p *PPU, n int) (frames int) {
	for i := 0; i < n; i++ {
		if p.Tick() {
			frames++
		}
	}
	return frames
}

func TestPPU_Scanlines(t *testing.T) {
	p, regs, irq, _ := newPPU(t, false)

	tick(p, types.InstructionsPerScanline-1)
	assert.Equal(t, uint8(0), regs.Read(types.LY))
	tick(p, 1)
	assert.Equal(t, uint8(1), regs.Read(types.LY))

	tick(p, types.InstructionsPerScanline*143)
	assert.Equal(t, uint8(144), regs.Read(types.LY))
	assert.Equal(t, uint8(interrupts.VBlankFlag), irq.Flag())
	assert.Equal(t, lcd.VBlank, regs.Read(types.STAT)&0b11)

	frames := tick(p, types.InstructionsPerScanline*10)
	assert.Equal(t, 1, frames)
	assert.Equal(t, uint8(0), regs.Read(types.LY))
}

func TestPPU_FrameLength(t *testing.T) {
	p, _, _, _ := newPPU(t, false)
	assert.Equal(t, 3, tick(p, types.InstructionsPerFrame*3))
}

func TestPPU_Modes(t *testing.T) {
	p, regs, irq, _ := newPPU(t, false)
	regs.Write(types.STAT, lcd.HBlankInterrupt|lcd.OAMInterrupt)

	assert.Equal(t, lcd.OAM, regs.Read(types.STAT)&0b11)
	tick(p, 10)
	assert.Equal(t, lcd.VRAM, regs.Read(types.STAT)&0b11)
	assert.False(t, irq.Pending())

	tick(p, 23)
	assert.Equal(t, lcd.HBlank, regs.Read(types.STAT)&0b11)
	assert.Equal(t, uint8(interrupts.LCDFlag), irq.Flag())

	regs.Write(types.IF, 0)
	tick(p, types.InstructionsPerScanline-33)
	assert.Equal(t, lcd.OAM, regs.Read(types.STAT)&0b11)
	assert.Equal(t, uint8(interrupts.LCDFlag), irq.Flag(), "entering mode 2 should request STAT")
}

func TestPPU_Coincidence(t *testing.T) {
	p, regs, irq, _ := newPPU(t, false)
	regs.Write(types.STAT, lcd.CoincidenceInterrupt)
	regs.Write(types.LYC, 3)

	tick(p, types.InstructionsPerScanline*2)
	assert.False(t, irq.Pending())
	assert.Zero(t, regs.Read(types.STAT)&lcd.Coincidence)

	tick(p, types.InstructionsPerScanline)
	assert.Equal(t, uint8(3), regs.Read(types.LY))
	assert.NotZero(t, regs.Read(types.STAT)&lcd.Coincidence)
	assert.Equal(t, uint8(interrupts.LCDFlag), irq.Flag())
}

func TestPPU_LCDOff(t *testing.T) {
	p, regs, _, _ := newPPU(t, false)
	tick(p, types.InstructionsPerScanline*5)
	regs.Write(types.LCDC, 0x11)

	assert.Equal(t, uint8(0), regs.Read(types.LY))
	assert.Equal(t, 0, tick(p, types.InstructionsPerFrame*2))
	assert.Equal(t, uint8(0), regs.Read(types.LY))
	assert.Equal(t, lcd.HBlank, regs.Read(types.STAT)&0b11)

	// writes to LY are ignored
	regs.Write(types.LY, 0x40)
	assert.Equal(t, uint8(0), regs.Read(types.LY))

	regs.Write(types.LCDC, 0x91)
	tick(p, types.InstructionsPerScanline)
	assert.Equal(t, uint8(1), regs.Read(types.LY))
}

func TestPPU_Display(t *testing.T) {
	p, _, _, _ := newPPU(t, false)
	d := &fakeDisplay{}
	p.AttachDisplay(d)
	require.NotNil(t, d.vm)

	tick(p, types.InstructionsPerFrame)
	assert.Len(t, d.lines, types.ScanlinesPerFrame)
	assert.Equal(t, uint8(0), d.lines[0])
	assert.Equal(t, uint8(153), d.lines[153])
	assert.Equal(t, 1, d.frames)

	t.Run("pacing", func(t *testing.T) {
		stops := 0
		p.WaitForDisplay(func() bool {
			stops++
			return stops > 3
		})
		assert.Equal(t, 4, stops)

		d.consumed = true
		p.WaitForDisplay(func() bool {
			t.Fatal("should not poll stop once the frame is consumed")
			return true
		})
	})
}

func TestPPU_Window(t *testing.T) {
	p, regs, _, _ := newPPU(t, false)
	regs.Write(types.LCDC, 0x91|0x20)
	regs.Write(types.WY, 10)
	regs.Write(types.WX, 7)

	tick(p, types.InstructionsPerScanline*20)
	assert.Equal(t, uint8(10), p.WindowLine())

	tick(p, types.InstructionsPerFrame-types.InstructionsPerScanline*20)
	assert.Equal(t, uint8(0), p.WindowLine(), "window line resets on line 0")
}

func TestPPU_OAMDMA(t *testing.T) {
	p, regs, _, mem := newPPU(t, false)
	for i := 0; i < 0xA0; i++ {
		mem[0xC100+i] = uint8(i) ^ 0x5A
	}
	regs.Write(types.DMA, 0xC1)
	for i := uint16(0); i < 0xA0; i++ {
		assert.Equal(t, uint8(i)^0x5A, p.Read(0xFE00+i))
	}
}

func TestPPU_VRAMBanks(t *testing.T) {
	t.Run("cgb", func(t *testing.T) {
		p, regs, _, _ := newPPU(t, true)
		p.Write(0x8000, 0x11)
		regs.Write(types.VBK, 1)
		assert.Equal(t, uint8(0xFF), regs.Read(types.VBK))
		p.Write(0x8000, 0x22)
		assert.Equal(t, uint8(0x22), p.Read(0x8000))
		regs.Write(types.VBK, 0)
		assert.Equal(t, uint8(0x11), p.Read(0x8000))
		assert.Equal(t, uint8(0x22), p.VRAM(1, 0))
	})
	t.Run("dmg", func(t *testing.T) {
		p, regs, _, _ := newPPU(t, false)
		regs.Write(types.VBK, 1)
		assert.Equal(t, uint8(0xFF), regs.Read(types.VBK))
		regs.Write(types.VBK, 0)
		assert.Equal(t, uint8(0xFF), regs.Read(types.VBK))
		p.Write(0x9FFF, 0x33)
		assert.Equal(t, uint8(0x33), p.VRAM(0, 0x1FFF))
	})
}

func TestPPU_HDMA(t *testing.T) {
	t.Run("general", func(t *testing.T) {
		p, regs, _, mem := newPPU(t, true)
		for i := 0; i < 0x40; i++ {
			mem[0x4000+i] = uint8(i + 1)
		}
		regs.Write(types.HDMA1, 0x40)
		regs.Write(types.HDMA2, 0x00)
		regs.Write(types.HDMA3, 0x01)
		regs.Write(types.HDMA4, 0x00)
		regs.Write(types.HDMA5, 0x03) // 4 blocks

		for i := uint16(0); i < 0x40; i++ {
			assert.Equal(t, uint8(i+1), p.VRAM(0, 0x100+i))
		}
		assert.Equal(t, uint8(0xFF), regs.Read(types.HDMA5))
	})
	t.Run("hblank", func(t *testing.T) {
		p, regs, _, mem := newPPU(t, true)
		for i := 0; i < 0x20; i++ {
			mem[0xC000+i] = 0xA0 + uint8(i)
		}
		regs.Write(types.HDMA1, 0xC0)
		regs.Write(types.HDMA2, 0x00)
		regs.Write(types.HDMA3, 0x00)
		regs.Write(types.HDMA4, 0x00)
		regs.Write(types.HDMA5, 0x81) // 2 blocks

		assert.Equal(t, uint8(0x01), regs.Read(types.HDMA5))
		assert.Equal(t, uint8(0), p.VRAM(0, 0))

		tick(p, types.InstructionsPerScanline)
		assert.Equal(t, uint8(0xA0), p.VRAM(0, 0))
		assert.Equal(t, uint8(0), p.VRAM(0, 0x10))
		assert.Equal(t, uint8(0x00), regs.Read(types.HDMA5))

		tick(p, types.InstructionsPerScanline)
		assert.Equal(t, uint8(0xB0), p.VRAM(0, 0x10))
		assert.Equal(t, uint8(0xFF), regs.Read(types.HDMA5))
	})
	t.Run("cancel", func(t *testing.T) {
		p, regs, _, _ := newPPU(t, true)
		regs.Write(types.HDMA5, 0x83)
		tick(p, types.InstructionsPerScanline)
		regs.Write(types.HDMA5, 0x00)
		assert.Equal(t, uint8(0x82), regs.Read(types.HDMA5))
	})
}

func TestPPU_DoubleSpeed(t *testing.T) {
	p, regs, _, _ := newPPU(t, true)
	p.SetDoubleSpeed(true)
	tick(p, types.InstructionsPerScanline)
	assert.Equal(t, uint8(0), regs.Read(types.LY))
	tick(p, types.InstructionsPerScanline)
	assert.Equal(t, uint8(1), regs.Read(types.LY))
}

func TestPPU_Palettes(t *testing.T) {
	p, regs, _, _ := newPPU(t, true)
	regs.Write(types.BCPS, 0x80)
	regs.Write(types.BCPD, 0x00)
	regs.Write(types.BCPD, 0x7C) // blue
	assert.Equal(t, [3]uint8{0, 0, 0xFF}, p.BackgroundColour(0, 0))
	assert.Equal(t, uint8(0xC2), regs.Read(types.BCPS))

	regs.Write(types.OCPS, 0x02)
	regs.Write(types.OCPD, 0xE0)
	assert.Equal(t, uint8(0xE0), regs.Read(types.OCPD))
}

func TestPPU_State(t *testing.T) {
	p, _, _, _ := newPPU(t, true)
	p.Write(0x8123, 0x42)
	tick(p, 1000)
	s := types.NewState()
	p.Save(s)

	other, _, _, _ := newPPU(t, true)
	other.Load(s)
	assert.Equal(t, uint8(0x42), other.Read(0x8123))
	assert.Equal(t, p.LY(), other.LY())
	assert.Equal(t, p.position, other.position)
	assert.NoError(t, s.Err())
}
