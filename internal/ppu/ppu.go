// Package ppu drives the timing of the LCD: the current scanline, the
// STAT mode and its interrupts, and the video memory transfers. Pixel
// composition is left to a Display, which is notified after every
// scanline and at the start of every VBlank.
package ppu

import (
	"time"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	vramSize = 0x2000
	oamSize  = 0xA0

	// pacingStep is the longest single sleep while waiting for the
	// display, and pacingLimit the longest total wait for one frame.
	pacingStep  = time.Millisecond
	pacingLimit = time.Second / types.FramesPerSecond * 4
)

// Reader is used by the DMA transfers to read their source.
type Reader interface {
	Read(addr uint16) uint8
}

// PPU owns the video RAM and OAM, and advances the LCD by one
// instruction every time Tick is called.
type PPU struct {
	vram     [2][vramSize]uint8
	vramBank uint8
	oam      [oamSize]uint8

	lcdc lcd.Controller
	hdma HDMA

	bgPalette  *palette.CGBPalette
	objPalette *palette.CGBPalette

	// position within the current scanline, in instructions
	position int
	ly       uint8
	mode     lcd.Mode

	windowLine  uint8
	doubleSpeed bool
	cgb         bool

	display Display
	bus     Reader
	regs    *io.Registers
	irq     *interrupts.Service
	log     log.Logger
}

// New returns a PPU registered on the given register file.
func New(regs *io.Registers, irq *interrupts.Service, cgb bool, l log.Logger) *PPU {
	if l == nil {
		l = log.NewNullLogger()
	}
	p := &PPU{
		regs:       regs,
		irq:        irq,
		cgb:        cgb,
		log:        l,
		bgPalette:  palette.NewCGBPalette(),
		objPalette: palette.NewCGBPalette(),
	}
	p.init()
	return p
}

func (p *PPU) init() {
	p.regs.Reserve(types.LCDC, func(v uint8) uint8 {
		wasEnabled := p.lcdc.Enabled
		p.lcdc.Write(v)
		switch {
		case wasEnabled && !p.lcdc.Enabled:
			// the LCD stops on line 0 until it is turned back on
			p.ly, p.position, p.mode = 0, 0, lcd.HBlank
			p.regs.Set(types.LY, 0)
		case !wasEnabled && p.lcdc.Enabled:
			p.position, p.mode = 0, lcd.OAM
			p.checkCoincidence()
		}
		return v
	}, nil)
	p.regs.Reserve(types.STAT, func(v uint8) uint8 {
		return lcd.WritableStatus(v)
	}, func(v uint8) uint8 {
		return lcd.Status(v, p.currentMode(), p.enabled() && p.coincidence())
	})
	p.regs.Reserve(types.LY, func(uint8) uint8 {
		// read only
		return p.ly
	}, nil)
	p.regs.Reserve(types.LYC, func(v uint8) uint8 {
		p.regs.Set(types.LYC, v)
		if p.enabled() {
			p.checkCoincidence()
		}
		return v
	}, nil)
	p.regs.Reserve(types.VBK, func(v uint8) uint8 {
		if p.cgb {
			p.vramBank = v & types.Bit0
		}
		return v
	}, func(uint8) uint8 {
		if !p.cgb {
			return 0xFF
		}
		return 0xFE | p.vramBank
	})
	p.regs.Reserve(types.BCPS, p.bgPalette.SetIndex, func(uint8) uint8 { return p.bgPalette.GetIndex() })
	p.regs.Reserve(types.BCPD, p.bgPalette.Write, func(uint8) uint8 { return p.bgPalette.Read() })
	p.regs.Reserve(types.OCPS, p.objPalette.SetIndex, func(uint8) uint8 { return p.objPalette.GetIndex() })
	p.regs.Reserve(types.OCPD, p.objPalette.Write, func(uint8) uint8 { return p.objPalette.Read() })

	p.initDMA()
	p.initHDMA()
}

// AttachBus sets the source of DMA transfers.
func (p *PPU) AttachBus(bus Reader) {
	p.bus = bus
}

// AttachDisplay sets the display notified of scanlines and frames.
func (p *PPU) AttachDisplay(d Display) {
	p.display = d
	if d != nil {
		d.Attach(p)
	}
}

// Reset puts the LCD at the start of a frame and syncs the decoded
// registers with the register file.
func (p *PPU) Reset() {
	p.vram = [2][vramSize]uint8{}
	p.oam = [oamSize]uint8{}
	p.vramBank = 0
	p.hdma = HDMA{}
	p.lcdc.Write(p.regs.Get(types.LCDC))
	p.ly = 0
	p.position = 0
	p.mode = lcd.OAM
	p.windowLine = 0
	p.doubleSpeed = false
	p.regs.Set(types.LY, p.ly)
}

func (p *PPU) enabled() bool {
	return p.lcdc.Enabled
}

func (p *PPU) currentMode() lcd.Mode {
	if !p.enabled() {
		return lcd.HBlank
	}
	return p.mode
}

func (p *PPU) coincidence() bool {
	return p.ly == p.regs.Get(types.LYC)
}

func (p *PPU) scale() int {
	if p.doubleSpeed {
		return 2
	}
	return 1
}

// checkCoincidence requests a STAT interrupt if LY matches LYC and
// the coincidence source is enabled.
func (p *PPU) checkCoincidence() {
	if p.coincidence() && p.regs.TestBit(types.STAT, lcd.CoincidenceInterrupt) {
		p.irq.Request(interrupts.LCDFlag)
	}
}

// setMode changes the LCD mode, requesting the STAT interrupt of the
// new mode when enabled.
func (p *PPU) setMode(m lcd.Mode) {
	if p.mode == m {
		return
	}
	p.mode = m
	if bit := lcd.ModeInterrupt(m); bit != 0 && p.regs.TestBit(types.STAT, bit) {
		p.irq.Request(interrupts.LCDFlag)
	}
	if m == lcd.HBlank {
		p.hBlankHDMA()
	}
}

// Tick advances the LCD by one instruction. It returns true when the
// last scanline of a frame has finished.
func (p *PPU) Tick() bool {
	if !p.enabled() {
		return false
	}

	p.position++
	if p.position < types.InstructionsPerScanline*p.scale() {
		p.setMode(lcd.ModeAt(p.ly, p.position, p.scale()))
		return false
	}

	// end of scanline
	p.position = 0
	if p.display != nil {
		p.display.Scanline(p.ly)
	}
	if p.ly < types.VisibleScanlines && p.windowVisible() {
		p.windowLine++
	}

	frameDone := false
	p.ly++
	switch {
	case p.ly == types.VisibleScanlines:
		p.irq.Request(interrupts.VBlankFlag)
		if p.display != nil {
			p.display.FrameReady()
		}
	case p.ly == types.ScanlinesPerFrame:
		p.ly = 0
		p.windowLine = 0
		frameDone = true
	}
	p.regs.Set(types.LY, p.ly)
	p.checkCoincidence()
	p.setMode(lcd.ModeAt(p.ly, 0, p.scale()))

	return frameDone
}

func (p *PPU) windowVisible() bool {
	return p.lcdc.WindowEnabled && p.ly >= p.regs.Get(types.WY) && p.regs.Get(types.WX) <= 166
}

// WaitForDisplay blocks in short sleeps until the display has consumed
// the last frame, stop returns true, or the wait times out.
func (p *PPU) WaitForDisplay(stop func() bool) {
	if p.display == nil {
		return
	}
	deadline := time.Now().Add(pacingLimit)
	for !p.display.FrameConsumed() {
		if stop() || time.Now().After(deadline) {
			return
		}
		time.Sleep(pacingStep)
	}
}

// SetDoubleSpeed doubles the length of a scanline in instructions.
func (p *PPU) SetDoubleSpeed(enabled bool) {
	p.doubleSpeed = enabled
	p.position = 0
}

// Read reads video RAM (0x8000 - 0x9FFF) or OAM (0xFE00 - 0xFE9F).
func (p *PPU) Read(addr uint16) uint8 {
	if addr >= 0xFE00 {
		return p.oam[addr-0xFE00]
	}
	return p.vram[p.vramBank][addr&0x1FFF]
}

// Write writes video RAM (0x8000 - 0x9FFF) or OAM (0xFE00 - 0xFE9F).
func (p *PPU) Write(addr uint16, value uint8) {
	if addr >= 0xFE00 {
		p.oam[addr-0xFE00] = value
		return
	}
	p.vram[p.vramBank][addr&0x1FFF] = value
}

// LY returns the current scanline.
func (p *PPU) LY() uint8 {
	return p.ly
}

var _ VideoMemory = (*PPU)(nil)

func (p *PPU) VRAM(bank uint8, offset uint16) uint8 {
	return p.vram[bank&1][offset&0x1FFF]
}

func (p *PPU) OAM(offset uint8) uint8 {
	if offset >= oamSize {
		return 0xFF
	}
	return p.oam[offset]
}

func (p *PPU) Register(addr uint16) uint8 {
	return p.regs.Get(addr)
}

func (p *PPU) WindowLine() uint8 {
	return p.windowLine
}

func (p *PPU) BackgroundColour(n, c uint8) [3]uint8 {
	return p.bgPalette.Colour(n, c)
}

func (p *PPU) ObjectColour(n, c uint8) [3]uint8 {
	return p.objPalette.Colour(n, c)
}

var _ types.Stater = (*PPU)(nil)

func (p *PPU) Load(s *types.State) {
	s.ReadData(p.vram[0][:])
	s.ReadData(p.vram[1][:])
	p.vramBank = s.Read8()
	s.ReadData(p.oam[:])
	p.position = int(s.Read16())
	p.ly = s.Read8()
	p.mode = s.Read8()
	p.windowLine = s.Read8()
	p.doubleSpeed = s.ReadBool()
	p.hdma.Load(s)
	p.bgPalette.Load(s)
	p.objPalette.Load(s)
	p.lcdc.Write(p.regs.Get(types.LCDC))
}

func (p *PPU) Save(s *types.State) {
	s.WriteData(p.vram[0][:])
	s.WriteData(p.vram[1][:])
	s.Write8(p.vramBank)
	s.WriteData(p.oam[:])
	s.Write16(uint16(p.position))
	s.Write8(p.ly)
	s.Write8(p.mode)
	s.Write8(p.windowLine)
	s.WriteBool(p.doubleSpeed)
	p.hdma.Save(s)
	p.bgPalette.Save(s)
	p.objPalette.Save(s)
}
