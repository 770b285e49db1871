package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// HDMA copies data into video RAM on the CGB. A general purpose
// transfer copies everything as soon as HDMA5 is written, while an
// HBlank transfer copies 16 bytes at the start of every HBlank.
type HDMA struct {
	source      uint16
	destination uint16

	// remaining 16 byte blocks
	blocks uint8
	active bool
}

func (p *PPU) initHDMA() {
	h := &p.hdma
	p.regs.Reserve(types.HDMA1, func(v uint8) uint8 {
		h.source = h.source&0x00FF | uint16(v)<<8
		return v
	}, readFF)
	p.regs.Reserve(types.HDMA2, func(v uint8) uint8 {
		h.source = h.source&0xFF00 | uint16(v&0xF0)
		return v
	}, readFF)
	p.regs.Reserve(types.HDMA3, func(v uint8) uint8 {
		h.destination = h.destination&0x00FF | uint16(v&0x1F)<<8
		return v
	}, readFF)
	p.regs.Reserve(types.HDMA4, func(v uint8) uint8 {
		h.destination = h.destination&0xFF00 | uint16(v&0xF0)
		return v
	}, readFF)
	p.regs.Reserve(types.HDMA5, p.writeHDMA5, func(uint8) uint8 {
		if h.active {
			return h.blocks - 1
		}
		return types.Bit7 | (h.blocks-1)&0x7F
	})
}

func readFF(uint8) uint8 { return 0xFF }

func (p *PPU) writeHDMA5(v uint8) uint8 {
	h := &p.hdma
	if !p.cgb {
		return v
	}

	// writing bit 7 clear during an HBlank transfer cancels it
	if h.active && v&types.Bit7 == 0 {
		h.active = false
		return v
	}

	h.blocks = v&0x7F + 1
	if v&types.Bit7 == 0 {
		for h.blocks > 0 {
			p.hdmaBlock()
		}
		h.blocks = 0 // reads back as 0xFF
		return v
	}

	h.active = true
	// a transfer started during HBlank copies its first block at once
	if p.enabled() && p.mode == lcd.HBlank && p.ly < types.VisibleScanlines {
		p.hdmaBlock()
	}
	return v
}

// hdmaBlock copies one block of 16 bytes.
func (p *PPU) hdmaBlock() {
	h := &p.hdma
	for i := 0; i < 16; i++ {
		p.vram[p.vramBank][h.destination&0x1FFF] = p.bus.Read(h.source)
		h.source++
		h.destination++
	}
	h.blocks--
	if h.blocks == 0 {
		h.active = false
	}
}

// hBlankHDMA runs at the start of every HBlank.
func (p *PPU) hBlankHDMA() {
	if p.hdma.active {
		p.hdmaBlock()
	}
}

func (h *HDMA) Load(s *types.State) {
	h.source = s.Read16()
	h.destination = s.Read16()
	h.blocks = s.Read8()
	h.active = s.ReadBool()
}

func (h *HDMA) Save(s *types.State) {
	s.Write16(h.source)
	s.Write16(h.destination)
	s.Write8(h.blocks)
	s.WriteBool(h.active)
}
