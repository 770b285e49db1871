package ppu

import "github.com/thelolagemann/dmgcore/internal/types"

// oamDMA copies 160 bytes from value<<8 into OAM. The copy happens
// at once rather than over 160 machine cycles.
func (p *PPU) oamDMA(value uint8) uint8 {
	source := uint16(value) << 8
	// sources above 0xDFFF read from work RAM
	if source >= 0xE000 {
		source &^= 0x2000
	}
	for i := uint16(0); i < oamSize; i++ {
		p.oam[i] = p.bus.Read(source + i)
	}
	return value
}

func (p *PPU) initDMA() {
	p.regs.Reserve(types.DMA, p.oamDMA, nil)
}
