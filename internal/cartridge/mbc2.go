package cartridge

import (
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// mbc2RAMSize is the size of the built-in RAM, 512 half bytes.
const mbc2RAMSize = 0x200

// MemoryBankedCartridge2 represents a MemoryBankedCartridge2 cartridge. It
// supports up to 256KiB of ROM and has 512x4 bits of RAM built into the
// controller, mirrored across 0xA000 - 0xBFFF.
type MemoryBankedCartridge2 struct {
	banked

	ramg bool
	romb uint8
}

// NewMemoryBankedCartridge2 returns a new MemoryBankedCartridge2 cartridge.
func NewMemoryBankedCartridge2(rom []byte, header *Header) *MemoryBankedCartridge2 {
	return &MemoryBankedCartridge2{
		banked: newBanked(rom, header, mbc2RAMSize),
		romb:   0x01,
	}
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected. Only the low nibble of RAM is wired, the upper nibble reads high.
func (m *MemoryBankedCartridge2) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(0, address)
	case address < 0x8000:
		return m.readROM(int(m.romb), address)
	}
	if !m.ramg {
		return 0xFF
	}
	return m.ram[address&0x01FF] | 0xF0
}

// Write handles the combined RAMG/ROMB register at 0x0000 - 0x3FFF, which
// is decoded by bit 8 of the address, and writes to RAM.
func (m *MemoryBankedCartridge2) Write(address uint16, value uint8) {
	switch {
	case address < 0x4000:
		if address&0x100 == 0x100 {
			m.romb = utils.ZeroAdjust(value & 0x1F)
		} else {
			m.ramg = value&0x0F == 0x0A
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramg {
			m.ram[address&0x01FF] = value & 0x0F
		}
	}
}

func (m *MemoryBankedCartridge2) Load(s *types.State) {
	m.ramg = s.ReadBool()
	m.romb = s.Read8()
	s.ReadData(m.ram)
}

func (m *MemoryBankedCartridge2) Save(s *types.State) {
	s.WriteBool(m.ramg)
	s.Write8(m.romb)
	s.WriteData(m.ram)
}
