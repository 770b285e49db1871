package cartridge

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// MemoryBankedCartridge5 represents a MemoryBankedCartridge5 cartridge. It
// supports up to 8MiB of ROM through a 9-bit bank number, and up to 128KiB
// of RAM. Unlike the other controllers, bank 0 may be mapped into
// 0x4000 - 0x7FFF.
type MemoryBankedCartridge5 struct {
	banked

	ramEnabled bool
	romBank    uint16
	ramBank    uint8

	// Rumble is set while the rumble motor is driven.
	Rumble bool
}

// NewMemoryBankedCartridge5 returns a new MemoryBankedCartridge5 cartridge.
func NewMemoryBankedCartridge5(rom []byte, header *Header) *MemoryBankedCartridge5 {
	return &MemoryBankedCartridge5{
		banked:  newBanked(rom, header, header.RAMSize()),
		romBank: 1,
	}
}

func (m *MemoryBankedCartridge5) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(0, address) // first bank is always fixed
	case address < 0x8000:
		return m.readROM(int(m.romBank), address) // switchable bank
	}
	if !m.ramEnabled {
		return 0xFF
	}
	return m.readRAM(int(m.ramBank), address)
}

func (m *MemoryBankedCartridge5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		// ROM bank number (lower 8 bits)
		m.romBank = m.romBank&0x100 | uint16(value)
	case address < 0x4000:
		// ROM bank number (upper 1 bit)
		m.romBank = m.romBank&0xFF | uint16(value&0x01)<<8
	case address < 0x6000:
		// on rumble carts bit 3 drives the motor instead of selecting RAM
		if m.header.CartridgeType.Rumble() {
			m.Rumble = value&0x08 != 0
			m.ramBank = value & 0x07
		} else {
			m.ramBank = value & 0x0F
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			m.writeRAM(int(m.ramBank), address, value)
		}
	}
}

func (m *MemoryBankedCartridge5) Load(s *types.State) {
	m.ramEnabled = s.ReadBool()
	m.romBank = s.Read16()
	m.ramBank = s.Read8()
	m.Rumble = s.ReadBool()
	s.ReadData(m.ram)
}

func (m *MemoryBankedCartridge5) Save(s *types.State) {
	s.WriteBool(m.ramEnabled)
	s.Write16(m.romBank)
	s.Write8(m.ramBank)
	s.WriteBool(m.Rumble)
	s.WriteData(m.ram)
}
