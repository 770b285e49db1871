package cartridge

import (
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// MemoryBankedCartridge1 represents a MemoryBankedCartridge1 cartridge. This
// cartridge type supports up to 2MiB of ROM and 32KiB of RAM. A single
// 2-bit register is shared between the upper ROM bank bits and the RAM bank,
// and the banking mode decides which one it drives.
type MemoryBankedCartridge1 struct {
	banked

	bank1      uint8 // 5 bits, never 0
	bank2      uint8 // 2 bits
	ramEnabled bool
	ramMode    bool
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header *Header) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		banked: newBanked(rom, header, header.RAMSize()),
		bank1:  1,
	}
}

// romBank returns the bank mapped at 0x4000 - 0x7FFF.
func (m *MemoryBankedCartridge1) romBank() int {
	if m.ramMode {
		return int(m.bank1)
	}
	return int(m.bank2)<<5 | int(m.bank1)
}

func (m *MemoryBankedCartridge1) ramBank() int {
	if m.ramMode {
		return int(m.bank2)
	}
	return 0
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(0, address) // first bank is always fixed
	case address < 0x8000:
		return m.readROM(m.romBank(), address)
	}
	if !m.ramEnabled {
		return 0xFF
	}
	return m.readRAM(m.ramBank(), address)
}

// Write attempts to switch the ROM or RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.bank1 = utils.ZeroAdjust(value & 0x1F)
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.ramMode = value&0x01 == 0x01
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			m.writeRAM(m.ramBank(), address, value)
		}
	}
}

func (m *MemoryBankedCartridge1) Load(s *types.State) {
	m.bank1 = s.Read8()
	m.bank2 = s.Read8()
	m.ramEnabled = s.ReadBool()
	m.ramMode = s.ReadBool()
	s.ReadData(m.ram)
}

func (m *MemoryBankedCartridge1) Save(s *types.State) {
	s.Write8(m.bank1)
	s.Write8(m.bank2)
	s.WriteBool(m.ramEnabled)
	s.WriteBool(m.ramMode)
	s.WriteData(m.ram)
}
