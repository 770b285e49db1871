package cartridge

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// MemoryBankedCartridge3 represents a MemoryBankedCartridge3 cartridge. This
// cartridge type supports up to 2MiB of ROM and 32KiB of RAM, and provides a
// real time clock on the timer variants.
type MemoryBankedCartridge3 struct {
	banked

	romBank    uint8
	ramEnabled bool
	// selected holds the last value written to 0x4000 - 0x5FFF, either a
	// RAM bank (0x00 - 0x03) or an RTC register (0x08 - 0x0C).
	selected uint8

	rtc *RTC
}

// NewMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func NewMemoryBankedCartridge3(rom []byte, header *Header) *MemoryBankedCartridge3 {
	m := &MemoryBankedCartridge3{
		banked:  newBanked(rom, header, header.RAMSize()),
		romBank: 1,
	}
	if header.CartridgeType.Timer() {
		m.rtc = newRTC()
	}
	return m
}

func (m *MemoryBankedCartridge3) rtcSelected() bool {
	return m.rtc != nil && m.selected >= rtcSeconds && m.selected <= rtcDaysHigh
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(0, address)
	case address < 0x8000:
		return m.readROM(int(m.romBank), address)
	}
	switch {
	case !m.ramEnabled:
		return 0xFF
	case m.rtcSelected():
		return m.rtc.read(m.selected)
	case m.selected <= 0x03:
		return m.readRAM(int(m.selected), address)
	}
	return 0xFF
}

// Write attempts to switch the ROM or RAM bank, or writes to the selected
// RAM bank or clock register.
func (m *MemoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = utils.ZeroAdjust(value & 0x7F)
	case address < 0x6000:
		m.selected = value
	case address < 0x8000:
		if m.rtc != nil {
			m.rtc.latch(value)
		}
	case address >= 0xA000 && address < 0xC000:
		switch {
		case !m.ramEnabled:
		case m.rtcSelected():
			m.rtc.write(m.selected, value)
		case m.selected <= 0x03:
			m.writeRAM(int(m.selected), address, value)
		}
	}
}

// SaveRAM returns the external RAM, followed by the clock registers on
// timer cartridges.
func (m *MemoryBankedCartridge3) SaveRAM() []byte {
	data := m.banked.SaveRAM()
	if m.rtc != nil {
		data = append(data, m.rtc.marshal()...)
	}
	return data
}

// LoadRAM restores the external RAM. Saves without a clock block are
// accepted for timer cartridges, leaving the clock untouched.
func (m *MemoryBankedCartridge3) LoadRAM(data []byte) error {
	if m.rtc != nil && len(data) == len(m.ram)+rtcSaveSize {
		m.rtc.unmarshal(data[len(m.ram):])
		data = data[:len(m.ram)]
	}
	if len(data) != len(m.ram) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSaveSize, len(data), len(m.ram))
	}
	copy(m.ram, data)
	return nil
}

func (m *MemoryBankedCartridge3) Load(s *types.State) {
	m.romBank = s.Read8()
	m.ramEnabled = s.ReadBool()
	m.selected = s.Read8()
	s.ReadData(m.ram)
	if m.rtc != nil {
		m.rtc.Load(s)
	}
}

func (m *MemoryBankedCartridge3) Save(s *types.State) {
	s.Write8(m.romBank)
	s.WriteBool(m.ramEnabled)
	s.Write8(m.selected)
	s.WriteData(m.ram)
	if m.rtc != nil {
		m.rtc.Save(s)
	}
}
