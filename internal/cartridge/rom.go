package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC. It may have up to 8KiB of RAM, which is
// always enabled.
type ROMCartridge struct {
	banked
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(rom []byte, header *Header) *ROMCartridge {
	return &ROMCartridge{
		banked: newBanked(rom, header, header.RAMSize()),
	}
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return r.readROM(0, address)
	case address < 0x8000:
		return r.readROM(1, address)
	}
	return r.readRAM(0, address)
}

// Write writes to the RAM, writes to the ROM are ignored.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 {
		r.writeRAM(0, address, value)
	}
}

func (r *ROMCartridge) Load(s *types.State) {
	s.ReadData(r.ram)
}

func (r *ROMCartridge) Save(s *types.State) {
	s.WriteData(r.ram)
}
