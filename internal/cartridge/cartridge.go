// Package cartridge provides the Cartridge interface for the DMG and CGB.
// The cartridge holds the game ROM and any external RAM, and maps them
// into the address space through its memory bank controller.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

var (
	// ErrROMTooSmall is returned for images that cannot hold a header.
	ErrROMTooSmall = errors.New("rom too small")
	// ErrUnknownROMSize is returned for an unknown ROM size code at 0x0148.
	ErrUnknownROMSize = errors.New("unknown rom size code")
	// ErrUnsupportedType is returned for memory bank controllers that
	// are not emulated.
	ErrUnsupportedType = errors.New("unsupported cartridge type")
	// ErrSaveSize is returned when loading battery RAM of the wrong size.
	ErrSaveSize = errors.New("save data size mismatch")
)

// Cartridge represents a game cartridge. Read and Write are called for
// 0x0000 - 0x7FFF and 0xA000 - 0xBFFF.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() *Header
	types.Stater
}

// BatteryBacked is implemented by cartridges whose RAM survives power
// off. The returned data is what would be written to a .sav file.
type BatteryBacked interface {
	SaveRAM() []byte
	LoadRAM(data []byte) error
}

// New parses the header of rom and returns the matching cartridge.
func New(rom []byte, l log.Logger) (Cartridge, error) {
	if l == nil {
		l = log.NewNullLogger()
	}
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}
	if !header.ChecksumValid() {
		l.Warnf("cartridge: header checksum mismatch for %q", header.Title)
	}
	if len(rom) < header.ROMSize() {
		l.Warnf("cartridge: image is %d bytes, header declares %d", len(rom), header.ROMSize())
	}

	var c Cartridge
	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		c = NewROMCartridge(rom, header)
	case MBC1, MBC1RAM, MBC1RAMBATT:
		c = NewMemoryBankedCartridge1(rom, header)
	case MBC2, MBC2BATT:
		c = NewMemoryBankedCartridge2(rom, header)
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		c = NewMemoryBankedCartridge3(rom, header)
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		c = NewMemoryBankedCartridge5(rom, header)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, header.CartridgeType)
	}

	l.Infof("cartridge: %s", header)
	return c, nil
}

// banked holds the ROM and RAM images shared by every cartridge type,
// and maps bank numbers onto them. Bank numbers wrap around the number
// of banks declared in the header.
type banked struct {
	rom    []byte
	ram    []byte
	header *Header
}

func newBanked(rom []byte, header *Header, ramSize int) banked {
	return banked{
		rom:    rom,
		ram:    make([]byte, ramSize),
		header: header,
	}
}

func (b *banked) Header() *Header {
	return b.header
}

// readROM reads addr (0x0000 - 0x3FFF relative) from the given bank.
// Reads past the end of the image return 0xFF.
func (b *banked) readROM(bank int, address uint16) uint8 {
	offset := (bank%b.header.ROMBanks)*romBankSize + int(address&0x3FFF)
	if offset >= len(b.rom) {
		return 0xFF
	}
	return b.rom[offset]
}

func (b *banked) ramOffset(bank int, address uint16) (int, bool) {
	if len(b.ram) == 0 {
		return 0, false
	}
	banks := (len(b.ram) + ramBankSize - 1) / ramBankSize
	offset := (bank%banks)*ramBankSize + int(address&0x1FFF)
	if offset >= len(b.ram) {
		return 0, false
	}
	return offset, true
}

func (b *banked) readRAM(bank int, address uint16) uint8 {
	if offset, ok := b.ramOffset(bank, address); ok {
		return b.ram[offset]
	}
	return 0xFF
}

func (b *banked) writeRAM(bank int, address uint16, value uint8) {
	if offset, ok := b.ramOffset(bank, address); ok {
		b.ram[offset] = value
	}
}

// SaveRAM returns a copy of the external RAM.
func (b *banked) SaveRAM() []byte {
	data := make([]byte, len(b.ram))
	copy(data, b.ram)
	return data
}

// LoadRAM restores the external RAM from data.
func (b *banked) LoadRAM(data []byte) error {
	if len(data) != len(b.ram) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSaveSize, len(data), len(b.ram))
	}
	copy(b.ram, data)
	return nil
}
