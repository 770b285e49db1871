// Package mmu provides the memory bus of the Game Boy. The bus is unaware
// of what the other components do, it only routes each address to the
// component that owns it.
package mmu

import (
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// IOBus is the interface that the MMU uses to communicate with the other
// components.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the other components through the IOBus interface.
type MMU struct {
	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	Video IOBus

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFF00 - 0xFF7F - I/O Registers
	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	// 0xFFFF          - Interrupt Enable
	registers *io.Registers

	log log.Logger
}

// NewMMU returns a new MMU routing to the given components. Video may be
// attached later with AttachVideo.
func NewMMU(cart cartridge.Cartridge, regs *io.Registers, cgb bool, l log.Logger) *MMU {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &MMU{
		Cart:      cart,
		wRAM:      NewWRAM(regs, cgb),
		registers: regs,
		log:       l,
	}
}

// AttachVideo attaches the video component to the MMU.
func (m *MMU) AttachVideo(video IOBus) {
	m.Video = video
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.Cart.Read(address)
	case address < 0xA000:
		return m.Video.Read(address)
	case address < 0xC000:
		return m.Cart.Read(address)
	case address < 0xFE00:
		return m.wRAM.Read(address)
	case address < 0xFEA0:
		return m.Video.Read(address)
	case address < 0xFF00:
		m.log.Debugf("mmu: read from unusable address %04X", address)
		return 0xFF
	}
	return m.registers.Read(address)
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.Cart.Write(address, value)
	case address < 0xA000:
		m.Video.Write(address, value)
	case address < 0xC000:
		m.Cart.Write(address, value)
	case address < 0xFE00:
		m.wRAM.Write(address, value)
	case address < 0xFEA0:
		m.Video.Write(address, value)
	case address < 0xFF00:
		m.log.Debugf("mmu: write %02X to unusable address %04X", value, address)
	default:
		m.registers.Write(address, value)
	}
}

// Read16 reads a little endian word.
func (m *MMU) Read16(address uint16) uint16 {
	low := m.Read(address)
	return utils.BytesToUint16(m.Read(address+1), low)
}

// Write16 writes a little endian word.
func (m *MMU) Write16(address uint16, value uint16) {
	high, low := utils.Uint16ToBytes(value)
	m.Write(address, low)
	m.Write(address+1, high)
}

// Reset clears the work RAM.
func (m *MMU) Reset() {
	m.wRAM.Reset()
}

func (m *MMU) Load(s *types.State) {
	m.wRAM.Load(s)
}

func (m *MMU) Save(s *types.State) {
	m.wRAM.Save(s)
}
