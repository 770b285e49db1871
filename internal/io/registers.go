// Package io provides the I/O register file mapped at 0xFF00 - 0xFFFF,
// which includes the high RAM and the interrupt enable register.
package io

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// WriteHandler handles a write to a reserved register. The returned
// value is what gets stored in the register file.
type WriteHandler func(byte) byte

// ReadHandler synthesizes the value of a reserved register on read.
type ReadHandler func(byte) byte

// Registers is the 256 byte I/O register file. Components reserve the
// addresses they own, so that writes and reads of those addresses
// trigger their side effects. Unreserved addresses are plain storage.
type Registers struct {
	data [0x100]byte

	writeHandlers [0x100]WriteHandler
	readHandlers  [0x100]ReadHandler
}

// NewRegisters returns an empty register file.
func NewRegisters() *Registers {
	return &Registers{}
}

// Reserve registers the handlers for a hardware address. Either handler
// may be nil. Reserving an address twice panics.
func (r *Registers) Reserve(addr types.HardwareAddress, write WriteHandler, read ReadHandler) {
	i := uint8(addr)
	if r.writeHandlers[i] != nil || r.readHandlers[i] != nil {
		panic(fmt.Sprintf("address %04X has already been reserved", addr))
	}
	r.writeHandlers[i] = write
	r.readHandlers[i] = read
}

// Read reads a register as the CPU would see it.
func (r *Registers) Read(addr uint16) byte {
	i := uint8(addr)
	if h := r.readHandlers[i]; h != nil {
		return h(r.data[i])
	}
	return r.data[i]
}

// Write writes a register as the CPU would, running its write handler.
func (r *Registers) Write(addr uint16, value byte) {
	i := uint8(addr)
	if h := r.writeHandlers[i]; h != nil {
		value = h(value)
	}
	r.data[i] = value
}

// Get gets the raw value at the specified address.
func (r *Registers) Get(addr uint16) byte {
	return r.data[uint8(addr)]
}

// Set sets the value at the specified address. This function
// ignores the write handler and just sets the value.
func (r *Registers) Set(addr uint16, value byte) {
	r.data[uint8(addr)] = value
}

// SetBit sets the bit at the specified address.
func (r *Registers) SetBit(addr uint16, bit byte) {
	r.data[uint8(addr)] |= bit
}

// ClearBit clears the bit at the specified address.
func (r *Registers) ClearBit(addr uint16, bit byte) {
	r.data[uint8(addr)] &^= bit
}

// TestBit tests the bit at the specified address.
func (r *Registers) TestBit(addr uint16, bit byte) bool {
	return r.data[uint8(addr)]&bit != 0
}

// Reset loads the post boot values for the given model, clearing
// everything else.
func (r *Registers) Reset(model types.Model) {
	r.data = [0x100]byte{}
	for addr, v := range types.CommonIO {
		r.data[uint8(addr)] = v
	}
	for addr, v := range types.ModelIO[model] {
		r.data[uint8(addr)] = v
	}
}

var _ types.Stater = (*Registers)(nil)

func (r *Registers) Load(s *types.State) {
	s.ReadData(r.data[:])
}

func (r *Registers) Save(s *types.State) {
	s.WriteData(r.data[:])
}
