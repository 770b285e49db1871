package mmu

import (
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// WRAM is the 8 banks of 4kB work RAM. The DMG only uses the first two,
// the CGB selects the one mapped at 0xD000 - 0xDFFF through SVBK.
type WRAM struct {
	bank uint8
	raw  [8][0x1000]uint8
	cgb  bool
}

// NewWRAM returns the work RAM, reserving SVBK on the CGB.
func NewWRAM(regs *io.Registers, cgb bool) *WRAM {
	w := &WRAM{
		bank: 1, // bank 1 is the default as the first bank is fixed
		cgb:  cgb,
	}
	if cgb {
		regs.Reserve(types.SVBK, func(v uint8) uint8 {
			v &= 0x07 // only 3 bits are used
			if v == 0 {
				v = 1
			}
			w.bank = v
			return v
		}, func(uint8) uint8 {
			return 0xF8 | w.bank
		})
	}
	return w
}

// bankFor returns the bank and offset backing addr, folding the echo
// region at 0xE000 - 0xFDFF onto 0xC000 - 0xDDFF.
func (w *WRAM) bankFor(addr uint16) (uint8, uint16) {
	if addr >= 0xE000 {
		addr -= 0x2000
	}
	if addr < 0xD000 {
		return 0, addr & 0xFFF
	}
	return w.bank, addr & 0xFFF
}

func (w *WRAM) Read(addr uint16) uint8 {
	bank, offset := w.bankFor(addr)
	return w.raw[bank][offset]
}

func (w *WRAM) Write(addr uint16, v uint8) {
	bank, offset := w.bankFor(addr)
	w.raw[bank][offset] = v
}

// Reset clears the RAM and selects bank 1.
func (w *WRAM) Reset() {
	w.raw = [8][0x1000]uint8{}
	w.bank = 1
}

func (w *WRAM) Load(s *types.State) {
	w.bank = s.Read8()
	for i := range w.raw {
		s.ReadData(w.raw[i][:])
	}
}

func (w *WRAM) Save(s *types.State) {
	s.Write8(w.bank)
	for i := range w.raw {
		s.WriteData(w.raw[i][:])
	}
}
