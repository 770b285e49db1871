package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the LCD reaches
	// scanline 144.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when a button is pressed.
	JoypadFlag = types.Bit4

	mask = 0x1F
)

// Service is the interrupt controller, used to request
// interrupts and to pick the next interrupt vector.
//
// The Flag (types.IF) and Enable (types.IE) registers live
// in the I/O register file, so that the CPU can read and
// write them directly. When an interrupt is requested and
// enabled, and the IME is set, the CPU will jump to the
// interrupt vector, and the corresponding bit in the Flag
// register will be cleared.
//
// The IME is set by the EI and RETI instructions, and
// cleared by DI and by servicing an interrupt.
type Service struct {
	IME bool

	// instructions left before a pending EI takes effect
	enableDelay uint8

	regs *io.Registers
}

// NewService returns a new Service backed by the given
// register file.
func NewService(regs *io.Registers) *Service {
	s := &Service{regs: regs}
	regs.Reserve(types.IF, func(v uint8) uint8 {
		return v & mask
	}, func(v uint8) uint8 {
		return v | 0xE0 // the upper 3 bits are always set
	})
	return s
}

// Flag returns the requested interrupts.
func (s *Service) Flag() uint8 {
	return s.regs.Get(types.IF) & mask
}

// Enable returns the enabled interrupts.
func (s *Service) Enable() uint8 {
	return s.regs.Get(types.IE)
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable()&s.Flag() != 0
}

// Pending returns true if any interrupt has been requested,
// regardless of IE. A halted CPU wakes up on this.
func (s *Service) Pending() bool {
	return s.Flag() != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.regs.SetBit(types.IF, flag&mask)
}

// Clear clears the specified interrupt request.
func (s *Service) Clear(flag uint8) {
	s.regs.ClearBit(types.IF, flag)
}

// EnableDelayed schedules the IME to be set once the
// instruction following EI has completed.
func (s *Service) EnableDelayed() {
	if !s.IME && s.enableDelay == 0 {
		s.enableDelay = 2
	}
}

// EnableNow sets the IME immediately, as RETI does.
func (s *Service) EnableNow() {
	s.IME = true
	s.enableDelay = 0
}

// Disable clears the IME, cancelling a pending EI.
func (s *Service) Disable() {
	s.IME = false
	s.enableDelay = 0
}

// Tick is called after every instruction to advance a
// pending EI.
func (s *Service) Tick() {
	if s.enableDelay > 0 {
		s.enableDelay--
		if s.enableDelay == 0 {
			s.IME = true
		}
	}
}

// Vector returns the interrupt vector to be serviced, or
// 0 if no interrupt is ready. Only the highest priority
// request is cleared from the Flag register.
func (s *Service) Vector() uint16 {
	ready := s.Enable() & s.Flag()
	if ready == 0 {
		return 0
	}
	for i := uint8(0); i < 5; i++ {
		// get the flag for the current interrupt
		flag := uint8(1 << i)

		if ready&flag != 0 {
			s.Clear(flag)
			return uint16(0x0040 + i*8)
		}
	}

	return 0
}

// Reset clears the IME and any pending EI. The registers
// themselves are reset with the rest of the register file.
func (s *Service) Reset() {
	s.IME = false
	s.enableDelay = 0
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - IME (bool)
//   - enableDelay (uint8)
func (s *Service) Load(st *types.State) {
	s.IME = st.ReadBool()
	s.enableDelay = st.Read8()
}

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - IME (bool)
//   - enableDelay (uint8)
func (s *Service) Save(st *types.State) {
	st.WriteBool(s.IME)
	st.Write8(s.enableDelay)
}
