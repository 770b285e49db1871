package lcd

import "github.com/thelolagemann/dmgcore/internal/types"

// Bits of the LCD status register (types.STAT):
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3)            (Read Only)
const (
	CoincidenceInterrupt = types.Bit6
	OAMInterrupt         = types.Bit5
	VBlankInterrupt      = types.Bit4
	HBlankInterrupt      = types.Bit3
	Coincidence          = types.Bit2

	writableStatus = CoincidenceInterrupt | OAMInterrupt | VBlankInterrupt | HBlankInterrupt
)

// ModeInterrupt returns the STAT bit enabling the interrupt for
// entering mode m, or 0 for modes without one.
func ModeInterrupt(m Mode) uint8 {
	switch m {
	case HBlank:
		return HBlankInterrupt
	case VBlank:
		return VBlankInterrupt
	case OAM:
		return OAMInterrupt
	}
	return 0
}

// Status composes the value read from STAT from the interrupt
// selection written by the CPU and the current LCD state.
func Status(written uint8, mode Mode, coincidence bool) uint8 {
	v := written&writableStatus | mode&0b11 | types.Bit7 // bit 7 is always set
	if coincidence {
		v |= Coincidence
	}
	return v
}

// WritableStatus masks a value written to STAT down to the bits the
// CPU can change.
func WritableStatus(v uint8) uint8 {
	return v & writableStatus
}
