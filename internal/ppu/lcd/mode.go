package lcd

import "github.com/thelolagemann/dmgcore/internal/types"

// Mode represents a mode of the LCD, as reported in bits 0-1 of STAT.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM mode. The CPU can access OAM but not the display RAM.
	OAM
	// VRAM is the VRAM mode. The CPU can access the display RAM but not OAM.
	VRAM
)

// The boundaries of modes 2 and 3 within a scanline, in instructions.
// They approximate 80 and 252 of the 456 dots of a line.
const (
	oamEnd  = types.InstructionsPerScanline * 80 / 456
	vramEnd = types.InstructionsPerScanline * 252 / 456
)

// ModeAt approximates the mode of the LCD when it is position
// instructions into line ly. scale is 2 in CGB double speed.
func ModeAt(ly uint8, position, scale int) Mode {
	if ly >= types.VisibleScanlines {
		return VBlank
	}
	switch {
	case position < oamEnd*scale:
		return OAM
	case position < vramEnd*scale:
		return VRAM
	}
	return HBlank
}
