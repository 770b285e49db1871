package gameboy

import (
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its components are created.
type Opt func(gb *GameBoy)

// Debug logs every executed instruction, and makes LD B, B a
// breakpoint: it sets CPU.DebugBreakpoint and stops Run and RunFor.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// AsModel forces the hardware model, instead of picking it from the
// cartridge header.
func AsModel(m types.Model) Opt {
	return func(gb *GameBoy) {
		gb.model = m
	}
}

// WithLogger sets the logger used by every component.
func WithLogger(l log.Logger) Opt {
	return func(gb *GameBoy) {
		if l != nil {
			gb.Logger = l
		}
	}
}

// WithDisplay attaches a display, which is notified of every scanline
// and frame.
func WithDisplay(d ppu.Display) Opt {
	return func(gb *GameBoy) {
		gb.display = d
	}
}

// WithSerialDevice plugs a device into the link port.
func WithSerialDevice(d serial.Device) Opt {
	return func(gb *GameBoy) {
		gb.device = d
	}
}

// WithFramePacing makes the emulation wait for the display to consume
// each frame before starting the next.
func WithFramePacing() Opt {
	return func(gb *GameBoy) {
		gb.pacing = true
	}
}
