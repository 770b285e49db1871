package ppu

// Display is the collaborator that turns video memory into pixels. The
// PPU only drives timing, so the display reads VRAM, OAM and the LCD
// registers itself through the VideoMemory it is attached to.
type Display interface {
	// Attach is called once with the video memory to draw from.
	Attach(vm VideoMemory)
	// Scanline is called after every scanline, including those in
	// VBlank, with the line that has just finished.
	Scanline(line uint8)
	// FrameReady is called when the LCD enters VBlank.
	FrameReady()
	// FrameConsumed reports whether the last frame has been presented,
	// allowing emulation to continue.
	FrameConsumed() bool
}

// VideoMemory is the view of the PPU given to a Display.
type VideoMemory interface {
	// VRAM returns byte offset (0x0000 - 0x1FFF) of the given bank.
	VRAM(bank uint8, offset uint16) uint8
	// OAM returns byte offset (0x00 - 0x9F) of the object attribute memory.
	OAM(offset uint8) uint8
	// Register returns the raw value of an LCD register such as SCX.
	Register(addr uint16) uint8
	// WindowLine returns the number of lines the window has drawn
	// this frame.
	WindowLine() uint8
	// BackgroundColour and ObjectColour return CGB palette colours.
	BackgroundColour(palette, colour uint8) [3]uint8
	ObjectColour(palette, colour uint8) [3]uint8
}
