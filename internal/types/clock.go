package types

// The emulator has no cycle accurate clock. Instead every executed
// instruction counts as one tick of a nominal clock, from which the
// divider, timer and scanline rates are derived.
const (
	// InstructionsPerScanline is the number of instructions
	// executed for every line drawn by the LCD.
	InstructionsPerScanline = 60
	// ScanlinesPerFrame includes the 10 lines of VBlank.
	ScanlinesPerFrame = 154
	// VisibleScanlines is the number of lines drawn before VBlank.
	VisibleScanlines = 144
	// FramesPerSecond is the nominal refresh rate of the LCD.
	FramesPerSecond = 60
	// InstructionsPerFrame is the number of instructions in one frame.
	InstructionsPerFrame = InstructionsPerScanline * ScanlinesPerFrame
	// InstructionsPerSecond is the nominal instruction rate.
	InstructionsPerSecond = InstructionsPerFrame * FramesPerSecond
	// InstructionsPerDIV is the number of instructions between
	// increments of the divider.
	InstructionsPerDIV = 33
)
