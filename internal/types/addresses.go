package types

// HardwareAddress is the address of one of the memory mapped hardware
// registers found between 0xFF00 and 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects the joypad button group and reads back the pressed keys.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte to be sent or just received over the link port.
	SB HardwareAddress = 0xFF01
	// SC controls the link port. Writing bit 7 with bit 0 set starts a
	// transfer using the internal clock.
	SC HardwareAddress = 0xFF02
	// DIV is incremented at a fixed rate. Any write resets it to zero.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC. When it overflows
	// it is reloaded from TMA and a timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC enables the timer (bit 2) and selects its frequency (bits 0-1).
	//
	//  00: 4096 Hz
	//  01: 262144 Hz
	//  10: 65536 Hz
	//  11: 16384 Hz
	TAC HardwareAddress = 0xFF07
	// IF holds the pending interrupt requests.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR13 HardwareAddress = 0xFF13
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1D
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	NR52 HardwareAddress = 0xFF26

	// LCDC is the LCD control register. Bit 7 turns the display on.
	LCDC HardwareAddress = 0xFF40
	// STAT reports the LCD mode (bits 0-1) and the LY=LYC coincidence
	// (bit 2), and selects the sources of the LCD STAT interrupt.
	//
	//  Bit 3: Mode 0 (HBlank) interrupt source
	//  Bit 4: Mode 1 (VBlank) interrupt source
	//  Bit 5: Mode 2 (OAM) interrupt source
	//  Bit 6: LYC=LY interrupt source
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	// LY is the scanline currently being drawn, 0 through 153.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY after every scanline.
	LYC HardwareAddress = 0xFF45
	// DMA starts a copy of 160 bytes from XX00 to OAM.
	DMA  HardwareAddress = 0xFF46
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B
	// KEY1 prepares a CGB speed switch (bit 0) and reports the current
	// speed (bit 7). The switch happens on the next STOP.
	KEY1 HardwareAddress = 0xFF4D
	// VBK selects the video RAM bank on the CGB.
	VBK HardwareAddress = 0xFF4F
	// BDIS disables the boot ROM. It is accepted and otherwise ignored.
	BDIS HardwareAddress = 0xFF50

	// HDMA1 - HDMA5 control CGB transfers from ROM/RAM into video RAM.
	HDMA1 HardwareAddress = 0xFF51
	HDMA2 HardwareAddress = 0xFF52
	HDMA3 HardwareAddress = 0xFF53
	HDMA4 HardwareAddress = 0xFF54
	HDMA5 HardwareAddress = 0xFF55

	BCPS HardwareAddress = 0xFF68
	BCPD HardwareAddress = 0xFF69
	OCPS HardwareAddress = 0xFF6A
	OCPD HardwareAddress = 0xFF6B
	// SVBK selects the work RAM bank mapped at 0xD000 on the CGB.
	SVBK HardwareAddress = 0xFF70

	// IE holds the enabled interrupts, using the same layout as IF.
	IE HardwareAddress = 0xFFFF
)
