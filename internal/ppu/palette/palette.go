// Package palette decodes the monochrome palette registers and holds
// the colour palette RAM of the CGB.
package palette

// RGB is a colour with 8 bits per channel.
type RGB = [3]uint8

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
)

// Palette holds the 4 colours selectable by a 2 bit colour index.
type Palette [4]RGB

// Shades are the available base palettes for monochrome output.
var Shades = []Palette{
	Greyscale: {
		{0xFF, 0xFF, 0xFF},
		{0xCC, 0xCC, 0xCC},
		{0x77, 0x77, 0x77},
		{0x00, 0x00, 0x00},
	},
	Green: {
		{0x9B, 0xBC, 0x0F},
		{0x8B, 0xAC, 0x0F},
		{0x30, 0x62, 0x30},
		{0x0F, 0x38, 0x0F},
	},
}

// FromByte decodes a monochrome palette register (BGP, OBP0, OBP1)
// using the given base palette.
func FromByte(b byte, base Palette) Palette {
	var p Palette
	for i := range p {
		p[i] = base[(b>>(i*2))&0x03]
	}
	return p
}
