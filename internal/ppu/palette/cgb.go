package palette

import "github.com/thelolagemann/dmgcore/internal/types"

// CGBPalette is the 64 byte colour palette RAM of the CGB, accessed
// through an index register (BCPS/OCPS) and a data register
// (BCPD/OCPD). It holds 8 palettes of 4 little endian RGB555 colours.
type CGBPalette struct {
	data         [64]byte
	Index        byte
	Incrementing bool
}

// NewCGBPalette returns palette RAM with every colour set to white.
func NewCGBPalette() *CGBPalette {
	p := &CGBPalette{}
	for i := range p.data {
		p.data[i] = 0xFF
	}
	return p
}

// SetIndex updates the index of the palette.
func (p *CGBPalette) SetIndex(value byte) byte {
	p.Index = value & 0x3F
	p.Incrementing = value&types.Bit7 != 0
	return p.GetIndex()
}

// GetIndex returns the index register as the CPU reads it.
func (p *CGBPalette) GetIndex() byte {
	v := p.Index | types.Bit6 // bit 6 is unused
	if p.Incrementing {
		v |= types.Bit7
	}
	return v
}

// Read returns the byte at the current index.
func (p *CGBPalette) Read() byte {
	return p.data[p.Index]
}

// Write writes the byte at the current index, advancing it when
// auto increment is enabled.
func (p *CGBPalette) Write(value byte) byte {
	p.data[p.Index] = value
	if p.Incrementing {
		p.Index = (p.Index + 1) & 0x3F
	}
	return value
}

// Colour returns colour c of palette n, expanded to 8 bits per channel.
func (p *CGBPalette) Colour(n, c uint8) RGB {
	i := (n&7)*8 + (c&3)*2
	raw := uint16(p.data[i]) | uint16(p.data[i+1])<<8
	var rgb RGB
	for ch := range rgb {
		v := uint8(raw>>(ch*5)) & 0x1F
		rgb[ch] = v<<3 | v>>2
	}
	return rgb
}

var _ types.Stater = (*CGBPalette)(nil)

func (p *CGBPalette) Load(s *types.State) {
	s.ReadData(p.data[:])
	p.Index = s.Read8()
	p.Incrementing = s.ReadBool()
}

func (p *CGBPalette) Save(s *types.State) {
	s.WriteData(p.data[:])
	s.Write8(p.Index)
	s.WriteBool(p.Incrementing)
}
