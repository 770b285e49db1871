package lcd

import "github.com/thelolagemann/dmgcore/pkg/utils"

// Controller is the decoded LCD control register (types.LCDC).
// Its value is stored as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Controller struct {
	Enabled bool
	// WindowTileMapAddress is the start address of the window tile map.
	WindowTileMapAddress uint16
	WindowEnabled        bool
	// TileDataAddress is the start address of the BG and window tile data.
	// 0x8800 means tile indexes are signed.
	TileDataAddress uint16
	// BackgroundTileMapAddress is the start address of the BG tile map.
	BackgroundTileMapAddress uint16
	// SpriteSize is the height of sprites, 8 or 16.
	SpriteSize        uint8
	SpriteEnabled     bool
	BackgroundEnabled bool

	raw uint8
}

// Write decodes the value written to the LCD control register.
func (c *Controller) Write(value uint8) {
	c.raw = value
	c.Enabled = utils.TestBit(value, 7)
	c.WindowTileMapAddress = 0x9800
	if utils.TestBit(value, 6) {
		c.WindowTileMapAddress = 0x9C00
	}
	c.WindowEnabled = utils.TestBit(value, 5)
	c.TileDataAddress = 0x8800
	if utils.TestBit(value, 4) {
		c.TileDataAddress = 0x8000
	}
	c.BackgroundTileMapAddress = 0x9800
	if utils.TestBit(value, 3) {
		c.BackgroundTileMapAddress = 0x9C00
	}
	c.SpriteSize = 8 + utils.GetBit(value, 2)*8
	c.SpriteEnabled = utils.TestBit(value, 1)
	c.BackgroundEnabled = utils.TestBit(value, 0)
}

// Read returns the last value written to the register.
func (c *Controller) Read() uint8 {
	return c.raw
}

// UsingSignedTileData returns true if the LCD controller is using signed tile
// data.
func (c *Controller) UsingSignedTileData() bool {
	return c.TileDataAddress == 0x8800
}
