package lcd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeAt(t *testing.T) {
	assert.Equal(t, OAM, ModeAt(0, 0, 1))
	assert.Equal(t, OAM, ModeAt(10, oamEnd-1, 1))
	assert.Equal(t, VRAM, ModeAt(10, oamEnd, 1))
	assert.Equal(t, HBlank, ModeAt(10, vramEnd, 1))
	assert.Equal(t, HBlank, ModeAt(143, 59, 1))
	assert.Equal(t, VBlank, ModeAt(144, 0, 1))
	assert.Equal(t, VBlank, ModeAt(153, 59, 1))

	// double speed stretches the line
	assert.Equal(t, VRAM, ModeAt(10, vramEnd, 2))
}

func TestController(t *testing.T) {
	var c Controller
	c.Write(0x91)
	assert.True(t, c.Enabled)
	assert.True(t, c.BackgroundEnabled)
	assert.False(t, c.WindowEnabled)
	assert.Equal(t, uint16(0x8000), c.TileDataAddress)
	assert.Equal(t, uint16(0x9800), c.BackgroundTileMapAddress)
	assert.Equal(t, uint8(8), c.SpriteSize)
	assert.Equal(t, uint8(0x91), c.Read())

	c.Write(0x6C)
	assert.False(t, c.Enabled)
	assert.True(t, c.WindowEnabled)
	assert.Equal(t, uint16(0x9C00), c.WindowTileMapAddress)
	assert.True(t, c.UsingSignedTileData())
	assert.Equal(t, uint8(16), c.SpriteSize)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, uint8(0xC7), Status(0x40, VRAM, true))
	assert.Equal(t, uint8(0x80), Status(0x07, HBlank, false))
	assert.Equal(t, uint8(0x78), WritableStatus(0xFF))
	assert.Equal(t, uint8(HBlankInterrupt), ModeInterrupt(HBlank))
	assert.Equal(t, uint8(0), ModeInterrupt(VRAM))
}
