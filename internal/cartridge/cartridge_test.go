package cartridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// buildROM returns a ROM image with the given header fields, where the
// first byte of every bank holds the bank number.
func buildROM(cartType Type, romCode, ramCode uint8) []byte {
	rom := make([]byte, romBanks[romCode]*romBankSize)
	for bank := 0; bank < len(rom)/romBankSize; bank++ {
		rom[bank*romBankSize] = uint8(bank)
	}
	copy(rom[0x134:], "TESTROM")
	rom[0x147] = uint8(cartType)
	rom[0x148] = romCode
	rom[0x149] = ramCode

	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	return rom
}

func newCart(t *testing.T, cartType Type, romCode, ramCode uint8) Cartridge {
	t.Helper()
	c, err := New(buildROM(cartType, romCode, ramCode), nil)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("header", func(t *testing.T) {
		c := newCart(t, MBC1RAMBATT, 0x02, 0x03)
		h := c.Header()
		assert.Equal(t, "TESTROM", h.Title)
		assert.Equal(t, 8, h.ROMBanks)
		assert.Equal(t, 4, h.RAMBanks)
		assert.Equal(t, 0x8000, h.RAMSize())
		assert.True(t, h.ChecksumValid())
		assert.True(t, h.CartridgeType.Battery())
		assert.Equal(t, "DMG", h.Hardware())
		assert.IsType(t, &MemoryBankedCartridge1{}, c)
	})
	t.Run("too small", func(t *testing.T) {
		_, err := New(make([]byte, 0x100), nil)
		assert.ErrorIs(t, err, ErrROMTooSmall)
	})
	t.Run("unknown rom size", func(t *testing.T) {
		rom := buildROM(ROM, 0x00, 0x00)
		rom[0x148] = 0x30
		_, err := New(rom, nil)
		assert.ErrorIs(t, err, ErrUnknownROMSize)
	})
	t.Run("unsupported type", func(t *testing.T) {
		_, err := New(buildROM(Type(0xFC), 0x00, 0x00), nil)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
	t.Run("extended size codes", func(t *testing.T) {
		assert.Equal(t, 72, romBanks[0x52])
		assert.Equal(t, 80, romBanks[0x53])
		assert.Equal(t, 96, romBanks[0x54])
		for code := uint8(0); code <= 7; code++ {
			assert.Equal(t, 2<<code, romBanks[code])
		}
	})
}

func TestROMCartridge(t *testing.T) {
	c := newCart(t, ROMRAM, 0x00, 0x02)
	assert.Equal(t, uint8(1), c.Read(0x4000))

	c.Write(0x2000, 0x05)
	assert.Equal(t, uint8(1), c.Read(0x4000), "writes to rom are ignored")

	c.Write(0xA123, 0x42)
	assert.Equal(t, uint8(0x42), c.Read(0xA123))
}

// TestZeroBank checks that writing 0 to the ROM bank register of every
// controller that implements the 0 -> 1 rule maps bank 1.
func TestZeroBank(t *testing.T) {
	tests := []struct {
		name     string
		cartType Type
		address  uint16
	}{
		{"MBC1", MBC1, 0x2000},
		{"MBC2", MBC2, 0x2100},
		{"MBC3", MBC3, 0x2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCart(t, tt.cartType, 0x03, 0x00)
			c.Write(tt.address, 0x03)
			require.Equal(t, uint8(3), c.Read(0x4000))

			c.Write(tt.address, 0x00)
			assert.Equal(t, uint8(1), c.Read(0x4000))
		})
	}

	t.Run("MBC5 maps bank 0", func(t *testing.T) {
		c := newCart(t, MBC5, 0x03, 0x00)
		c.Write(0x2000, 0x00)
		assert.Equal(t, uint8(0), c.Read(0x4000))
	})
}

func TestMemoryBankedCartridge1(t *testing.T) {
	t.Run("bank 5", func(t *testing.T) {
		c := newCart(t, MBC1, 0x03, 0x00)
		c.Write(0x2000, 0x05)
		assert.Equal(t, uint8(5), c.Read(0x4000))
	})
	t.Run("upper bits", func(t *testing.T) {
		c := newCart(t, MBC1, 0x06, 0x00) // 128 banks
		c.Write(0x2000, 0x02)
		c.Write(0x4000, 0x01)
		assert.Equal(t, uint8(0x22), c.Read(0x4000))

		// in RAM banking mode the upper bits select RAM instead
		c.Write(0x6000, 0x01)
		assert.Equal(t, uint8(0x02), c.Read(0x4000))
	})
	t.Run("bank 0x20 maps 0x21", func(t *testing.T) {
		c := newCart(t, MBC1, 0x06, 0x00)
		c.Write(0x4000, 0x01)
		c.Write(0x2000, 0x00)
		assert.Equal(t, uint8(0x21), c.Read(0x4000))
	})
	t.Run("ram", func(t *testing.T) {
		c := newCart(t, MBC1RAM, 0x01, 0x03)
		c.Write(0xA000, 0x11)
		assert.Equal(t, uint8(0xFF), c.Read(0xA000), "ram disabled")

		c.Write(0x0000, 0x0A)
		c.Write(0x6000, 0x01)
		c.Write(0x4000, 0x02)
		c.Write(0xA000, 0x22)
		c.Write(0x4000, 0x00)
		c.Write(0xA000, 0x33)
		assert.Equal(t, uint8(0x33), c.Read(0xA000))
		c.Write(0x4000, 0x02)
		assert.Equal(t, uint8(0x22), c.Read(0xA000))

		c.Write(0x0000, 0x00)
		assert.Equal(t, uint8(0xFF), c.Read(0xA000))
	})
}

func TestMemoryBankedCartridge2(t *testing.T) {
	c := newCart(t, MBC2, 0x03, 0x00)

	// bit 8 clear selects RAMG
	c.Write(0x2000, 0x04)
	assert.Equal(t, uint8(1), c.Read(0x4000))
	c.Write(0x2100, 0x04)
	assert.Equal(t, uint8(4), c.Read(0x4000))

	c.Write(0x0000, 0x0A)
	c.Write(0xA005, 0xAB)
	assert.Equal(t, uint8(0xFB), c.Read(0xA005))
	assert.Equal(t, uint8(0xFB), c.Read(0xA205), "ram is mirrored")
}

func TestMemoryBankedCartridge5(t *testing.T) {
	c := newCart(t, MBC5RAM, 0x08, 0x04) // 512 banks
	c.Write(0x2000, 0x34)
	c.Write(0x3000, 0x01)
	assert.Equal(t, 0x134, int(c.(*MemoryBankedCartridge5).romBank))
	assert.Equal(t, uint8(0x34), c.Read(0x4000))

	c.Write(0x0000, 0x0A)
	c.Write(0x4000, 0x0F)
	c.Write(0xB000, 0x99)
	c.Write(0x4000, 0x00)
	assert.Equal(t, uint8(0x00), c.Read(0xB000))
	c.Write(0x4000, 0x0F)
	assert.Equal(t, uint8(0x99), c.Read(0xB000))
}

func TestMemoryBankedCartridge5Rumble(t *testing.T) {
	c := newCart(t, MBC5RUMBLERAM, 0x01, 0x03)
	m := c.(*MemoryBankedCartridge5)
	c.Write(0x4000, 0x0A)
	assert.True(t, m.Rumble)
	assert.Equal(t, uint8(0x02), m.ramBank)
}

func mockNow(t *testing.T, start time.Time) *time.Time {
	t.Helper()
	current := start
	now = func() time.Time { return current }
	t.Cleanup(func() { now = time.Now })
	return &current
}

func TestRTC(t *testing.T) {
	clock := mockNow(t, time.Unix(1_000_000, 0))
	c := newCart(t, MBC3TIMERRAMBATT, 0x01, 0x03)

	c.Write(0x0000, 0x0A)
	latch := func() {
		c.Write(0x6000, 0x00)
		c.Write(0x6000, 0x01)
	}
	read := func(register uint8) uint8 {
		c.Write(0x4000, register)
		return c.Read(0xA000)
	}

	*clock = clock.Add(3*time.Hour + 2*time.Minute + 5*time.Second)
	assert.Equal(t, uint8(5), read(0x08), "live registers before latching")

	latch()
	*clock = clock.Add(time.Hour)
	assert.Equal(t, uint8(5), read(0x08))
	assert.Equal(t, uint8(2), read(0x09))
	assert.Equal(t, uint8(3), read(0x0A))

	t.Run("day carry", func(t *testing.T) {
		*clock = clock.Add(300 * 24 * time.Hour)
		latch()
		assert.Equal(t, uint8(300-256), read(0x0B))
		assert.Equal(t, uint8(0x01), read(0x0C)&0x01)

		*clock = clock.Add(212 * 24 * time.Hour)
		latch()
		assert.Equal(t, uint8(0), read(0x0B))
		assert.Equal(t, uint8(0x80), read(0x0C)&0x81)
	})

	t.Run("halt", func(t *testing.T) {
		c.Write(0x4000, 0x0C)
		c.Write(0xA000, 0x40)
		c.Write(0x4000, 0x08)
		c.Write(0xA000, 0x00)
		*clock = clock.Add(time.Minute)
		latch()
		assert.Equal(t, uint8(0), read(0x08))
		assert.Equal(t, uint8(0x40), read(0x0C))
	})

	t.Run("ram banks still work", func(t *testing.T) {
		c.Write(0x4000, 0x01)
		c.Write(0xA000, 0x77)
		assert.Equal(t, uint8(0x77), c.Read(0xA000))
	})
}

func TestBatterySave(t *testing.T) {
	mockNow(t, time.Unix(2_000_000, 0))

	c := newCart(t, MBC3TIMERRAMBATT, 0x01, 0x02)
	c.Write(0x0000, 0x0A)
	c.Write(0xA010, 0x5A)
	c.Write(0x4000, 0x0A)
	c.Write(0xA000, 0x0C)

	b, ok := c.(BatteryBacked)
	require.True(t, ok)
	data := b.SaveRAM()
	require.Len(t, data, 0x2000+rtcSaveSize)

	other := newCart(t, MBC3TIMERRAMBATT, 0x01, 0x02)
	require.NoError(t, other.(BatteryBacked).LoadRAM(data))
	other.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0x5A), other.Read(0xA010))
	other.Write(0x4000, 0x0A)
	assert.Equal(t, uint8(0x0C), other.Read(0xA000))

	assert.ErrorIs(t, other.(BatteryBacked).LoadRAM(make([]byte, 3)), ErrSaveSize)
}

func TestCartridgeState(t *testing.T) {
	c := newCart(t, MBC1RAM, 0x03, 0x02)
	c.Write(0x0000, 0x0A)
	c.Write(0x2000, 0x06)
	c.Write(0xA000, 0x12)

	s := types.NewState()
	c.Save(s)

	restored := newCart(t, MBC1RAM, 0x03, 0x02)
	s.ResetPosition()
	restored.Load(s)
	require.NoError(t, s.Err())
	assert.Equal(t, uint8(6), restored.Read(0x4000))
	assert.Equal(t, uint8(0x12), restored.Read(0xA000))
}
