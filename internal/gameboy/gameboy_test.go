package gameboy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const bankSize = 0x4000

// newROM returns a ROM image of the given type and size code, with the
// bank number written to the first byte of every bank except bank 0,
// and program placed at the entry point.
func newROM(cartType cartridge.Type, romCode, ramCode uint8, program ...uint8) []byte {
	rom := make([]byte, (2<<romCode)*bankSize)
	for bank := 1; bank < len(rom)/bankSize; bank++ {
		rom[bank*bankSize] = uint8(bank)
	}
	copy(rom[0x100:], program)
	copy(rom[0x134:], "GAMEBOYTEST")
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

// spinROM jumps to 0x0150 and loops there forever.
func spinROM() []byte {
	rom := newROM(cartridge.ROM, 0, 0, 0xC3, 0x50, 0x01) // JP 0x0150
	rom[0x150] = 0x18                                     // JR -2
	rom[0x151] = 0xFE
	return rom
}

type countingDisplay struct {
	scanlines int
	frames    int
}

func (d *countingDisplay) Attach(ppu.VideoMemory) {}
func (d *countingDisplay) Scanline(uint8)         { d.scanlines++ }
func (d *countingDisplay) FrameReady()            { d.frames++ }
func (d *countingDisplay) FrameConsumed() bool    { return true }

func TestNewGameBoy(t *testing.T) {
	t.Run("post boot state", func(t *testing.T) {
		gb, err := NewGameBoy(spinROM())
		require.NoError(t, err)
		assert.Equal(t, types.DMGABC, gb.Model())
		assert.Equal(t, uint16(0x0100), gb.CPU.PC)
		assert.Equal(t, uint16(0xFFFE), gb.CPU.SP)
		assert.Equal(t, uint8(0xAB), gb.Read(0xFF04))
		assert.Equal(t, uint8(0x91), gb.Read(0xFF40))
	})
	t.Run("model from header", func(t *testing.T) {
		rom := spinROM()
		rom[0x143] = 0x80
		rom[0x14D] -= 0x80
		gb, err := NewGameBoy(rom)
		require.NoError(t, err)
		assert.Equal(t, types.CGBABC, gb.Model())
		assert.Equal(t, uint8(0x11), gb.CPU.Get(cpu.A))
	})
	t.Run("forced model", func(t *testing.T) {
		rom := spinROM()
		rom[0x143] = 0x80
		gb, err := NewGameBoy(rom, AsModel(types.DMGABC))
		require.NoError(t, err)
		assert.Equal(t, types.DMGABC, gb.Model())
	})
	t.Run("bad rom", func(t *testing.T) {
		_, err := NewGameBoy(make([]byte, 0x40))
		assert.ErrorIs(t, err, cartridge.ErrROMTooSmall)

		_, err = NewGameBoy(newROM(0xFC, 0, 0))
		assert.ErrorIs(t, err, cartridge.ErrUnsupportedType)
	})
}

func TestGameBoy_Spin(t *testing.T) {
	gb, err := NewGameBoy(spinROM())
	require.NoError(t, err)

	gb.Step()
	assert.Equal(t, uint16(0x0150), gb.CPU.PC)

	assert.Equal(t, 9999, gb.RunFor(9999))
	assert.Equal(t, uint16(0x0150), gb.CPU.PC)
	assert.Equal(t, uint64(10000), gb.CPU.Instructions)
	// 10000 / 33 = 303 increments from the post boot value of 0xAB
	assert.Equal(t, uint8(0xAB+303%256), gb.Read(0xFF04))
}

func TestGameBoy_BankSwitch(t *testing.T) {
	rom := newROM(cartridge.MBC1, 3, 0) // 16 banks
	gb, err := NewGameBoy(rom)
	require.NoError(t, err)

	assert.Equal(t, uint8(1), gb.Read(0x4000))
	gb.Write(0x2000, 0x05)
	assert.Equal(t, rom[5*bankSize], gb.Read(0x4000))
	assert.Equal(t, uint8(5), gb.Read(0x4000))
}

func TestGameBoy_Serial(t *testing.T) {
	rom := newROM(cartridge.ROM, 0, 0,
		0x3E, 'O', // LD A, 'O'
		0xE0, 0x01, // LDH (SB), A
		0x3E, 0x81, // LD A, 0x81
		0xE0, 0x02, // LDH (SC), A
		0x3E, 'K', // LD A, 'K'
		0xE0, 0x01, // LDH (SB), A
		0x3E, 0x81, // LD A, 0x81
		0xE0, 0x02, // LDH (SC), A
		0x18, 0xFE, // JR -2
	)
	out := &serial.Buffer{}
	gb, err := NewGameBoy(rom, WithSerialDevice(out))
	require.NoError(t, err)

	gb.RunFor(20)
	assert.Equal(t, "OK", out.String())
	assert.Equal(t, uint8(0xFF), gb.Read(0xFF01))
}

func TestGameBoy_Frame(t *testing.T) {
	d := &countingDisplay{}
	gb, err := NewGameBoy(spinROM(), WithDisplay(d), WithFramePacing())
	require.NoError(t, err)

	assert.Equal(t, types.InstructionsPerScanline*types.ScanlinesPerFrame, gb.Frame())
	assert.Equal(t, types.ScanlinesPerFrame, d.scanlines)
	assert.Equal(t, 1, d.frames)
	assert.Equal(t, uint8(0), gb.Read(0xFF44))
}

func TestGameBoy_Run(t *testing.T) {
	gb, err := NewGameBoy(spinROM())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, gb.Run(ctx), context.DeadlineExceeded)
	assert.NotZero(t, gb.CPU.Instructions)
}

func TestGameBoy_Joypad(t *testing.T) {
	gb, err := NewGameBoy(spinROM())
	require.NoError(t, err)

	gb.Write(0xFF00, 0x10) // select buttons
	gb.Press(joypad.ButtonA)
	assert.Equal(t, uint8(0), gb.Read(0xFF00)&0x01)
	gb.Release(joypad.ButtonA)
	assert.Equal(t, uint8(1), gb.Read(0xFF00)&0x01)
}

func TestGameBoy_State(t *testing.T) {
	rom := spinROM()
	gb, err := NewGameBoy(rom)
	require.NoError(t, err)
	gb.RunFor(1000)
	gb.Write(0xC123, 0x42)

	data, err := gb.SaveState()
	require.NoError(t, err)

	gb.RunFor(5000)
	gb.Write(0xC123, 0x00)

	require.NoError(t, gb.LoadState(data))
	assert.Equal(t, uint64(1000), gb.CPU.Instructions)
	assert.Equal(t, uint8(0x42), gb.Read(0xC123))
	assert.Equal(t, uint16(0x0150), gb.CPU.PC)

	t.Run("different rom", func(t *testing.T) {
		other := spinROM()
		copy(other[0x134:], "OTHERGAME")
		gb2, err := NewGameBoy(other)
		require.NoError(t, err)
		assert.ErrorIs(t, gb2.LoadState(data), ErrInvalidState)
	})
	t.Run("garbage", func(t *testing.T) {
		assert.ErrorIs(t, gb.LoadState([]byte("not a state")), ErrInvalidState)
	})
}

func TestGameBoy_BatteryRAM(t *testing.T) {
	gb, err := NewGameBoy(newROM(cartridge.MBC1RAMBATT, 0, 2))
	require.NoError(t, err)

	gb.Write(0x0000, 0x0A)
	gb.Write(0xA000, 0x99)

	ram, ok := gb.SaveRAM()
	require.True(t, ok)
	assert.Equal(t, uint8(0x99), ram[0])

	gb2, err := NewGameBoy(newROM(cartridge.MBC1RAMBATT, 0, 2))
	require.NoError(t, err)
	require.NoError(t, gb2.LoadRAM(ram))
	gb2.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0x99), gb2.Read(0xA000))

	t.Run("no battery", func(t *testing.T) {
		gb, err := NewGameBoy(spinROM())
		require.NoError(t, err)
		_, ok := gb.SaveRAM()
		assert.False(t, ok)
		assert.Error(t, gb.LoadRAM(ram))
	})
}
