// Package gameboy wires the components of a Game Boy together, and is the
// main entry point for running a cartridge.
package gameboy

import (
	"context"
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// ErrInvalidState is returned when a save state cannot be loaded into
// this GameBoy.
var ErrInvalidState = errors.New("invalid save state")

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	Cartridge  cartridge.Cartridge
	Registers  *io.Registers
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller
	Joypad     *joypad.State

	log.Logger

	model   types.Model
	display ppu.Display
	device  serial.Device
	pacing  bool
	debug   bool
}

// NewGameBoy returns a new GameBoy running the given ROM, in the state the
// boot ROM leaves it in.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom, g.Logger)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}
	if g.model == types.Unset {
		g.model = types.DMGABC
		if cart.Header().GameboyColor() {
			g.model = types.CGBABC
		}
	}
	cgb := g.model.IsCGB()

	regs := io.NewRegisters()
	irq := interrupts.NewService(regs)
	timerCtl := timer.NewController(regs, irq)
	video := ppu.New(regs, irq, cgb, g.Logger)
	memBus := mmu.NewMMU(cart, regs, cgb, g.Logger)
	memBus.AttachVideo(video)
	video.AttachBus(memBus)
	video.AttachDisplay(g.display)

	g.Cartridge = cart
	g.Registers = regs
	g.Interrupts = irq
	g.Timer = timerCtl
	g.PPU = video
	g.MMU = memBus
	g.Serial = serial.NewController(regs, irq)
	g.Serial.Attach(g.device)
	g.Joypad = joypad.New(regs, irq)
	g.CPU = cpu.NewCPU(memBus, regs, irq, timerCtl, video, cgb, g.Logger)
	g.CPU.FramePacing = g.pacing
	g.CPU.Debug = g.debug

	g.Reset()
	g.Infof("gameboy: running as %s", g.model)
	return g, nil
}

// Model returns the hardware model being emulated.
func (g *GameBoy) Model() types.Model {
	return g.model
}

// Reset puts every component back into its post boot state. The
// cartridge keeps its RAM and bank selection.
func (g *GameBoy) Reset() {
	g.Registers.Reset(g.model)
	g.Interrupts.Reset()
	g.Timer.Reset()
	g.PPU.Reset()
	g.MMU.Reset()
	g.CPU.Reset(g.model)
}

// Step executes a single instruction.
func (g *GameBoy) Step() {
	g.CPU.Step()
}

// RunFor executes n instructions, or fewer if Stop is called.
func (g *GameBoy) RunFor(n int) int {
	return g.CPU.RunFor(n)
}

// Frame runs the emulation for the length of one LCD frame, and returns
// the number of instructions executed.
func (g *GameBoy) Frame() int {
	return g.CPU.RunFor(types.InstructionsPerScanline * types.ScanlinesPerFrame)
}

// Run runs the emulation until Stop is called or ctx is done.
func (g *GameBoy) Run(ctx context.Context) error {
	return g.CPU.Run(ctx)
}

// Stop stops Run and RunFor. It is safe to call from another goroutine.
func (g *GameBoy) Stop() {
	g.CPU.Stop()
}

// Read reads from the address space as the CPU would.
func (g *GameBoy) Read(address uint16) uint8 {
	return g.MMU.Read(address)
}

// Write writes to the address space as the CPU would.
func (g *GameBoy) Write(address uint16, value uint8) {
	g.MMU.Write(address, value)
}

// Press presses a button on the joypad.
func (g *GameBoy) Press(button joypad.Button) {
	g.Joypad.Press(button)
}

// Release releases a button on the joypad.
func (g *GameBoy) Release(button joypad.Button) {
	g.Joypad.Release(button)
}

// SaveRAM returns the battery backed RAM of the cartridge, or false if
// the cartridge has no battery.
func (g *GameBoy) SaveRAM() ([]byte, bool) {
	b, ok := g.Cartridge.(cartridge.BatteryBacked)
	if !ok || !g.Cartridge.Header().CartridgeType.Battery() {
		return nil, false
	}
	return b.SaveRAM(), true
}

// LoadRAM restores the battery backed RAM of the cartridge.
func (g *GameBoy) LoadRAM(data []byte) error {
	b, ok := g.Cartridge.(cartridge.BatteryBacked)
	if !ok || !g.Cartridge.Header().CartridgeType.Battery() {
		return fmt.Errorf("%s has no battery", g.Cartridge.Header().CartridgeType)
	}
	return b.LoadRAM(data)
}

// staters returns the components saved in a state, in order.
func (g *GameBoy) staters() []types.Stater {
	return []types.Stater{
		g.CPU,
		g.Interrupts,
		g.Registers,
		g.Timer,
		g.PPU,
		g.MMU,
		g.Cartridge,
		g.Joypad,
	}
}

// SaveState returns a compressed snapshot of the whole machine.
func (g *GameBoy) SaveState() ([]byte, error) {
	s := types.NewState()
	s.Write64(g.Cartridge.Header().Fingerprint)
	s.Write8(uint8(g.model))
	for _, st := range g.staters() {
		st.Save(s)
	}
	return s.Compress()
}

// LoadState restores a snapshot made by SaveState. The snapshot must
// have been taken with the same ROM and model.
func (g *GameBoy) LoadState(data []byte) error {
	s, err := types.DecompressState(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if fingerprint := s.Read64(); fingerprint != g.Cartridge.Header().Fingerprint {
		return fmt.Errorf("%w: state is for a different rom (%016X)", ErrInvalidState, fingerprint)
	}
	if model := types.Model(s.Read8()); model != g.model {
		return fmt.Errorf("%w: state is for %s, running as %s", ErrInvalidState, model, g.model)
	}
	for _, st := range g.staters() {
		st.Load(s)
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return nil
}
