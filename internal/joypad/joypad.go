// Package joypad provides an implementation of the Game Boy
// joypad register. Mapping host keys to buttons is left to
// the caller, which presses and releases Buttons.
package joypad

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// State holds the pressed buttons, a 1 meaning pressed. The
	// lower 4 bits are the action buttons, and the upper 4 bits
	// the direction buttons.
	State uint8
	irq   *interrupts.Service
}

// New returns a new joypad state registered on regs.
func New(regs *io.Registers, irq *interrupts.Service) *State {
	s := &State{irq: irq}
	regs.Reserve(types.P1, func(v byte) byte {
		return v & (types.Bit4 | types.Bit5)
	}, s.read)

	return s
}

func (s *State) read(v byte) byte {
	d := uint8(0xC0) | v&(types.Bit4|types.Bit5)
	var pressed uint8
	if v&types.Bit4 == 0 {
		pressed |= s.State >> 4 & 0xf
	}
	if v&types.Bit5 == 0 {
		pressed |= s.State & 0xf
	}

	return d | ^pressed&0xf
}

// Press presses a button, requesting a joypad interrupt.
func (s *State) Press(button Button) {
	if !utils.TestBit(s.State, button) {
		s.irq.Request(interrupts.JoypadFlag)
	}
	s.State = utils.SetBit(s.State, button)
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.State = utils.ClearBit(s.State, button)
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.State = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.State)
}
